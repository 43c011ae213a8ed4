package notifications

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"finitefield.org/vayu-web/internal/vayu/navigation"
	"finitefield.org/vayu-web/internal/vayu/templates/helpers"
)

// PanelTarget is the element the widget swaps into.
const PanelTarget = "#notification-panel"

// Panel renders the bell button, unread badge and collapsible alert list.
func Panel(data PanelData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := helpers.NewWriter(w)
		hw.Raw("<details")
		hw.Attr("class", "fixed bottom-20 right-4 lg:bottom-6 lg:right-6 z-30")
		hw.Attr("data-widget", "notifications")
		hw.BoolAttr("open", data.Expanded)
		hw.Raw(">")

		hw.Raw(`<summary class="list-none relative flex h-12 w-12 cursor-pointer items-center justify-center rounded-full bg-card border border-border shadow-xl hover:bg-accent"`)
		hw.Attr("aria-label", "Notifications, "+data.Badge.Display+" unread")
		hw.Raw(">")
		hw.Component(ctx, helpers.Icon(navigation.IconBell, "w-5 h-5 text-foreground"))
		if data.Badge.Unread > 0 {
			hw.Raw("<span")
			hw.Attr("class", badgeClass(data.Badge.Critical > 0))
			hw.Attr("data-badge", data.Badge.Display)
			hw.Raw(">")
			hw.Text(data.Badge.Display)
			hw.Raw("</span>")
		}
		hw.Raw("</summary>")

		hw.Raw(`<div class="absolute bottom-14 right-0 w-80 max-h-96 overflow-y-auto rounded-2xl bg-card border border-border p-4 shadow-2xl space-y-3">`)
		hw.Raw(`<h2 class="text-sm font-semibold text-foreground">Notifications</h2>`)
		switch {
		case data.Error != "":
			hw.Raw(`<p class="text-sm text-destructive" role="alert">`)
			hw.Text(data.Error)
			hw.Raw("</p>")
		case len(data.Items) == 0:
			hw.Raw(`<p class="text-sm text-muted-foreground">You're all caught up.</p>`)
		default:
			hw.Raw(`<ul class="space-y-3">`)
			for _, item := range data.Items {
				hw.Component(ctx, itemRow(item))
			}
			hw.Raw("</ul>")
		}
		hw.Raw("</div></details>")
		return hw.Err()
	})
}

func itemRow(item ItemView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := helpers.NewWriter(w)
		hw.Raw("<li")
		hw.Attr("class", "rounded-xl border border-border p-3 space-y-1")
		hw.Attr("data-notification", item.ID)
		if item.Unread {
			hw.Attr("data-unread", "true")
		}
		hw.Raw(`><div class="flex items-center justify-between gap-2"><span`)
		hw.Attr("class", item.SeverityClass)
		hw.Raw(">")
		hw.Text(item.SeverityLabel)
		hw.Raw(`</span><span class="text-xs text-muted-foreground">`)
		hw.Text(item.CategoryLabel + " · " + item.When)
		hw.Raw(`</span></div><p class="text-sm font-medium text-foreground">`)
		if item.Href != "" {
			hw.Raw("<a")
			hw.Attr("href", string(templ.URL(item.Href)))
			hw.Raw(">")
			hw.Text(item.Title)
			hw.Raw("</a>")
		} else {
			hw.Text(item.Title)
		}
		hw.Raw(`</p><p class="text-xs text-muted-foreground">`)
		hw.Text(item.Summary)
		hw.Raw("</p>")
		if item.Unread {
			hw.Raw(`<button type="button" class="text-xs font-medium text-emerald-400 hover:underline" data-action="mark-read"`)
			hw.Attr("hx-post", item.ReadEndpoint)
			hw.Attr("hx-target", PanelTarget)
			hw.Attr("hx-swap", "innerHTML")
			hw.Raw(">Mark as read</button>")
		}
		hw.Raw("</li>")
		return hw.Err()
	})
}

func badgeClass(critical bool) string {
	return templ.Classes(
		"absolute -top-1 -right-1 min-w-5 h-5 px-1 rounded-full text-[10px] font-bold flex items-center justify-center",
		templ.KV("bg-destructive text-destructive-foreground", critical),
		templ.KV("bg-emerald-500 text-white", !critical),
	).String()
}
