package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"finitefield.org/vayu-web/internal/vayu/navigation"
	"finitefield.org/vayu-web/internal/vayu/pages"
	"finitefield.org/vayu-web/internal/vayu/templates/helpers"
)

// NotFoundRouteName is the location name used when no page matches.
const NotFoundRouteName = "NotFound"

// PageContent renders provider content inside the scrollable slot.
func PageContent(page pages.Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := helpers.NewWriter(w)
		hw.Raw("<article")
		hw.Attr("class", "mx-auto max-w-5xl p-4 lg:p-8 space-y-6")
		hw.Attr("data-page", page.RouteKey)
		hw.Raw(">")
		if page.Title != "" || page.Summary != "" {
			hw.Raw(`<header class="space-y-1">`)
			if page.Title != "" {
				hw.Raw(`<h2 class="text-3xl font-bold text-foreground">`)
				hw.Text(page.Title)
				hw.Raw("</h2>")
			}
			if page.Summary != "" {
				hw.Raw(`<p class="text-muted-foreground">`)
				hw.Text(page.Summary)
				hw.Raw("</p>")
			}
			hw.Raw("</header>")
		}
		hw.Raw(`<div class="prose max-w-none text-foreground">`)
		hw.Component(ctx, page.Body)
		hw.Raw("</div></article>")
		return hw.Err()
	})
}

// NotFoundContent is shown in the slot for paths that resolve to no page.
func NotFoundContent(path string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := helpers.NewWriter(w)
		hw.Raw(`<section class="mx-auto max-w-xl p-8 text-center space-y-4" data-page="NotFound"><h2 class="text-2xl font-bold text-foreground">Page not found</h2><p class="text-muted-foreground">Nothing lives at <code>`)
		hw.Text(path)
		hw.Raw(`</code>.</p><a class="text-emerald-400 underline"`)
		href := helpers.Resolver(ctx).Resolve(navigation.DefaultRouteKey)
		hw.Attr("href", string(templ.URL(href)))
		hw.Raw(">Back to the dashboard</a></section>")
		return hw.Err()
	})
}
