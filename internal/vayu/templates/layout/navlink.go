package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"finitefield.org/vayu-web/internal/vayu/httpserver/middleware"
	"finitefield.org/vayu-web/internal/vayu/navigation"
	"finitefield.org/vayu-web/internal/vayu/templates/helpers"
)

// NavLink renders a link to item's resolved URL. The link is active when
// currentPath equals that URL exactly. With dismiss set, following the link
// also closes the mobile drawer.
func NavLink(item navigation.Item, currentPath string, mode helpers.DisplayMode, dismiss bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		resolver := helpers.Resolver(ctx)
		href := resolver.Resolve(item.RouteKey)
		active := navigation.IsActive(item, currentPath, resolver)

		hw := helpers.NewWriter(w)
		hw.Raw("<a")
		hw.Attr("href", string(templ.URL(href)))
		hw.Attr("class", helpers.NavClass(active, mode))
		hw.Attr("data-route", item.RouteKey)
		hw.Attr("data-nav-link", "")
		if active {
			hw.Attr("aria-current", "page")
			hw.Attr("data-active", "true")
		} else {
			hw.Attr("data-active", "false")
		}
		writeShellSwap(hw, "hx-get", href)
		hw.Attr("hx-push-url", "true")
		if dismiss {
			hw.Attr("hx-headers", `{"`+middleware.DismissHeader+`":"true"}`)
		}
		hw.Raw(">")
		hw.Component(ctx, helpers.Icon(item.Icon, helpers.NavIconClass(active, mode)))
		hw.Raw("<span")
		if active {
			hw.Attr("class", "font-semibold")
		}
		hw.Raw(">")
		hw.Text(item.Title)
		hw.Raw("</span></a>")
		return hw.Err()
	})
}

// writeShellSwap wires an element to replace the whole shell with the response.
func writeShellSwap(hw *helpers.Writer, verb, url string) {
	hw.Attr(verb, url)
	hw.Attr("hx-target", ShellTarget)
	hw.Attr("hx-swap", "outerHTML")
}
