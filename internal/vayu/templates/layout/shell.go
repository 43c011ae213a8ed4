package layout

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"

	"finitefield.org/vayu-web/internal/vayu/httpserver/middleware"
	"finitefield.org/vayu-web/internal/vayu/navigation"
	"finitefield.org/vayu-web/internal/vayu/templates/helpers"
	"finitefield.org/vayu-web/internal/vayu/theme"
)

// AppShell renders the persistent frame around page content: desktop sidebar,
// mobile drawer with backdrop, mobile header, content slot, bottom bar and the
// notification widget mount. The theme derived from the state is scoped to
// ctx for everything rendered inside.
func AppShell(data ShellData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := theme.FromDarkMode(data.State.DarkMode)
		ctx = theme.WithTheme(ctx, t)

		headers, err := shellHeaders(data)
		if err != nil {
			return err
		}

		hw := helpers.NewWriter(w)
		hw.Raw("<div")
		hw.Attr("id", shellID)
		class := shellClass + " flex h-screen bg-background text-foreground overflow-hidden"
		if marker := t.RootClass(); marker != "" {
			class += " " + marker
		}
		hw.Attr("class", class)
		hw.Attr("data-theme", string(t))
		hw.Attr("data-sidebar", drawerState(data.State.SidebarOpen))
		hw.Attr("data-route", data.Location.RouteName)
		hw.Attr("hx-headers", headers)
		hw.Raw(">")

		hw.Component(ctx, desktopSidebar(data))
		hw.Component(ctx, mobileDrawer(data))

		hw.Raw(`<main class="flex-1 flex flex-col bg-background text-foreground">`)
		hw.Component(ctx, mobileHeader(data))
		hw.Raw("<div")
		hw.Attr("id", contentID)
		hw.Attr("class", "flex-1 overflow-y-auto")
		hw.Raw(">")
		content := data.Content
		if content == nil {
			content = templ.GetChildren(ctx)
		}
		hw.Component(ctx, content)
		hw.Raw("</div>")
		hw.Component(ctx, bottomBar(data))
		hw.Raw("</main>")

		hw.Component(ctx, notificationMount())
		hw.Raw("</div>")
		return hw.Err()
	})
}

func shellHeaders(data ShellData) (string, error) {
	headers := map[string]string{}
	if data.MountToken != "" {
		headers[middleware.MountHeader] = data.MountToken
	}
	if data.CSRFToken != "" {
		name := data.CSRFHeader
		if name == "" {
			name = middleware.CSRFHeaderName(middleware.CSRFConfig{})
		}
		headers[name] = data.CSRFToken
	}
	raw, err := json.Marshal(headers)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func drawerState(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}

func brand() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := helpers.NewWriter(w)
		hw.Raw(`<div class="flex items-center gap-3">`)
		hw.Raw(`<div class="w-12 h-12 bg-gradient-to-br from-emerald-500 to-cyan-600 rounded-2xl flex items-center justify-center shadow-xl">`)
		hw.Component(ctx, helpers.Icon(navigation.IconWind, "w-7 h-7 text-white"))
		hw.Raw(`</div><div><h1 class="font-bold text-2xl text-foreground">`)
		hw.Text(brandName)
		hw.Raw(`</h1><p class="text-xs text-muted-foreground">`)
		hw.Text(brandTagline)
		hw.Raw("</p></div></div>")
		return hw.Err()
	})
}

func desktopSidebar(data ShellData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := helpers.NewWriter(w)
		hw.Raw(`<aside id="desktop-sidebar" class="hidden lg:flex flex-col w-72 bg-card/80 backdrop-blur-xl border-r border-border p-6">`)
		hw.Raw(`<div class="mb-10 px-2">`)
		hw.Component(ctx, brand())
		hw.Raw(`</div><nav class="flex-1 flex flex-col gap-2" aria-label="Main">`)
		for _, item := range navigation.Items() {
			hw.Component(ctx, NavLink(item, data.Location.Path, helpers.DisplayDesktop, false))
		}
		hw.Raw(`</nav><div class="mt-auto space-y-2">`)
		hw.Component(ctx, themeToggle("sidebar"))
		hw.Component(ctx, settingsLink(false))
		hw.Raw("</div></aside>")
		return hw.Err()
	})
}

func mobileDrawer(data ShellData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		open := data.State.SidebarOpen
		st := drawerState(open)

		hw := helpers.NewWriter(w)
		hw.Raw("<div")
		hw.Attr("id", backdropID)
		hw.Attr("data-state", st)
		hw.Attr("class", templ.Classes(
			"fixed inset-0 bg-black/60 backdrop-blur-sm z-40 lg:hidden transition-opacity duration-300",
			templ.KV("opacity-100", open),
			templ.KV("opacity-0 pointer-events-none", !open),
		).String())
		hw.Attr("aria-hidden", "true")
		if open {
			writeShellSwap(hw, "hx-post", helpers.URL(ctx, "/shell/sidebar/close?via=backdrop"))
		}
		hw.Raw("></div>")

		hw.Raw("<aside")
		hw.Attr("id", drawerID)
		hw.Attr("data-state", st)
		hw.Attr("role", "dialog")
		hw.Attr("aria-modal", "true")
		hw.Attr("aria-label", "Navigation")
		hw.Attr("class", templ.Classes(
			"fixed inset-y-0 left-0 w-80 bg-card border-r border-border p-6 z-50 flex flex-col lg:hidden transition-transform duration-300 ease-out",
			templ.KV("translate-x-0", open),
			templ.KV("-translate-x-full", !open),
		).String())
		if !open {
			hw.Attr("aria-hidden", "true")
			hw.BoolAttr("inert", true)
		}
		hw.Raw(">")

		hw.Raw(`<div class="flex items-center justify-between mb-8">`)
		hw.Component(ctx, brand())
		hw.Raw(`<button type="button" class="hover:bg-accent rounded-xl p-2" aria-label="Close menu" data-action="close-drawer"`)
		writeShellSwap(hw, "hx-post", helpers.URL(ctx, "/shell/sidebar/close?via=button"))
		hw.Raw(">")
		hw.Component(ctx, helpers.Icon(navigation.IconClose, "w-6 h-6 text-muted-foreground"))
		hw.Raw("</button></div>")

		hw.Raw(`<nav class="flex-1 flex flex-col gap-2" aria-label="Drawer">`)
		for _, item := range navigation.Items() {
			hw.Component(ctx, NavLink(item, data.Location.Path, helpers.DisplayDesktop, true))
		}
		hw.Raw(`</nav><div class="mt-auto space-y-2">`)
		hw.Component(ctx, themeToggle("drawer"))
		hw.Component(ctx, settingsLink(true))
		hw.Raw("</div></aside>")
		return hw.Err()
	})
}

// themeToggle offers the opposite of the scoped theme. The drawer surface also
// closes the drawer.
func themeToggle(surface string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		current := theme.FromContext(ctx)
		icon, label := navigation.IconSun, "Light Mode"
		if current.Opposite().IsDark() {
			icon, label = navigation.IconMoon, "Dark Mode"
		}

		hw := helpers.NewWriter(w)
		hw.Raw(`<button type="button" class="w-full flex items-center justify-start gap-3 px-3 text-sm text-muted-foreground hover:bg-accent hover:text-accent-foreground rounded-xl h-11"`)
		hw.Attr("data-action", "theme-toggle")
		hw.Attr("data-surface", surface)
		hw.Attr("aria-pressed", boolString(current.IsDark()))
		writeShellSwap(hw, "hx-post", helpers.URL(ctx, "/shell/theme?surface="+surface))
		hw.Raw(">")
		hw.Component(ctx, helpers.Icon(icon, "w-5 h-5"))
		hw.Raw("<span>")
		hw.Text(label)
		hw.Raw("</span></button>")
		return hw.Err()
	})
}

func settingsLink(dismiss bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		item := navigation.SettingsItem
		href := helpers.Resolver(ctx).Resolve(item.RouteKey)

		hw := helpers.NewWriter(w)
		hw.Raw(`<a class="flex items-center gap-3 px-3 py-2.5 rounded-xl transition-all duration-300 text-sm font-medium text-muted-foreground hover:bg-accent hover:text-accent-foreground"`)
		hw.Attr("href", string(templ.URL(href)))
		hw.Attr("data-route", item.RouteKey)
		writeShellSwap(hw, "hx-get", href)
		hw.Attr("hx-push-url", "true")
		if dismiss {
			hw.Attr("hx-headers", `{"`+middleware.DismissHeader+`":"true"}`)
		}
		hw.Raw(">")
		hw.Component(ctx, helpers.Icon(item.Icon, "w-5 h-5"))
		hw.Raw("<span>")
		hw.Text(item.Title)
		hw.Raw("</span></a>")
		return hw.Err()
	})
}

func mobileHeader(data ShellData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := helpers.NewWriter(w)
		hw.Raw(`<header class="flex items-center justify-between h-16 px-4 border-b border-border bg-card/80 backdrop-blur-xl lg:hidden shadow-lg">`)
		hw.Raw(`<button type="button" class="hover:bg-accent rounded-xl p-2" aria-label="Open menu" data-action="open-drawer"`)
		hw.Attr("aria-controls", drawerID)
		hw.Attr("aria-expanded", boolString(data.State.SidebarOpen))
		writeShellSwap(hw, "hx-post", helpers.URL(ctx, "/shell/sidebar/open"))
		hw.Raw(">")
		hw.Component(ctx, helpers.Icon(navigation.IconMenu, "w-6 h-6"))
		hw.Raw("</button><h1")
		hw.Attr("id", pageTitleID)
		hw.Attr("class", "font-bold text-lg bg-gradient-to-r from-emerald-500 to-cyan-500 bg-clip-text text-transparent")
		hw.Raw(">")
		hw.Text(navigation.PageTitle(data.Location.RouteName))
		hw.Raw(`</h1><button type="button" class="hover:bg-accent rounded-xl p-2" aria-label="Search" data-action="search">`)
		hw.Component(ctx, helpers.Icon(navigation.IconSearch, "w-5 h-5"))
		hw.Raw("</button></header>")
		return hw.Err()
	})
}

func bottomBar(data ShellData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := helpers.NewWriter(w)
		hw.Raw(`<nav id="bottom-bar" class="lg:hidden grid grid-cols-5 items-center bg-card/90 backdrop-blur-xl border-t border-border px-2 py-1 shadow-2xl" aria-label="Quick">`)
		for _, item := range navigation.BottomBar() {
			hw.Component(ctx, NavLink(item, data.Location.Path, helpers.DisplayMobile, false))
		}
		hw.Raw("</nav>")
		return hw.Err()
	})
}

// notificationMount is the widget placeholder. It loads its own fragment and is
// preserved across shell swaps so the widget keeps its state.
func notificationMount() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := helpers.NewWriter(w)
		hw.Raw("<div")
		hw.Attr("id", panelID)
		hw.Attr("hx-preserve", "true")
		hw.Attr("hx-get", helpers.URL(ctx, "/notifications/panel"))
		hw.Attr("hx-trigger", "load")
		hw.Attr("hx-swap", "innerHTML")
		hw.Raw("></div>")
		return hw.Err()
	})
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
