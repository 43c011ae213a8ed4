package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"finitefield.org/vayu-web/internal/vayu/navigation"
	"finitefield.org/vayu-web/internal/vayu/templates/helpers"
	"finitefield.org/vayu-web/internal/vayu/theme"
)

const htmxSrc = "https://unpkg.com/htmx.org@1.9.12"

// HTMXConfig disables htmx's snapshot history so Back and Forward always
// reload into a fresh mount instead of restoring markup the mount has left.
const HTMXConfig = `{"historyCacheSize":0,"refreshOnHistoryMiss":true}`

// Document renders a complete HTML page around the shell.
func Document(data DocumentData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		appName := data.AppName
		if appName == "" {
			appName = brandName
		}
		title := appName
		if pt := navigation.PageTitle(data.Shell.Location.RouteName); pt != "" {
			title = pt + " | " + appName
		}

		hw := helpers.NewWriter(w)
		hw.Raw(`<!DOCTYPE html><html lang="en" class="h-full"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.Raw("<title>")
		hw.Text(title)
		hw.Raw("</title>")
		if data.Description != "" {
			hw.Raw(`<meta name="description"`)
			hw.Attr("content", data.Description)
			hw.Raw(">")
		}
		hw.Raw(`<meta name="htmx-config"`)
		hw.Attr("content", HTMXConfig)
		hw.Raw(">")
		hw.Raw(`<meta name="csrf-token"`)
		hw.Attr("content", data.Shell.CSRFToken)
		hw.Raw(">")
		hw.Raw(`<script src="https://cdn.tailwindcss.com"></script><script>tailwind.config={darkMode:'class'}</script>`)
		hw.Raw("<script")
		hw.Attr("src", htmxSrc)
		hw.Raw("></script>")
		hw.Raw(`<style id="shell-palette">`)
		hw.Raw(theme.StyleSheet("."+shellClass))
		hw.Raw("</style>")
		hw.Raw(`<link rel="stylesheet"`)
		hw.Attr("href", helpers.URL(ctx, "/public/static/shell.css"))
		hw.Raw(`><script defer`)
		hw.Attr("src", helpers.URL(ctx, "/public/static/shell.js"))
		hw.Raw("></script></head>")
		hw.Raw(`<body class="h-full">`)
		hw.Component(ctx, AppShell(data.Shell))
		hw.Raw("</body></html>")
		return hw.Err()
	})
}
