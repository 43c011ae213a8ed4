package helpers

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"
)

// DisplayMode selects the density of a navigation link.
type DisplayMode int

const (
	// DisplayDesktop renders icon and label side by side.
	DisplayDesktop DisplayMode = iota
	// DisplayMobile stacks a small label under the icon for the bottom bar.
	DisplayMobile
)

const (
	navBase     = "flex items-center gap-2 px-3 py-2.5 rounded-xl transition-all duration-300 text-sm font-medium"
	navMobile   = "justify-center flex-col text-xs gap-1 h-14"
	navActive   = "bg-gradient-to-r from-emerald-500/20 to-cyan-500/20 text-emerald-400 shadow-lg border border-emerald-500/30"
	navInactive = "text-muted-foreground hover:bg-accent hover:text-accent-foreground hover:scale-105"
)

// NavClass returns navigation link classes. Modes and active state only change
// appearance.
func NavClass(active bool, mode DisplayMode) string {
	classes := []any{navBase}
	if mode == DisplayMobile {
		classes = append(classes, navMobile)
	}
	if active {
		classes = append(classes, navActive)
	} else {
		classes = append(classes, navInactive)
	}
	return templ.Classes(classes...).String()
}

// NavIconClass sizes the link glyph and tints it when active.
func NavIconClass(active bool, mode DisplayMode) string {
	size := "w-4 h-4"
	if mode == DisplayMobile {
		size = "w-5 h-5"
	}
	return templ.Classes(size, templ.KV("text-emerald-400", active)).String()
}

// SeverityClass maps alert severities to badge tones.
func SeverityClass(severity string) string {
	switch severity {
	case "critical":
		return "inline-flex items-center rounded-full bg-destructive px-2 py-0.5 text-xs font-medium text-destructive-foreground"
	case "warning":
		return "inline-flex items-center rounded-full bg-amber-500/20 px-2 py-0.5 text-xs font-medium text-amber-600"
	default:
		return "inline-flex items-center rounded-full bg-muted px-2 py-0.5 text-xs font-medium text-muted-foreground"
	}
}

// Relative returns a coarse "time ago" string.
func Relative(ts, now time.Time) string {
	diff := now.Sub(ts)
	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	}
	if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	}
	return ts.Format("2006-01-02")
}

// TextComponent returns a templ component that renders escaped text.
func TextComponent(value string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(value))
		return err
	})
}
