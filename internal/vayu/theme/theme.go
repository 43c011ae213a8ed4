package theme

import "context"

// Theme selects the light or dark variable palette.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// FromDarkMode maps the shell's dark-mode flag onto a Theme.
func FromDarkMode(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}

// IsDark reports whether t selects the dark palette.
func (t Theme) IsDark() bool {
	return t == Dark
}

// Opposite returns the theme a toggle switches to.
func (t Theme) Opposite() Theme {
	if t.IsDark() {
		return Light
	}
	return Dark
}

// RootClass is the marker class carried by the shell root. Styling consumers
// select the dark palette through it; the light palette applies otherwise.
func (t Theme) RootClass() string {
	if t.IsDark() {
		return "dark"
	}
	return ""
}

type contextKey struct{}

// WithTheme scopes the theme to everything rendered with ctx.
func WithTheme(ctx context.Context, t Theme) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, t)
}

// FromContext returns the scoped theme, defaulting to Dark like a fresh shell.
func FromContext(ctx context.Context) Theme {
	if ctx == nil {
		return Dark
	}
	if t, ok := ctx.Value(contextKey{}).(Theme); ok && (t == Dark || t == Light) {
		return t
	}
	return Dark
}
