package navigation

import "strings"

// PageTitle turns a route name into a display title by inserting a space
// before every ASCII capital letter, e.g. "LiveMap" becomes "Live Map".
func PageTitle(routeName string) string {
	var b strings.Builder
	b.Grow(len(routeName) + 4)
	for _, r := range routeName {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
