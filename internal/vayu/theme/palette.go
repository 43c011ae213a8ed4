package theme

import (
	"fmt"
	"strings"
)

// Token is a single CSS custom property in HSL component form.
type Token struct {
	Name  string
	Value string
}

// Palette is an ordered set of tokens.
type Palette []Token

// Get returns the value for name, or "" when absent.
func (p Palette) Get(name string) string {
	for _, tok := range p {
		if tok.Name == name {
			return tok.Value
		}
	}
	return ""
}

var darkPalette = Palette{
	{Name: "background", Value: "222 84% 4.9%"},
	{Name: "foreground", Value: "210 40% 98%"},
	{Name: "card", Value: "224 71% 10%"},
	{Name: "card-foreground", Value: "210 40% 98%"},
	{Name: "popover", Value: "222 84% 4.9%"},
	{Name: "popover-foreground", Value: "210 40% 98%"},
	{Name: "primary", Value: "142 71% 45%"},
	{Name: "primary-foreground", Value: "210 40% 98%"},
	{Name: "secondary", Value: "217 32% 17.5%"},
	{Name: "secondary-foreground", Value: "210 40% 98%"},
	{Name: "muted", Value: "217 32% 21%"},
	{Name: "muted-foreground", Value: "215 20.2% 65.1%"},
	{Name: "accent", Value: "217 32% 25%"},
	{Name: "accent-foreground", Value: "210 40% 98%"},
	{Name: "destructive", Value: "0 62.8% 30.6%"},
	{Name: "destructive-foreground", Value: "210 40% 98%"},
	{Name: "border", Value: "217 32% 17.5%"},
	{Name: "input", Value: "217 32% 17.5%"},
	{Name: "ring", Value: "142 71% 45%"},
	{Name: "radius", Value: "0.75rem"},
}

var lightPalette = Palette{
	{Name: "background", Value: "0 0% 98%"},
	{Name: "foreground", Value: "222 84% 4.9%"},
	{Name: "card", Value: "0 0% 100%"},
	{Name: "card-foreground", Value: "222 84% 4.9%"},
	{Name: "popover", Value: "0 0% 100%"},
	{Name: "popover-foreground", Value: "222 84% 4.9%"},
	{Name: "primary", Value: "142 71% 45%"},
	{Name: "primary-foreground", Value: "210 40% 98%"},
	{Name: "secondary", Value: "210 40% 96.1%"},
	{Name: "secondary-foreground", Value: "222 84% 4.9%"},
	{Name: "muted", Value: "210 40% 96.1%"},
	{Name: "muted-foreground", Value: "215.4 16.3% 46.9%"},
	{Name: "accent", Value: "210 40% 94.1%"},
	{Name: "accent-foreground", Value: "222 84% 4.9%"},
	{Name: "destructive", Value: "0 84.2% 60.2%"},
	{Name: "destructive-foreground", Value: "210 40% 98%"},
	{Name: "border", Value: "214.3 31.8% 91.4%"},
	{Name: "input", Value: "214.3 31.8% 91.4%"},
	{Name: "ring", Value: "142 71% 45%"},
}

// PaletteFor returns the variable set for t.
func PaletteFor(t Theme) Palette {
	if t.IsDark() {
		return darkPalette
	}
	return lightPalette
}

// Utility classes resolved against the palette variables.
var utilities = []struct {
	class    string
	property string
	token    string
}{
	{"bg-background", "background-color", "background"},
	{"text-foreground", "color", "foreground"},
	{"bg-card", "background-color", "card"},
	{"text-card-foreground", "color", "card-foreground"},
	{"border-border", "border-color", "border"},
	{"bg-muted", "background-color", "muted"},
	{"text-muted-foreground", "color", "muted-foreground"},
	{"bg-accent", "background-color", "accent"},
	{"text-accent-foreground", "color", "accent-foreground"},
	{"hover\\:bg-accent:hover", "background-color", "accent"},
	{"hover\\:text-accent-foreground:hover", "color", "accent-foreground"},
}

// StyleSheet renders the palette rules scoped to the shell root selector. The
// dark set applies to the root by default and the light set whenever the
// root lacks the dark marker.
func StyleSheet(rootSelector string) string {
	if strings.TrimSpace(rootSelector) == "" {
		rootSelector = ".app-shell"
	}

	var b strings.Builder
	writeBlock(&b, rootSelector, PaletteFor(Dark))
	writeBlock(&b, rootSelector+":not(.dark)", PaletteFor(Light))
	for _, u := range utilities {
		fmt.Fprintf(&b, "%s .%s{%s:hsl(var(--%s));}\n", rootSelector, u.class, u.property, u.token)
	}
	b.WriteString("@media (max-width: 768px){")
	fmt.Fprintf(&b, "%s .text-xl{font-size:1.125rem;line-height:1.75rem;}", rootSelector)
	fmt.Fprintf(&b, "%s .text-2xl{font-size:1.5rem;line-height:2rem;}", rootSelector)
	fmt.Fprintf(&b, "%s .p-6{padding:1rem;}", rootSelector)
	fmt.Fprintf(&b, "%s .gap-6{gap:1rem;}", rootSelector)
	b.WriteString("}\n")
	return b.String()
}

func writeBlock(b *strings.Builder, selector string, palette Palette) {
	b.WriteString(selector)
	b.WriteString("{")
	for _, tok := range palette {
		fmt.Fprintf(b, "--%s:%s;", tok.Name, tok.Value)
	}
	b.WriteString("}\n")
}
