package theme

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromContextDefaultsToDark(t *testing.T) {
	t.Parallel()

	require.Equal(t, Dark, FromContext(context.Background()))

	ctx := WithTheme(context.Background(), Light)
	require.Equal(t, Light, FromContext(ctx))
	require.Equal(t, Dark, FromContext(WithTheme(ctx, Dark)), "inner scope wins")
}

func TestThemeMarker(t *testing.T) {
	t.Parallel()

	require.Equal(t, Dark, FromDarkMode(true))
	require.Equal(t, Light, FromDarkMode(false))
	require.Equal(t, "dark", Dark.RootClass())
	require.Equal(t, "", Light.RootClass())
	require.Equal(t, Light, Dark.Opposite())
	require.Equal(t, Dark, Dark.Opposite().Opposite())
}

func TestStyleSheetScopesPalettes(t *testing.T) {
	t.Parallel()

	css := StyleSheet(".app-shell")
	require.True(t, strings.HasPrefix(css, ".app-shell{--background:222 84% 4.9%;"))
	require.Contains(t, css, ".app-shell:not(.dark){--background:0 0% 98%;")
	require.Contains(t, css, ".app-shell .bg-card{background-color:hsl(var(--card));}")
	require.NotContains(t, css, ":root", "palette must not be applied globally")

	require.Equal(t, "0.75rem", PaletteFor(Dark).Get("radius"))
	require.Equal(t, "", PaletteFor(Light).Get("radius"))
}
