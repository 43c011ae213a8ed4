package pages

import (
	"bytes"
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"finitefield.org/vayu-web/internal/vayu/navigation"
)

func renderBody(t *testing.T, page Page) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, page.Body.Render(context.Background(), &buf))
	return buf.String()
}

func TestEmbeddedPagesCoverEveryRoute(t *testing.T) {
	t.Parallel()

	provider, err := NewMarkdownProvider("")
	require.NoError(t, err)

	for _, key := range navigation.RouteKeys() {
		page, err := provider.Page(context.Background(), key)
		require.NoError(t, err, key)
		require.NotEmpty(t, page.Title, key)
		require.Equal(t, key, page.RouteKey)
	}
}

func TestMarkdownRendersAndSanitizes(t *testing.T) {
	t.Parallel()

	provider := newMarkdownProvider(fstest.MapFS{
		"forecast.md": &fstest.MapFile{Data: []byte("---\ntitle: Forecast\nsummary: Outlook\n---\n## Tomorrow\n\n<script>alert(1)</script>\n\n[link](https://example.com)\n")},
	})

	page, err := provider.Page(context.Background(), "Forecast")
	require.NoError(t, err)
	require.Equal(t, "Forecast", page.Title)
	require.Equal(t, "Outlook", page.Summary)

	html := renderBody(t, page)
	require.Contains(t, html, `<h2 id="tomorrow">Tomorrow</h2>`)
	require.NotContains(t, html, "<script>")
	require.Contains(t, html, `rel="nofollow"`)
}

func TestMarkdownOverrideAndCache(t *testing.T) {
	t.Parallel()

	override := fstest.MapFS{
		"rewards.md": &fstest.MapFile{Data: []byte("no front matter here")},
	}
	base := fstest.MapFS{
		"rewards.md": &fstest.MapFile{Data: []byte("---\ntitle: Base\n---\nbase")},
	}
	provider := newMarkdownProvider(override, base)

	page, err := provider.Page(context.Background(), "Rewards")
	require.NoError(t, err)
	require.Empty(t, page.Title, "override without front matter has no title")
	require.Contains(t, renderBody(t, page), "no front matter here")

	delete(override, "rewards.md")
	again, err := provider.Page(context.Background(), "Rewards")
	require.NoError(t, err)
	require.Contains(t, renderBody(t, again), "no front matter here", "rendered pages are cached")
}

func TestMarkdownErrors(t *testing.T) {
	t.Parallel()

	provider := newMarkdownProvider(fstest.MapFS{
		"broken.md": &fstest.MapFile{Data: []byte("---\ntitle: never closed\n")},
	})

	_, err := provider.Page(context.Background(), "Missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = provider.Page(context.Background(), "../etc/passwd")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = provider.Page(context.Background(), "Broken")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = provider.Page(ctx, "Broken")
	require.ErrorIs(t, err, context.Canceled)
}
