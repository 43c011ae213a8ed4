package testutil

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// ParseHTML loads a document or shell fragment for goquery assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err, "parse html")
	return doc
}

// ShellRoot returns the #app-shell element and fails unless exactly one is
// present.
func ShellRoot(t testing.TB, doc *goquery.Document) *goquery.Selection {
	t.Helper()

	root := doc.Find("#app-shell")
	require.Equal(t, 1, root.Length(), "response must contain the shell")
	return root
}
