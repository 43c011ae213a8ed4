package pages

import (
	"context"
	"errors"

	"github.com/a-h/templ"
)

// ErrNotFound indicates no content exists for the requested route key.
var ErrNotFound = errors.New("pages: not found")

// Page is the content rendered into the shell's content slot.
type Page struct {
	RouteKey string
	Title    string
	Summary  string
	Body     templ.Component
}

// Provider supplies content for a route key. The shell imposes no contract on
// the body beyond rendering it inside a scrollable container.
type Provider interface {
	Page(ctx context.Context, routeKey string) (Page, error)
}
