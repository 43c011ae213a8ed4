package helpers

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer accumulates HTML output for hand-assembled components and keeps the
// first write error so call sites can check once at the end.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup unchanged.
func (hw *Writer) Raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// Text writes escaped character data.
func (hw *Writer) Text(s string) {
	hw.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped.
func (hw *Writer) Attr(name, value string) {
	hw.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// BoolAttr writes a bare attribute when set.
func (hw *Writer) BoolAttr(name string, set bool) {
	if set {
		hw.Raw(" " + name)
	}
}

// Component renders a child component into the same stream.
func (hw *Writer) Component(ctx context.Context, c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

// Err returns the first error encountered.
func (hw *Writer) Err() error {
	return hw.err
}
