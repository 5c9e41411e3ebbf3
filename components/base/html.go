// Package base holds the HTML building blocks shared by the console pages.
package base

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// HTML writes markup and keeps the first write error, so a page can be
// written top to bottom and checked once.
type HTML struct {
	w   io.Writer
	err error
}

func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

// Raw writes trusted markup.
func (h *HTML) Raw(parts ...string) *HTML {
	for _, p := range parts {
		if h.err != nil {
			return h
		}
		_, h.err = io.WriteString(h.w, p)
	}
	return h
}

// Text writes escaped text.
func (h *HTML) Text(s string) *HTML {
	return h.Raw(templ.EscapeString(s))
}

// Textf writes escaped formatted text.
func (h *HTML) Textf(format string, args ...any) *HTML {
	return h.Text(fmt.Sprintf(format, args...))
}

// Attr writes ` name="value"` with the value escaped.
func (h *HTML) Attr(name, value string) *HTML {
	return h.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// Component renders a nested component in place.
func (h *HTML) Component(ctx context.Context, c templ.Component) *HTML {
	if h.err != nil || c == nil {
		return h
	}
	h.err = c.Render(ctx, h.w)
	return h
}

func (h *HTML) Err() error {
	return h.err
}
