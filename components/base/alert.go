package base

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ce1sus/ce1sus-console/pkg/notify"
)

// Alert renders the global notification. A nil message renders nothing.
func Alert(msg *notify.Message) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if msg == nil || msg.Message == "" {
			return nil
		}
		return NewHTML(w).
			Raw(`<div id="notification" role="alert"`).
			Attr("class", "alert alert-"+string(msg.Type)).
			Raw(">").
			Text(msg.Message).
			Raw(`</div>`).
			Err()
	})
}
