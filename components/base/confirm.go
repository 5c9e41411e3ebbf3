package base

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

type ConfirmProps struct {
	Title     string
	Question  string
	Action    string
	CancelURL string
}

// Confirm renders a yes/no prompt posting confirm=yes to Action.
func Confirm(props *ConfirmProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return NewHTML(w).
			Raw(`<div class="modal confirm" role="dialog"><h3>`).Text(props.Title).Raw(`</h3><p>`).Text(props.Question).Raw(`</p>`).
			Raw(`<form method="post"`).Attr("action", props.Action).Raw(`>`).
			Raw(`<input type="hidden" name="confirm" value="yes"><button type="submit" class="btn btn-danger">Yes</button> `).
			Raw(`<a class="btn btn-default"`).Attr("href", props.CancelURL).Raw(`>No</a></form></div>`).
			Err()
	})
}
