package error_pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ce1sus/ce1sus-console/components/base"
)

func NotFoundContent() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return base.NewHTML(w).
			Raw(`<section class="error-page"><h1>404</h1><p>The page you are looking for does not exist.</p>`).
			Raw(`<a class="btn" href="/events/all">Back to events</a></section>`).
			Err()
	})
}
