package base

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
)

type PaginationProps struct {
	BaseURL string
	// Current is 1-based.
	Current int
	Pages   int
	// Extra query parameters kept on every page link.
	Query url.Values
}

func pageURL(props *PaginationProps, page int) string {
	q := url.Values{}
	for k, v := range props.Query {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(page))
	return props.BaseURL + "?" + q.Encode()
}

// Pagination renders previous/next links and the page position.
func Pagination(props *PaginationProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if props.Pages <= 1 {
			return nil
		}
		h := NewHTML(w).Raw(`<nav class="pagination">`)
		if props.Current > 1 {
			h.Raw(`<a rel="prev"`).Attr("href", pageURL(props, props.Current-1)).Raw(`>&laquo; Previous</a>`)
		}
		h.Raw(` <span class="page-position">`).Textf("Page %d of %d", props.Current, props.Pages).Raw(`</span> `)
		if props.Current < props.Pages {
			h.Raw(`<a rel="next"`).Attr("href", pageURL(props, props.Current+1)).Raw(`>Next &raquo;</a>`)
		}
		return h.Raw(`</nav>`).Err()
	})
}
