// Package events renders the event listing, detail and observable pages.
package events

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ce1sus/ce1sus-console/components/base"
	"github.com/ce1sus/ce1sus-console/modules/events/presentation/viewmodels"
)

type ListPageProps struct {
	Heading      string
	Items        []*viewmodels.EventListItem
	Pagination   viewmodels.Pagination
	DetailPrefix string
	AddURL       string
}

func EventList(props *ListPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := base.NewHTML(w).Raw(`<section class="event-list"><header><h2>`).Text(props.Heading).Raw(`</h2>`)
		if props.AddURL != "" {
			h.Raw(`<a class="btn btn-primary"`).Attr("href", props.AddURL).Raw(`>Add event</a>`)
		}
		h.Raw(`<span class="total">`).Textf("%d events", props.Pagination.Total).Raw(`</span></header>`)
		if len(props.Items) == 0 {
			h.Raw(`<p class="empty">No events found</p>`)
		} else {
			h.Raw(`<table class="table"><thead><tr><th>Title</th><th>Status</th><th>Risk</th><th>Analysis</th><th>TLP</th><th>Group</th><th>Created</th></tr></thead><tbody>`)
			for _, item := range props.Items {
				h.Raw(`<tr><td><a`).Attr("href", props.DetailPrefix+item.ID).Raw(">").Text(item.Title).Raw(`</a></td>`).
					Raw(`<td>`).Text(item.Status).Raw(`</td><td>`).Text(item.Risk).Raw(`</td><td>`).Text(item.Analysis).Raw(`</td>`).
					Raw(`<td><span class="tlp"`).Attr("style", "background-color:"+item.TLPColour).Raw(">").Text(item.TLP).Raw(`</span></td>`).
					Raw(`<td>`).Text(item.CreatorGroup).Raw(`</td><td>`).Text(item.CreatedAt).Raw(`</td></tr>`)
			}
			h.Raw(`</tbody></table>`)
		}
		h.Component(ctx, base.Pagination(&base.PaginationProps{
			BaseURL: props.Pagination.BaseURL,
			Current: props.Pagination.Page,
			Pages:   props.Pagination.Pages,
		}))
		return h.Raw(`</section>`).Err()
	})
}
