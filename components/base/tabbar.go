package base

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ce1sus/ce1sus-console/pkg/tabs"
)

type TabBarProps struct {
	// Fixed listing tab shown first.
	ListingTitle string
	ListingPath  string
	Entries      []tabs.Entry
	// Path of the current page, used to mark the active tab.
	Active string
}

// TabBar renders the listing tab followed by one closable tab per open record.
func TabBar(props *TabBarProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(w).Raw(`<ul class="nav nav-tabs" id="record-tabs">`)
		writeTab(h, props.ListingTitle, props.ListingPath, props.ListingPath == props.Active)
		h.Raw(`</li>`)
		for _, e := range props.Entries {
			writeTab(h, e.Title, e.Path, e.Path == props.Active)
			if e.Closable {
				h.Raw(`<form method="post" class="tab-close"`).Attr("action", e.Path+"/close").
					Raw(`><button type="submit" class="close" aria-label="Close">&times;</button></form>`)
			}
			h.Raw(`</li>`)
		}
		return h.Raw(`</ul>`).Err()
	})
}

func writeTab(h *HTML, title, path string, active bool) {
	class := "nav-item"
	if active {
		class += " active"
	}
	h.Raw(`<li`).Attr("class", class).Raw(`><a`).Attr("href", path).Raw(">").Text(title).Raw(`</a>`)
}
