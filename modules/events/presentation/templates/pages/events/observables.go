package events

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/ce1sus/ce1sus-console/components/base"
	"github.com/ce1sus/ce1sus-console/modules/events/presentation/viewmodels"
)

func viewSwitch(h *base.HTML, basePath string, flat bool) {
	structuredClass, flatClass := "btn active", "btn"
	if flat {
		structuredClass, flatClass = "btn", "btn active"
	}
	h.Raw(`<div class="view-switch"><a`).Attr("class", structuredClass).Attr("href", basePath+"/observables").Raw(`>Structured</a> <a`).
		Attr("class", flatClass).Attr("href", basePath+"/observables?view=flat").Raw(`>Flat</a> <a class="btn"`).
		Attr("href", basePath+"/observables/flat.xlsx").Raw(`>Export</a></div>`)
}

type ObservablesProps struct {
	EventTitle string
	BasePath   string
	Nodes      []*viewmodels.ObservableNode
}

func writeObject(h *base.HTML, o *viewmodels.Object) {
	h.Raw(`<div class="object"><h5>`).Text(o.Name).Raw(`</h5>`)
	if len(o.Attributes) == 0 {
		h.Raw(`<p class="empty">No attributes were defined</p>`)
	} else {
		h.Raw(`<table class="table"><thead><tr><th>Definition</th><th>Value</th><th>IOC</th><th>Shared</th></tr></thead><tbody>`)
		for _, a := range o.Attributes {
			h.Raw(`<tr><td>`).Text(a.Definition).Raw(`</td><td>`).Text(a.Value).Raw(`</td><td>`).Text(yesNo(a.IOC)).
				Raw(`</td><td>`).Text(yesNo(a.Shared)).Raw(`</td></tr>`)
		}
		h.Raw(`</tbody></table>`)
	}
	for _, rel := range o.Related {
		h.Raw(`<div class="related"><span class="relation">`).Text(rel.Relation).Raw(`</span>`)
		writeObject(h, rel.Object)
		h.Raw(`</div>`)
	}
	h.Raw(`</div>`)
}

func writeNode(h *base.HTML, n *viewmodels.ObservableNode) {
	if n.IsComposition() {
		h.Raw(`<div class="composition"><h4>`).Text(n.Title).Raw(` <span class="operator">`).Text(n.Operator).Raw(`</span></h4>`)
		for _, child := range n.Children {
			writeNode(h, child)
		}
		h.Raw(`</div>`)
		return
	}
	h.Raw(`<div class="observable"><h4>`).Text(n.Title).Raw(`</h4>`)
	if n.Object == nil {
		h.Raw(`<p class="empty">No objects were defined</p>`)
	} else {
		writeObject(h, n.Object)
	}
	h.Raw(`</div>`)
}

func StructuredObservables(props *ObservablesProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := base.NewHTML(w).Raw(`<section class="observables"><h2>`).Text(props.EventTitle).Raw(`</h2>`)
		viewSwitch(h, props.BasePath, false)
		if len(props.Nodes) == 0 {
			h.Raw(`<p class="empty">No observables</p>`)
		}
		for _, n := range props.Nodes {
			writeNode(h, n)
		}
		return h.Raw(`</section>`).Err()
	})
}

type FlatObservablesProps struct {
	EventTitle string
	BasePath   string
	Page       *viewmodels.FlatPage
}

func FlatObservables(props *FlatObservablesProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := base.NewHTML(w).Raw(`<section class="observables flat"><h2>`).Text(props.EventTitle).Raw(`</h2>`)
		viewSwitch(h, props.BasePath, true)
		h.Raw(`<table class="table table-bordered"><thead><tr><th>Observable</th><th>Object</th><th>Definition</th><th>Value</th><th>IOC</th><th>Shared</th></tr></thead><tbody>`)
		for _, row := range props.Page.Rows {
			h.Raw(`<tr>`)
			if row.GroupCell {
				h.Raw(`<td class="group"`).Attr("rowspan", itoa(row.RowSpan)).Raw(">").Text(row.GroupTitle)
				if row.ComposedOperator != "" {
					h.Raw(` <span class="operator">`).Text(row.ComposedOperator).Raw(`</span>`)
				}
				h.Raw(`</td>`)
			}
			h.Raw(`<td>`).Text(row.Object).Raw(`</td><td>`).Text(row.Definition).Raw(`</td><td>`).Text(row.Value).
				Raw(`</td><td>`).Text(yesNo(row.IOC)).Raw(`</td><td>`).Text(yesNo(row.Shared)).Raw(`</td></tr>`)
		}
		h.Raw(`</tbody></table>`)
		// the pager is 1-based while the table page is 0-based
		h.Component(ctx, base.Pagination(&base.PaginationProps{
			BaseURL: props.BasePath + "/observables",
			Current: props.Page.Page + 1,
			Pages:   props.Page.Pages,
			Query:   url.Values{"view": {"flat"}},
		}))
		return h.Raw(`</section>`).Err()
	})
}
