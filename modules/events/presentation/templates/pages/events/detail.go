package events

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ce1sus/ce1sus-console/components/base"
	"github.com/ce1sus/ce1sus-console/modules/events/presentation/viewmodels"
)

type DetailPageProps struct {
	Event  *viewmodels.Event
	Groups []viewmodels.Group
	// Detail path of the event in the current section.
	BasePath string
	// Validation pages only offer validation.
	ValidationMode bool
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func detailRow(h *base.HTML, label, value string) {
	h.Raw(`<tr><th>`).Text(label).Raw(`</th><td>`).Text(value).Raw(`</td></tr>`)
}

func EventDetail(props *DetailPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		e := props.Event
		h := base.NewHTML(w).Raw(`<section class="event-detail"><h2>`).Text(e.Title).Raw(`</h2>`)

		h.Raw(`<div class="actions">`)
		if !props.ValidationMode {
			if e.Permissions.CanModify {
				h.Raw(`<a class="btn"`).Attr("href", props.BasePath+"/edit").Raw(`>Edit</a> `)
			}
			if e.Permissions.CanDelete {
				h.Raw(`<a class="btn btn-danger"`).Attr("href", props.BasePath+"/delete").Raw(`>Delete</a> `)
			}
			h.Raw(`<a class="btn"`).Attr("href", props.BasePath+"/observables").Raw(`>Observables</a> `)
		}
		if !e.Validated && e.Permissions.CanValidate {
			h.Raw(`<form method="post" class="inline"`).Attr("action", props.BasePath+"/validate").
				Raw(`><button type="submit" class="btn btn-success">Validate</button></form>`)
		}
		h.Raw(`</div>`)

		h.Raw(`<table class="table details"><tbody>`)
		detailRow(h, "UUID", e.UUID)
		detailRow(h, "Description", e.Description)
		detailRow(h, "Status", e.Status)
		detailRow(h, "Risk", e.Risk)
		detailRow(h, "Analysis", e.Analysis)
		h.Raw(`<tr><th>TLP</th><td><span class="tlp"`).Attr("style", "background-color:"+e.TLPColour).Raw(">").Text(e.TLP).Raw(`</span></td></tr>`)
		detailRow(h, "Published", yesNo(e.Published))
		detailRow(h, "Shared", yesNo(e.Shared))
		detailRow(h, "Validated", yesNo(e.Validated))
		detailRow(h, "First seen", e.FirstSeen)
		detailRow(h, "Last seen", e.LastSeen)
		detailRow(h, "Created", e.CreatedAt)
		detailRow(h, "Modified", e.ModifiedOn)
		detailRow(h, "Owner", e.CreatorGroup.Name)
		detailRow(h, "Observables", itoa(e.ObservableCount))
		h.Raw(`</tbody></table>`)

		if !props.ValidationMode && e.Permissions.CanModify && len(props.Groups) > 0 {
			h.Raw(`<form method="post" class="change-group"`).Attr("action", props.BasePath+"/changegroup").
				Raw(`><label for="GroupID">Owner group</label><select id="GroupID" name="GroupID">`)
			for _, g := range props.Groups {
				h.Raw(`<option`).Attr("value", g.ID)
				if g.ID == e.CreatorGroup.ID {
					h.Raw(` selected`)
				}
				h.Raw(">").Text(g.Name).Raw(`</option>`)
			}
			h.Raw(`</select><button type="submit" class="btn">Change group</button></form>`)
		}

		if !props.ValidationMode {
			h.Component(ctx, CommentList(&CommentListProps{Comments: e.Comments, BasePath: props.BasePath, CanModify: e.Permissions.CanModify}))
		}
		return h.Raw(`</section>`).Err()
	})
}
