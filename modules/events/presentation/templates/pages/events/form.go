package events

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/ce1sus/ce1sus-console/components/base"
	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
	"github.com/ce1sus/ce1sus-console/modules/events/presentation/controllers/dtos"
)

func itoa(i int) string {
	return strconv.Itoa(i)
}

type EventFormProps struct {
	Heading   string
	Action    string
	CancelURL string
	Form      *dtos.EventDTO
	Errors    map[string]string
}

func fieldError(h *base.HTML, errs map[string]string, field string) {
	if msg, ok := errs[field]; ok {
		h.Raw(`<span class="field-error">`).Text(msg).Raw(`</span>`)
	}
}

func textInput(h *base.HTML, errs map[string]string, field, label, inputType, value string) {
	h.Raw(`<div class="form-group"><label`).Attr("for", field).Raw(">").Text(label).Raw(`</label><input`).
		Attr("type", inputType).Attr("id", field).Attr("name", field).Attr("value", value).Raw(`>`)
	fieldError(h, errs, field)
	h.Raw(`</div>`)
}

func selectInput(h *base.HTML, errs map[string]string, field, label, value string, options []string) {
	h.Raw(`<div class="form-group"><label`).Attr("for", field).Raw(">").Text(label).Raw(`</label><select`).
		Attr("id", field).Attr("name", field).Raw(`>`)
	for _, o := range options {
		h.Raw(`<option`).Attr("value", o)
		if o == value {
			h.Raw(` selected`)
		}
		h.Raw(">").Text(o).Raw(`</option>`)
	}
	h.Raw(`</select>`)
	fieldError(h, errs, field)
	h.Raw(`</div>`)
}

func EventForm(props *EventFormProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		f := props.Form
		h := base.NewHTML(w).Raw(`<section class="modal event-form"><h3>`).Text(props.Heading).Raw(`</h3>`).
			Raw(`<form method="post"`).Attr("action", props.Action).Raw(`>`)
		fieldError(h, props.Errors, "")
		textInput(h, props.Errors, "Title", "Title", "text", f.Title)
		h.Raw(`<div class="form-group"><label for="Description">Description</label><textarea id="Description" name="Description">`).
			Text(f.Description).Raw(`</textarea></div>`)
		selectInput(h, props.Errors, "Status", "Status", f.Status, event.Statuses)
		selectInput(h, props.Errors, "Risk", "Risk", f.Risk, event.Risks)
		selectInput(h, props.Errors, "Analysis", "Analysis", f.Analysis, event.Analyses)
		selectInput(h, props.Errors, "TLP", "TLP", f.TLP, event.TLPs)
		h.Raw(`<div class="form-group"><label><input type="checkbox" name="Published" value="true"`)
		if f.Published {
			h.Raw(` checked`)
		}
		h.Raw(`> Published</label></div>`)
		textInput(h, props.Errors, "FirstSeen", "First seen", "date", f.FirstSeen)
		textInput(h, props.Errors, "LastSeen", "Last seen", "date", f.LastSeen)
		h.Raw(`<button type="submit" class="btn btn-primary">Save</button> <a class="btn"`).Attr("href", props.CancelURL).Raw(`>Cancel</a>`)
		return h.Raw(`</form></section>`).Err()
	})
}
