// Package rest implements the event repository on top of the ce1sus REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
	"github.com/ce1sus/ce1sus-console/modules/events/domain/observable"
	"github.com/ce1sus/ce1sus-console/modules/events/infrastructure/rest/models"
	"github.com/ce1sus/ce1sus-console/pkg/restclient"
)

// Backend is the part of restclient.Client the repository needs.
type Backend interface {
	DoJSON(ctx context.Context, method, path string, query url.Values, reqBody any, out any) error
	Do(ctx context.Context, method, path string, query url.Values, reqBody any) ([]byte, error)
}

var _ Backend = (*restclient.Client)(nil)

type EventRepository struct {
	backend Backend
}

func NewEventRepository(backend Backend) event.Repository {
	return &EventRepository{backend: backend}
}

func eventPath(id string, rest ...string) string {
	p := "/event/" + url.PathEscape(id)
	for _, r := range rest {
		p += "/" + url.PathEscape(r)
	}
	return p
}

func listQuery(params *event.FindParams) url.Values {
	q := url.Values{}
	if params == nil {
		params = &event.FindParams{}
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	if params.Limit > 0 {
		q.Set("count", strconv.Itoa(params.Limit))
	}
	if params.SortBy != "" {
		direction := "asc"
		if params.SortDesc {
			direction = "desc"
		}
		q.Set("sorting["+params.SortBy+"]", direction)
	}
	q.Set("complete", strconv.FormatBool(params.Complete))
	return q
}

func toPage(m models.EventPage) *event.Page {
	page := &event.Page{Total: m.Total, Data: make([]*event.Event, 0, len(m.Data))}
	for _, e := range m.Data {
		page.Data = append(page.Data, toDomainEvent(e))
	}
	return page
}

func (r *EventRepository) List(ctx context.Context, params *event.FindParams) (*event.Page, error) {
	var out models.EventPage
	if err := r.backend.DoJSON(ctx, http.MethodGet, "/events", listQuery(params), nil, &out); err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}
	return toPage(out), nil
}

func (r *EventRepository) Unvalidated(ctx context.Context, params *event.FindParams) (*event.Page, error) {
	var out models.EventPage
	if err := r.backend.DoJSON(ctx, http.MethodGet, "/validate/unvalidated", listQuery(params), nil, &out); err != nil {
		return nil, errors.Wrap(err, "failed to list unvalidated events")
	}
	return toPage(out), nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*event.Event, error) {
	var out models.Event
	q := url.Values{"complete": {"true"}}
	if err := r.backend.DoJSON(ctx, http.MethodGet, eventPath(id), q, nil, &out); err != nil {
		return nil, errors.Wrapf(err, "failed to get event %s", id)
	}
	if out.Identifier == "" {
		return nil, errors.Wrapf(event.ErrEventNotFound, "event %s", id)
	}
	return toDomainEvent(out), nil
}

func (r *EventRepository) Create(ctx context.Context, e *event.Event) (*event.Event, error) {
	var out models.Event
	if err := r.backend.DoJSON(ctx, http.MethodPost, "/event", nil, toEventInput(e), &out); err != nil {
		return nil, errors.Wrap(err, "failed to create event")
	}
	return toDomainEvent(out), nil
}

func (r *EventRepository) Update(ctx context.Context, e *event.Event) (*event.Event, error) {
	var out models.Event
	if err := r.backend.DoJSON(ctx, http.MethodPut, eventPath(e.Identifier), nil, toEventInput(e), &out); err != nil {
		return nil, errors.Wrapf(err, "failed to update event %s", e.Identifier)
	}
	if out.Identifier == "" {
		return e, nil
	}
	return toDomainEvent(out), nil
}

func (r *EventRepository) Validate(ctx context.Context, id string) (*event.Event, error) {
	body, err := r.backend.Do(ctx, http.MethodPut, eventPath(id, "validate"), nil, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to validate event %s", id)
	}
	var out models.Event
	if len(bytes.TrimSpace(body)) == 0 || json.Unmarshal(body, &out) != nil || out.Identifier == "" {
		return &event.Event{Identifier: id, Validated: true}, nil
	}
	return toDomainEvent(out), nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.backend.Do(ctx, http.MethodDelete, eventPath(id), nil, nil); err != nil {
		return errors.Wrapf(err, "failed to delete event %s", id)
	}
	return nil
}

func (r *EventRepository) Observables(ctx context.Context, id string) ([]observable.Node, error) {
	q := url.Values{"complete": {"true"}, "inflated": {"true"}}
	body, err := r.backend.Do(ctx, http.MethodGet, eventPath(id, "observable"), q, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get observables of event %s", id)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	nodes, err := observable.Decode(body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode observables of event %s", id)
	}
	return nodes, nil
}

func (r *EventRepository) Groups(ctx context.Context) ([]event.Group, error) {
	var out []models.Group
	if err := r.backend.DoJSON(ctx, http.MethodGet, "/group", nil, nil, &out); err != nil {
		return nil, errors.Wrap(err, "failed to list groups")
	}
	groups := make([]event.Group, 0, len(out))
	for i := range out {
		groups = append(groups, toDomainGroup(&out[i]))
	}
	return groups, nil
}

// ChangeGroup succeeds only when the backend answers with the literal OK,
// either raw or as a JSON string.
func (r *EventRepository) ChangeGroup(ctx context.Context, id, groupID string) error {
	body, err := r.backend.Do(ctx, http.MethodPut, eventPath(id, "changegroup"), nil, models.ChangeGroupInput{Identifier: groupID})
	if err != nil {
		return errors.Wrapf(err, "failed to change group of event %s", id)
	}
	answer := string(bytes.TrimSpace(body))
	if answer == "OK" || answer == `"OK"` {
		return nil
	}
	return errors.Wrapf(event.ErrGroupNotChanged, "event %s answered %q", id, answer)
}

func (r *EventRepository) AddComment(ctx context.Context, eventID string, c *event.Comment) (*event.Comment, error) {
	var out models.Comment
	if err := r.backend.DoJSON(ctx, http.MethodPost, eventPath(eventID, "comment"), nil, toDBComment(c), &out); err != nil {
		return nil, errors.Wrapf(err, "failed to add comment to event %s", eventID)
	}
	if out.Identifier == "" && out.Comment == "" {
		return c, nil
	}
	return toDomainComment(out), nil
}

func (r *EventRepository) UpdateComment(ctx context.Context, eventID string, c *event.Comment) (*event.Comment, error) {
	var out models.Comment
	if err := r.backend.DoJSON(ctx, http.MethodPut, eventPath(eventID, "comment", c.Identifier), nil, toDBComment(c), &out); err != nil {
		return nil, errors.Wrapf(err, "failed to update comment %s", c.Identifier)
	}
	if out.Identifier == "" {
		return c, nil
	}
	return toDomainComment(out), nil
}

func (r *EventRepository) DeleteComment(ctx context.Context, eventID, commentID string) error {
	if _, err := r.backend.Do(ctx, http.MethodDelete, eventPath(eventID, "comment", commentID), nil, nil); err != nil {
		return errors.Wrapf(err, "failed to delete comment %s", commentID)
	}
	return nil
}
