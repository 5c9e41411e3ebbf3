// Package inmem is an in-process event.Repository used by controller tests
// and the offline demo backend.
package inmem

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
	"github.com/ce1sus/ce1sus-console/modules/events/domain/observable"
)

var _ event.Repository = (*EventRepository)(nil)

type EventRepository struct {
	events      *SafeMap[string, event.Event]
	observables *SafeMap[string, []observable.Node]
	groups      []event.Group
	seq         atomic.Int64
	now         func() time.Time
	// GroupChangeAnswer mimics the backend body of PUT /event/{id}/changegroup.
	GroupChangeAnswer string
}

func NewEventRepository(groups ...event.Group) *EventRepository {
	return &EventRepository{
		events:            NewSafeMap[string, event.Event](),
		observables:       NewSafeMap[string, []observable.Node](),
		groups:            groups,
		now:               time.Now,
		GroupChangeAnswer: "OK",
	}
}

// Seed stores events as they are, keeping their identifiers.
func (r *EventRepository) Seed(events ...*event.Event) {
	for _, e := range events {
		r.events.Set(e.Identifier, cloneEvent(e))
	}
}

// SetObservables replaces the observable tree of an event.
func (r *EventRepository) SetObservables(eventID string, nodes []observable.Node) {
	r.observables.Set(eventID, nodes)
}

func cloneEvent(e *event.Event) event.Event {
	c := *e
	c.Comments = make([]*event.Comment, 0, len(e.Comments))
	for _, cm := range e.Comments {
		cp := *cm
		c.Comments = append(c.Comments, &cp)
	}
	return c
}

func (r *EventRepository) nextID(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, r.seq.Add(1))
}

func (r *EventRepository) page(params *event.FindParams, keep func(*event.Event) bool) *event.Page {
	if params == nil {
		params = &event.FindParams{}
	}
	all := r.events.Values()
	matched := make([]*event.Event, 0, len(all))
	for i := range all {
		e := cloneEvent(&all[i])
		if keep(&e) {
			matched = append(matched, &e)
		}
	}
	slices.SortStableFunc(matched, func(a, b *event.Event) int {
		if params.SortBy == "created_at" {
			c := a.CreatedAt.Compare(b.CreatedAt)
			if params.SortDesc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return strings.Compare(a.Identifier, b.Identifier)
	})

	result := &event.Page{Total: len(matched)}
	if params.Limit <= 0 {
		result.Data = matched
		return result
	}
	page := max(params.Page, 1)
	start := min((page-1)*params.Limit, len(matched))
	end := min(start+params.Limit, len(matched))
	result.Data = matched[start:end]
	return result
}

func (r *EventRepository) List(_ context.Context, params *event.FindParams) (*event.Page, error) {
	return r.page(params, func(e *event.Event) bool {
		return params == nil || params.Validated == nil || e.Validated == *params.Validated
	}), nil
}

func (r *EventRepository) Unvalidated(_ context.Context, params *event.FindParams) (*event.Page, error) {
	return r.page(params, func(e *event.Event) bool { return !e.Validated }), nil
}

func (r *EventRepository) GetByID(_ context.Context, id string) (*event.Event, error) {
	e, ok := r.events.Get(id)
	if !ok {
		return nil, event.ErrEventNotFound
	}
	c := cloneEvent(&e)
	if nodes, ok := r.observables.Get(id); ok {
		c.ObservableCount = len(nodes)
	}
	return &c, nil
}

func (r *EventRepository) Create(_ context.Context, e *event.Event) (*event.Event, error) {
	c := cloneEvent(e)
	c.Identifier = r.nextID("event-")
	c.UUID = uuid.NewString()
	c.CreatedAt = r.now()
	c.ModifiedOn = c.CreatedAt
	c.Permissions = event.Permissions{CanAdd: true, CanModify: true, CanValidate: true, CanDelete: true}
	if len(r.groups) > 0 {
		c.CreatorGroup = r.groups[0]
		c.ModifierGroup = r.groups[0]
	}
	r.events.Set(c.Identifier, c)
	out := cloneEvent(&c)
	return &out, nil
}

func (r *EventRepository) Update(_ context.Context, e *event.Event) (*event.Event, error) {
	var out event.Event
	ok := r.events.Update(e.Identifier, func(cur event.Event) event.Event {
		cur.Title = e.Title
		cur.Description = e.Description
		cur.Status = e.Status
		cur.Risk = e.Risk
		cur.Analysis = e.Analysis
		cur.TLP = e.TLP
		cur.Published = e.Published
		cur.FirstSeen = e.FirstSeen
		cur.LastSeen = e.LastSeen
		cur.ModifiedOn = r.now()
		out = cloneEvent(&cur)
		return cur
	})
	if !ok {
		return nil, event.ErrEventNotFound
	}
	return &out, nil
}

func (r *EventRepository) Validate(_ context.Context, id string) (*event.Event, error) {
	var out event.Event
	ok := r.events.Update(id, func(cur event.Event) event.Event {
		cur.Validated = true
		out = cloneEvent(&cur)
		return cur
	})
	if !ok {
		return nil, event.ErrEventNotFound
	}
	return &out, nil
}

func (r *EventRepository) Delete(_ context.Context, id string) error {
	if !r.events.Delete(id) {
		return event.ErrEventNotFound
	}
	r.observables.Delete(id)
	return nil
}

func (r *EventRepository) Observables(_ context.Context, id string) ([]observable.Node, error) {
	if _, ok := r.events.Get(id); !ok {
		return nil, event.ErrEventNotFound
	}
	nodes, _ := r.observables.Get(id)
	return nodes, nil
}

func (r *EventRepository) Groups(_ context.Context) ([]event.Group, error) {
	return slices.Clone(r.groups), nil
}

func (r *EventRepository) ChangeGroup(_ context.Context, id, groupID string) error {
	if r.GroupChangeAnswer != "OK" {
		return event.ErrGroupNotChanged
	}
	idx := slices.IndexFunc(r.groups, func(g event.Group) bool { return g.Identifier == groupID })
	if idx < 0 {
		return event.ErrGroupNotChanged
	}
	if !r.events.Update(id, func(cur event.Event) event.Event {
		cur.CreatorGroup = r.groups[idx]
		return cur
	}) {
		return event.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) AddComment(_ context.Context, eventID string, c *event.Comment) (*event.Comment, error) {
	added := *c
	added.Identifier = r.nextID("comment-")
	added.CreatedAt = r.now()
	added.ModifiedOn = added.CreatedAt
	if !r.events.Update(eventID, func(cur event.Event) event.Event {
		cur = cloneEvent(&cur)
		added.CreatorGroup = cur.CreatorGroup
		stored := added
		cur.Comments = append(cur.Comments, &stored)
		return cur
	}) {
		return nil, event.ErrEventNotFound
	}
	return &added, nil
}

func (r *EventRepository) UpdateComment(_ context.Context, eventID string, c *event.Comment) (*event.Comment, error) {
	var (
		out   event.Comment
		found bool
	)
	if !r.events.Update(eventID, func(cur event.Event) event.Event {
		cur = cloneEvent(&cur)
		for _, existing := range cur.Comments {
			if existing.Identifier == c.Identifier {
				existing.Comment = c.Comment
				existing.ModifiedOn = r.now()
				out = *existing
				found = true
			}
		}
		return cur
	}) {
		return nil, event.ErrEventNotFound
	}
	if !found {
		return nil, event.ErrCommentNotFound
	}
	return &out, nil
}

func (r *EventRepository) DeleteComment(_ context.Context, eventID, commentID string) error {
	found := false
	if !r.events.Update(eventID, func(cur event.Event) event.Event {
		cur = cloneEvent(&cur)
		cur.Comments = slices.DeleteFunc(cur.Comments, func(c *event.Comment) bool {
			if c.Identifier == commentID {
				found = true
				return true
			}
			return false
		})
		return cur
	}) {
		return event.ErrEventNotFound
	}
	if !found {
		return event.ErrCommentNotFound
	}
	return nil
}
