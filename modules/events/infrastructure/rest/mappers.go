package rest

import (
	"time"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
	"github.com/ce1sus/ce1sus-console/modules/events/infrastructure/rest/models"
)

func toDomainGroup(g *models.Group) event.Group {
	if g == nil {
		return event.Group{}
	}
	return event.Group{
		Identifier:  g.Identifier,
		Name:        g.Name,
		Description: g.Description,
	}
}

func timeOf(t *models.Timestamp) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.Time
}

func timePtrOf(t *models.Timestamp) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

func toTimestamp(t *time.Time) *models.Timestamp {
	if t == nil || t.IsZero() {
		return nil
	}
	return &models.Timestamp{Time: *t}
}

func toDomainComment(c models.Comment) *event.Comment {
	return &event.Comment{
		Identifier:   c.Identifier,
		Comment:      c.Comment,
		CreatorGroup: toDomainGroup(c.CreatorGroup),
		CreatedAt:    timeOf(c.CreatedAt),
		ModifiedOn:   timeOf(c.ModifiedOn),
	}
}

func toDBComment(c *event.Comment) models.Comment {
	return models.Comment{
		Identifier: c.Identifier,
		Comment:    c.Comment,
	}
}

func toDomainEvent(m models.Event) *event.Event {
	e := &event.Event{
		Identifier:      m.Identifier,
		UUID:            m.UUID,
		Title:           m.Title,
		Description:     m.Description,
		Status:          m.Status,
		Risk:            m.Risk,
		Analysis:        m.Analysis,
		TLP:             m.TLP,
		Published:       bool(m.Published),
		FirstSeen:       timePtrOf(m.FirstSeen),
		LastSeen:        timePtrOf(m.LastSeen),
		CreatedAt:       timeOf(m.CreatedAt),
		ModifiedOn:      timeOf(m.ModifiedOn),
		CreatorGroup:    toDomainGroup(m.CreatorGroup),
		ModifierGroup:   toDomainGroup(m.ModifierGroup),
		ObservableCount: m.ObservablesCount,
		Comments:        make([]*event.Comment, 0, len(m.Comments)),
	}
	for _, c := range m.Comments {
		e.Comments = append(e.Comments, toDomainComment(c))
	}
	if m.Properties != nil {
		e.Shared = bool(m.Properties.Shared)
		e.Validated = bool(m.Properties.Validated)
	}
	if p := m.UserPermissions; p != nil {
		e.Permissions = event.Permissions{
			CanAdd:      bool(p.Add),
			CanModify:   bool(p.Modify),
			CanValidate: bool(p.Validate),
			CanDelete:   bool(p.Delete),
			CanProcess:  bool(p.Process),
		}
	}
	return e
}

func toEventInput(e *event.Event) models.EventInput {
	published := 0
	if e.Published {
		published = 1
	}
	return models.EventInput{
		Identifier:  e.Identifier,
		Title:       e.Title,
		Description: e.Description,
		Status:      e.Status,
		Risk:        e.Risk,
		Analysis:    e.Analysis,
		TLP:         e.TLP,
		Published:   published,
		FirstSeen:   toTimestamp(e.FirstSeen),
		LastSeen:    toTimestamp(e.LastSeen),
	}
}
