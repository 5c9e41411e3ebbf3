package services

import (
	"context"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
	"github.com/ce1sus/ce1sus-console/modules/events/domain/observable"
	"github.com/ce1sus/ce1sus-console/pkg/eventbus"
)

// EventService wraps the event repository and publishes a domain event after
// every successful mutation.
type EventService struct {
	repo      event.Repository
	publisher eventbus.EventBus
}

func NewEventService(repo event.Repository, publisher eventbus.EventBus) *EventService {
	return &EventService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *EventService) List(ctx context.Context, params *event.FindParams) (*event.Page, error) {
	return s.repo.List(ctx, params)
}

// Unvalidated lists events awaiting validation, newest first.
func (s *EventService) Unvalidated(ctx context.Context, params *event.FindParams) (*event.Page, error) {
	return s.repo.Unvalidated(ctx, params)
}

func (s *EventService) GetByID(ctx context.Context, id string) (*event.Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EventService) Create(ctx context.Context, data *event.Event) (*event.Event, error) {
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(&event.CreatedEvent{Result: *created})
	return created, nil
}

func (s *EventService) Update(ctx context.Context, data *event.Event) (*event.Event, error) {
	updated, err := s.repo.Update(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(&event.UpdatedEvent{Data: *data, Result: *updated})
	return updated, nil
}

func (s *EventService) Validate(ctx context.Context, id string) (*event.Event, error) {
	validated, err := s.repo.Validate(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(&event.ValidatedEvent{Result: *validated})
	return validated, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(&event.DeletedEvent{Identifier: id})
	return nil
}

func (s *EventService) Observables(ctx context.Context, id string) ([]observable.Node, error) {
	return s.repo.Observables(ctx, id)
}

// FlatObservables returns the flattened observable rows of an event.
func (s *EventService) FlatObservables(ctx context.Context, id string) ([]*observable.FlatRow, error) {
	nodes, err := s.repo.Observables(ctx, id)
	if err != nil {
		return nil, err
	}
	return observable.Flatten(nodes), nil
}

func (s *EventService) Groups(ctx context.Context) ([]event.Group, error) {
	return s.repo.Groups(ctx)
}

func (s *EventService) ChangeGroup(ctx context.Context, id, groupID string) error {
	if err := s.repo.ChangeGroup(ctx, id, groupID); err != nil {
		return err
	}
	s.publisher.Publish(&event.GroupChangedEvent{EventID: id, GroupID: groupID})
	return nil
}

func (s *EventService) GetComment(ctx context.Context, eventID, commentID string) (*event.Comment, error) {
	e, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return e.Comment(commentID)
}

func (s *EventService) AddComment(ctx context.Context, eventID string, c *event.Comment) (*event.Comment, error) {
	added, err := s.repo.AddComment(ctx, eventID, c)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(&event.CommentAddedEvent{EventID: eventID, Result: *added})
	return added, nil
}

func (s *EventService) UpdateComment(ctx context.Context, eventID string, c *event.Comment) (*event.Comment, error) {
	updated, err := s.repo.UpdateComment(ctx, eventID, c)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(&event.CommentUpdatedEvent{EventID: eventID, Result: *updated})
	return updated, nil
}

func (s *EventService) DeleteComment(ctx context.Context, eventID, commentID string) error {
	if err := s.repo.DeleteComment(ctx, eventID, commentID); err != nil {
		return err
	}
	s.publisher.Publish(&event.CommentDeletedEvent{EventID: eventID, CommentID: commentID})
	return nil
}
