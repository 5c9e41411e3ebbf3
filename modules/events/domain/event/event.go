package event

import (
	"context"
	"errors"
	"time"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/observable"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrCommentNotFound = errors.New("comment not found")
	// ErrGroupNotChanged is returned when the backend answers a group change
	// with anything but "OK".
	ErrGroupNotChanged = errors.New("could not change group")
)

type Group struct {
	Identifier  string
	Name        string
	Description string
}

// Permissions are the rights of the current user on one event.
type Permissions struct {
	CanAdd      bool
	CanModify   bool
	CanValidate bool
	CanDelete   bool
	CanProcess  bool
}

type Event struct {
	Identifier      string
	UUID            string
	Title           string
	Description     string
	Status          string
	Risk            string
	Analysis        string
	TLP             string
	Published       bool
	Shared          bool
	Validated       bool
	FirstSeen       *time.Time
	LastSeen        *time.Time
	CreatedAt       time.Time
	ModifiedOn      time.Time
	CreatorGroup    Group
	ModifierGroup   Group
	Comments        []*Comment
	ObservableCount int
	Permissions     Permissions
}

type Comment struct {
	Identifier   string
	Comment      string
	CreatorGroup Group
	CreatedAt    time.Time
	ModifiedOn   time.Time
}

// Comment returns the comment with the given identifier.
func (e *Event) Comment(identifier string) (*Comment, error) {
	for _, c := range e.Comments {
		if c.Identifier == identifier {
			return c, nil
		}
	}
	return nil, ErrCommentNotFound
}

type FindParams struct {
	Limit int
	// Page is 1-based.
	Page      int
	SortBy    string
	SortDesc  bool
	Complete  bool
	Validated *bool
}

type Page struct {
	Total int
	Data  []*Event
}

type Repository interface {
	List(ctx context.Context, params *FindParams) (*Page, error)
	Unvalidated(ctx context.Context, params *FindParams) (*Page, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Create(ctx context.Context, e *Event) (*Event, error)
	Update(ctx context.Context, e *Event) (*Event, error)
	Validate(ctx context.Context, id string) (*Event, error)
	Delete(ctx context.Context, id string) error

	Observables(ctx context.Context, id string) ([]observable.Node, error)

	Groups(ctx context.Context) ([]Group, error)
	ChangeGroup(ctx context.Context, id, groupID string) error

	AddComment(ctx context.Context, eventID string, c *Comment) (*Comment, error)
	UpdateComment(ctx context.Context, eventID string, c *Comment) (*Comment, error)
	DeleteComment(ctx context.Context, eventID, commentID string) error
}
