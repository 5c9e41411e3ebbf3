package event

// Domain events published on the event bus after a successful backend call.

type CreatedEvent struct {
	Result Event
}

type UpdatedEvent struct {
	Data   Event
	Result Event
}

type ValidatedEvent struct {
	Result Event
}

type DeletedEvent struct {
	Identifier string
}

type CommentAddedEvent struct {
	EventID string
	Result  Comment
}

type CommentUpdatedEvent struct {
	EventID string
	Result  Comment
}

type CommentDeletedEvent struct {
	EventID   string
	CommentID string
}

type GroupChangedEvent struct {
	EventID string
	GroupID string
}
