package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
	"github.com/ce1sus/ce1sus-console/pkg/application"
	"github.com/ce1sus/ce1sus-console/pkg/eventbus"
)

var domainEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ce1sus_console",
	Subsystem: "events",
	Name:      "domain_events_total",
	Help:      "Successful event and comment mutations by kind.",
}, []string{"kind"})

// EventLogHandler writes an audit line for every successful mutation.
type EventLogHandler struct {
	logger *logrus.Logger
}

func RegisterEventLogHandlers(app application.Application, logger *logrus.Logger) *EventLogHandler {
	handler := NewEventLogHandler(logger)
	handler.Subscribe(app.EventPublisher())
	return handler
}

func NewEventLogHandler(logger *logrus.Logger) *EventLogHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &EventLogHandler{logger: logger}
}

func (h *EventLogHandler) Subscribe(bus eventbus.EventBus) {
	bus.Subscribe(h.onCreated)
	bus.Subscribe(h.onUpdated)
	bus.Subscribe(h.onValidated)
	bus.Subscribe(h.onDeleted)
	bus.Subscribe(h.onCommentAdded)
	bus.Subscribe(h.onCommentUpdated)
	bus.Subscribe(h.onCommentDeleted)
	bus.Subscribe(h.onGroupChanged)
}

func (h *EventLogHandler) record(kind string, fields logrus.Fields) {
	domainEventsTotal.WithLabelValues(kind).Inc()
	h.logger.WithFields(fields).WithField("kind", kind).Info("event mutation")
}

func (h *EventLogHandler) onCreated(e *event.CreatedEvent) {
	h.record("event_created", logrus.Fields{"event_id": e.Result.Identifier, "title": e.Result.Title})
}

func (h *EventLogHandler) onUpdated(e *event.UpdatedEvent) {
	h.record("event_updated", logrus.Fields{"event_id": e.Result.Identifier, "title": e.Result.Title})
}

func (h *EventLogHandler) onValidated(e *event.ValidatedEvent) {
	h.record("event_validated", logrus.Fields{"event_id": e.Result.Identifier})
}

func (h *EventLogHandler) onDeleted(e *event.DeletedEvent) {
	h.record("event_deleted", logrus.Fields{"event_id": e.Identifier})
}

func (h *EventLogHandler) onCommentAdded(e *event.CommentAddedEvent) {
	h.record("comment_added", logrus.Fields{"event_id": e.EventID, "comment_id": e.Result.Identifier})
}

func (h *EventLogHandler) onCommentUpdated(e *event.CommentUpdatedEvent) {
	h.record("comment_updated", logrus.Fields{"event_id": e.EventID, "comment_id": e.Result.Identifier})
}

func (h *EventLogHandler) onCommentDeleted(e *event.CommentDeletedEvent) {
	h.record("comment_deleted", logrus.Fields{"event_id": e.EventID, "comment_id": e.CommentID})
}

func (h *EventLogHandler) onGroupChanged(e *event.GroupChangedEvent) {
	h.record("group_changed", logrus.Fields{"event_id": e.EventID, "group_id": e.GroupID})
}
