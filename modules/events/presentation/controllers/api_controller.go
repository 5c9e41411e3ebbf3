package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
	"github.com/ce1sus/ce1sus-console/modules/events/presentation/mappers"
	"github.com/ce1sus/ce1sus-console/modules/events/services"
	"github.com/ce1sus/ce1sus-console/pkg/application"
	"github.com/ce1sus/ce1sus-console/pkg/composables"
	"github.com/ce1sus/ce1sus-console/pkg/httpapi"
)

// EventsAPIController exposes the flattened observable table as JSON.
type EventsAPIController struct {
	events       *services.EventService
	flatPageSize int
	basePath     string
}

func NewEventsAPIController(app application.Application, opts ListingOptions) application.Controller {
	return &EventsAPIController{
		events:       app.Service(services.EventService{}).(*services.EventService),
		flatPageSize: opts.FlatPageSize,
		basePath:     "/api/v1/events",
	}
}

func (c *EventsAPIController) Key() string {
	return c.basePath
}

func (c *EventsAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/{id}/observables/flat", c.FlatObservables).Methods(http.MethodGet)
}

// FlatObservables answers one 0-based page of the flat table.
func (c *EventsAPIController) FlatObservables(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	page := 0
	if raw := composables.GetLastQueryParam(r, "page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 0 {
			httpapi.WriteError(w, http.StatusBadRequest, "INVALID_PAGE", "page must be a non-negative integer", map[string]string{"page": raw})
			return
		}
		page = p
	}

	nodes, err := c.events.Observables(r.Context(), id)
	if err != nil {
		writeAPIError(w, r, id, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, mappers.FlatPage(nodes, page, c.flatPageSize))
}

func writeAPIError(w http.ResponseWriter, r *http.Request, id string, err error) {
	if errors.Is(err, event.ErrEventNotFound) {
		httpapi.WriteError(w, http.StatusNotFound, "EVENT_NOT_FOUND", "event not found", map[string]string{"event": id})
		return
	}
	composables.UseLogger(r.Context()).WithError(err).Warn("failed to load observables")
	httpapi.WriteBackendError(w, err)
}
