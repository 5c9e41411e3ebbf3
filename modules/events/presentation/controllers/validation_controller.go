package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
	"github.com/ce1sus/ce1sus-console/modules/events/presentation/mappers"
	eventpages "github.com/ce1sus/ce1sus-console/modules/events/presentation/templates/pages/events"
	"github.com/ce1sus/ce1sus-console/modules/events/services"
	"github.com/ce1sus/ce1sus-console/pkg/application"
	"github.com/ce1sus/ce1sus-console/pkg/composables"
	"github.com/ce1sus/ce1sus-console/pkg/middleware"
	"github.com/ce1sus/ce1sus-console/pkg/notify"
	"github.com/ce1sus/ce1sus-console/pkg/tabs"
)

// ValidationController serves the admin queue of events waiting for validation.
type ValidationController struct {
	app       application.Application
	events    *services.EventService
	presenter notify.ErrorPresenter
	opts      ListingOptions
	basePath  string
}

func NewValidationController(app application.Application, opts ListingOptions) application.Controller {
	return &ValidationController{
		app:       app,
		events:    app.Service(services.EventService{}).(*services.EventService),
		presenter: notify.NewErrorPresenter(),
		opts:      opts,
		basePath:  "/admin/validation",
	}
}

func (c *ValidationController) Key() string {
	return c.basePath
}

func (c *ValidationController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.WithPageContext(c.app.NavItems))

	router.HandleFunc("/all", c.List).Methods(http.MethodGet)
	router.HandleFunc("/event/{id}", c.Detail).Methods(http.MethodGet)
	router.HandleFunc("/event/{id}/close", c.Close).Methods(http.MethodPost)
	router.HandleFunc("/event/{id}/validate", c.Validate).Methods(http.MethodPost)
}

func (c *ValidationController) List(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Validation)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	params := composables.UsePaginatedWith(r, c.opts.PageSize, c.opts.MaxPageSize)
	page, err := c.events.Unvalidated(r.Context(), &event.FindParams{
		Limit:    params.Limit,
		Page:     params.Page,
		SortBy:   "created_at",
		SortDesc: true,
	})
	if err != nil {
		renderFailure(w, r, st, c.presenter, err)
		return
	}
	render(w, r, st, "Unvalidated events", http.StatusOK, eventpages.EventList(&eventpages.ListPageProps{
		Heading:      "Unvalidated events",
		Items:        mappers.EventsToListItems(page.Data),
		Pagination:   mappers.NewPagination(tabs.Validation.ListingPath, params.Page, params.Limit, page.Total),
		DetailPrefix: tabs.Validation.DetailPrefix,
	}))
}

func (c *ValidationController) Detail(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Validation)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	renderEventDetail(w, r, st, c.events, c.presenter, true)
}

func (c *ValidationController) Close(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Validation)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	closeTab(w, r, st)
}

// Validate sends the admin back to the queue once the event left it.
func (c *ValidationController) Validate(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Validation)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	if _, ok := validateEvent(r, st, c.events, c.presenter); !ok {
		redirect(w, r, st, tabs.Validation.DetailPath(mux.Vars(r)["id"]))
		return
	}
	redirect(w, r, st, tabs.Validation.ListingPath)
}
