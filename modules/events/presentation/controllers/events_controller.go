package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/ce1sus/ce1sus-console/components/base"
	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
	"github.com/ce1sus/ce1sus-console/modules/events/presentation/controllers/dtos"
	"github.com/ce1sus/ce1sus-console/modules/events/presentation/mappers"
	eventpages "github.com/ce1sus/ce1sus-console/modules/events/presentation/templates/pages/events"
	"github.com/ce1sus/ce1sus-console/modules/events/services"
	"github.com/ce1sus/ce1sus-console/pkg/application"
	"github.com/ce1sus/ce1sus-console/pkg/composables"
	"github.com/ce1sus/ce1sus-console/pkg/middleware"
	"github.com/ce1sus/ce1sus-console/pkg/notify"
	"github.com/ce1sus/ce1sus-console/pkg/tabs"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ListingOptions are the page sizes of the listings and the flat observable table.
type ListingOptions struct {
	PageSize     int
	MaxPageSize  int
	FlatPageSize int
}

type EventsController struct {
	app       application.Application
	events    *services.EventService
	export    *services.ExportService
	presenter notify.ErrorPresenter
	opts      ListingOptions
	basePath  string
}

func NewEventsController(app application.Application, opts ListingOptions) application.Controller {
	return &EventsController{
		app:       app,
		events:    app.Service(services.EventService{}).(*services.EventService),
		export:    app.Service(services.ExportService{}).(*services.ExportService),
		presenter: notify.NewErrorPresenter(),
		opts:      opts,
		basePath:  "/events",
	}
}

func (c *EventsController) Key() string {
	return c.basePath
}

func (c *EventsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.WithPageContext(c.app.NavItems))

	router.HandleFunc("/all", c.List).Methods(http.MethodGet)
	router.HandleFunc("/add", c.GetNew).Methods(http.MethodGet)
	router.HandleFunc("/add", c.Create).Methods(http.MethodPost)

	record := router.PathPrefix("/event/{id}").Subrouter()
	record.HandleFunc("", c.Detail).Methods(http.MethodGet)
	record.HandleFunc("/edit", c.GetEdit).Methods(http.MethodGet)
	record.HandleFunc("/edit", c.Update).Methods(http.MethodPost)
	record.HandleFunc("/delete", c.GetDelete).Methods(http.MethodGet)
	record.HandleFunc("/delete", c.Delete).Methods(http.MethodPost)
	record.HandleFunc("/close", c.Close).Methods(http.MethodPost)
	record.HandleFunc("/validate", c.Validate).Methods(http.MethodPost)
	record.HandleFunc("/changegroup", c.ChangeGroup).Methods(http.MethodPost)

	record.HandleFunc("/comments", c.AddComment).Methods(http.MethodPost)
	record.HandleFunc("/comments/{cid}", c.CommentDetails).Methods(http.MethodGet)
	record.HandleFunc("/comments/{cid}/edit", c.GetEditComment).Methods(http.MethodGet)
	record.HandleFunc("/comments/{cid}/edit", c.UpdateComment).Methods(http.MethodPost)
	record.HandleFunc("/comments/{cid}/delete", c.GetDeleteComment).Methods(http.MethodGet)
	record.HandleFunc("/comments/{cid}/delete", c.DeleteComment).Methods(http.MethodPost)

	record.HandleFunc("/observables", c.Observables).Methods(http.MethodGet)
	record.HandleFunc("/observables/flat.xlsx", c.ExportFlat).Methods(http.MethodGet)
}

func (c *EventsController) detailPath(id string) string {
	return tabs.Events.DetailPath(id)
}

func (c *EventsController) List(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	params := composables.UsePaginatedWith(r, c.opts.PageSize, c.opts.MaxPageSize)
	page, err := c.events.List(r.Context(), &event.FindParams{
		Limit:    params.Limit,
		Page:     params.Page,
		SortBy:   "created_at",
		SortDesc: true,
	})
	if err != nil {
		renderFailure(w, r, st, c.presenter, err)
		return
	}
	render(w, r, st, "Recent events", http.StatusOK, eventpages.EventList(&eventpages.ListPageProps{
		Heading:      "Recent events",
		Items:        mappers.EventsToListItems(page.Data),
		Pagination:   mappers.NewPagination(c.basePath+"/all", params.Page, params.Limit, page.Total),
		DetailPrefix: tabs.Events.DetailPrefix,
		AddURL:       c.basePath + "/add",
	}))
}

func (c *EventsController) eventForm(heading, action, cancel string, form *dtos.EventDTO, errs map[string]string) templ.Component {
	return eventpages.EventForm(&eventpages.EventFormProps{
		Heading:   heading,
		Action:    action,
		CancelURL: cancel,
		Form:      form,
		Errors:    errs,
	})
}

func (c *EventsController) GetNew(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	form := c.eventForm("Add event", c.basePath+"/add", c.basePath+"/all", dtos.NewEventDTO(), nil)
	render(w, r, st, "Add event", http.StatusOK, form)
}

func (c *EventsController) Create(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	dto, err := composables.UseForm(&dtos.EventDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		render(w, r, st, "Add event", http.StatusUnprocessableEntity,
			c.eventForm("Add event", c.basePath+"/add", c.basePath+"/all", dto, errs))
		return
	}
	entity, err := dto.ToEntity("")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := c.events.Create(r.Context(), entity)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to create event")
		st.notify(c.presenter.Present(err))
		render(w, r, st, "Add event", statusOf(err),
			c.eventForm("Add event", c.basePath+"/add", c.basePath+"/all", dto, nil))
		return
	}
	st.notify(notify.Successf(MessageEventAdded))
	location := st.tabs.Add(created.Identifier, created.Title, true)
	if location == "" {
		location = c.detailPath(created.Identifier)
	}
	redirect(w, r, st, location)
}

// renderEventDetail loads an event, opens its tab in the section of st and
// renders the detail page.
func renderEventDetail(
	w http.ResponseWriter,
	r *http.Request,
	st *uiState,
	eventService *services.EventService,
	presenter notify.ErrorPresenter,
	validationMode bool,
) {
	id := mux.Vars(r)["id"]
	e, err := eventService.GetByID(r.Context(), id)
	if err != nil {
		renderFailure(w, r, st, presenter, err)
		return
	}
	st.tabs.Add(e.Identifier, e.Title, false)

	vm := mappers.EventToViewModel(e)
	var groups []event.Group
	if !validationMode && e.Permissions.CanModify {
		groups, err = eventService.Groups(r.Context())
		if err != nil {
			composables.UseLogger(r.Context()).WithError(err).Warn("failed to load groups")
		}
	}
	render(w, r, st, e.Title, http.StatusOK, eventpages.EventDetail(&eventpages.DetailPageProps{
		Event:          vm,
		Groups:         mappers.GroupsToViewModels(groups),
		BasePath:       st.tabs.Section().DetailPath(e.Identifier),
		ValidationMode: validationMode,
	}))
}

func (c *EventsController) Detail(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	renderEventDetail(w, r, st, c.events, c.presenter, false)
}

func (c *EventsController) GetEdit(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	id := mux.Vars(r)["id"]
	e, err := c.events.GetByID(r.Context(), id)
	if err != nil {
		renderFailure(w, r, st, c.presenter, err)
		return
	}
	detail := c.detailPath(id)
	render(w, r, st, "Edit event", http.StatusOK,
		c.eventForm("Edit event", detail+"/edit", detail, dtos.EventDTOFromEntity(e), nil))
}

func (c *EventsController) Update(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	id := mux.Vars(r)["id"]
	detail := c.detailPath(id)
	current, err := c.events.GetByID(r.Context(), id)
	if err != nil {
		renderFailure(w, r, st, c.presenter, err)
		return
	}
	snapshot := dtos.EventDTOFromEntity(current)

	dto, err := composables.UseForm(&dtos.EventDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		render(w, r, st, "Edit event", http.StatusUnprocessableEntity,
			c.eventForm("Edit event", detail+"/edit", detail, dto, errs))
		return
	}
	changed, err := dto.Changed(snapshot)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !changed {
		redirect(w, r, st, detail)
		return
	}
	entity, err := dto.ToEntity(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	updated, err := c.events.Update(r.Context(), entity)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to update event")
		st.notify(c.presenter.Present(err))
		render(w, r, st, "Edit event", statusOf(err),
			c.eventForm("Edit event", detail+"/edit", detail, snapshot, nil))
		return
	}
	st.tabs.Rename(id, updated.Title)
	st.notify(notify.Successf(MessageEventEdited))
	redirect(w, r, st, detail)
}

func (c *EventsController) GetDelete(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	detail := c.detailPath(mux.Vars(r)["id"])
	render(w, r, st, "Delete event", http.StatusOK, base.Confirm(&base.ConfirmProps{
		Title:     "Delete event",
		Question:  "Are you sure you want to delete this event?",
		Action:    detail + "/delete",
		CancelURL: detail,
	}))
}

func (c *EventsController) Delete(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	id := mux.Vars(r)["id"]
	confirm, err := composables.UseForm(&dtos.ConfirmDTO{}, r)
	if err != nil || !confirm.Confirmed() {
		redirect(w, r, st, c.detailPath(id))
		return
	}
	if err := c.events.Delete(r.Context(), id); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to delete event")
		st.notify(c.presenter.Present(err))
		redirect(w, r, st, c.detailPath(id))
		return
	}
	validation := st.other(tabs.Validation)
	validation.Remove(id)
	st.tabs.Remove(id)
	st.notify(notify.Successf(MessageEventRemoved))
	redirect(w, r, st, tabs.Events.ListingPath, validation)
}

// closeTab removes the tab of the event from the section of st. Closing a tab
// that is not open answers 204 and stays on the page.
func closeTab(w http.ResponseWriter, r *http.Request, st *uiState) {
	location := st.tabs.Remove(mux.Vars(r)["id"])
	if location == "" {
		if err := st.save(w, r); err != nil {
			sessionNotSaved(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}
	redirect(w, r, st, location)
}

func (c *EventsController) Close(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	closeTab(w, r, st)
}

// validateEvent validates the event and closes its validation tab. It reports
// whether the backend accepted the validation.
func validateEvent(r *http.Request, st *uiState, eventService *services.EventService, presenter notify.ErrorPresenter) (*tabs.Registry, bool) {
	id := mux.Vars(r)["id"]
	validation := st.tabs
	if validation.Section() != tabs.Validation {
		validation = st.other(tabs.Validation)
	}
	if _, err := eventService.Validate(r.Context(), id); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to validate event")
		st.notify(presenter.Present(err))
		return validation, false
	}
	validation.Remove(id)
	st.notify(notify.Successf(MessageEventValidated))
	return validation, true
}

func (c *EventsController) Validate(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	validation, _ := validateEvent(r, st, c.events, c.presenter)
	redirect(w, r, st, c.detailPath(mux.Vars(r)["id"]), validation)
}

func (c *EventsController) ChangeGroup(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	id := mux.Vars(r)["id"]
	dto, err := composables.UseForm(&dtos.ChangeGroupDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, ok := dto.Ok(r.Context()); !ok {
		st.notify(notify.Message{Type: notify.Danger, Message: MessageGroupNotChanged})
		redirect(w, r, st, c.detailPath(id))
		return
	}
	switch err := c.events.ChangeGroup(r.Context(), id, dto.GroupID); {
	case errors.Is(err, event.ErrGroupNotChanged):
		st.notify(notify.Message{Type: notify.Danger, Message: MessageGroupNotChanged})
	case err != nil:
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to change group")
		st.notify(c.presenter.Present(err))
	default:
		st.notify(notify.Successf(MessageGroupChanged))
	}
	redirect(w, r, st, c.detailPath(id))
}

func (c *EventsController) AddComment(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	id := mux.Vars(r)["id"]
	detail := c.detailPath(id)
	dto, err := composables.UseForm(&dtos.CommentDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		render(w, r, st, "Add comment", http.StatusUnprocessableEntity, eventpages.CommentForm(&eventpages.CommentFormProps{
			Heading:   "Add comment",
			Action:    detail + "/comments",
			CancelURL: detail,
			Comment:   dto.Comment,
			Errors:    errs,
		}))
		return
	}
	if _, err := c.events.AddComment(r.Context(), id, dto.ToEntity("")); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to add comment")
		st.notify(c.presenter.Present(err))
	} else {
		st.notify(notify.Successf(MessageCommentAdded))
	}
	redirect(w, r, st, detail)
}

func (c *EventsController) CommentDetails(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	vars := mux.Vars(r)
	comment, err := c.events.GetComment(r.Context(), vars["id"], vars["cid"])
	if err != nil {
		renderFailure(w, r, st, c.presenter, err)
		return
	}
	render(w, r, st, "Comment", http.StatusOK, eventpages.CommentDetails(&eventpages.CommentDetailsProps{
		Comment:  mappers.CommentToViewModel(vars["id"], comment),
		BasePath: c.detailPath(vars["id"]),
	}))
}

func (c *EventsController) GetEditComment(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	vars := mux.Vars(r)
	comment, err := c.events.GetComment(r.Context(), vars["id"], vars["cid"])
	if err != nil {
		renderFailure(w, r, st, c.presenter, err)
		return
	}
	detail := c.detailPath(vars["id"])
	render(w, r, st, "Edit comment", http.StatusOK, eventpages.CommentForm(&eventpages.CommentFormProps{
		Heading:   "Edit comment",
		Action:    fmt.Sprintf("%s/comments/%s/edit", detail, vars["cid"]),
		CancelURL: detail,
		Comment:   comment.Comment,
	}))
}

func (c *EventsController) UpdateComment(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	vars := mux.Vars(r)
	detail := c.detailPath(vars["id"])
	current, err := c.events.GetComment(r.Context(), vars["id"], vars["cid"])
	if err != nil {
		renderFailure(w, r, st, c.presenter, err)
		return
	}
	dto, err := composables.UseForm(&dtos.CommentDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	action := fmt.Sprintf("%s/comments/%s/edit", detail, vars["cid"])
	if errs, ok := dto.Ok(r.Context()); !ok {
		render(w, r, st, "Edit comment", http.StatusUnprocessableEntity, eventpages.CommentForm(&eventpages.CommentFormProps{
			Heading:   "Edit comment",
			Action:    action,
			CancelURL: detail,
			Comment:   dto.Comment,
			Errors:    errs,
		}))
		return
	}
	if dto.Comment == current.Comment {
		redirect(w, r, st, detail)
		return
	}
	if _, err := c.events.UpdateComment(r.Context(), vars["id"], dto.ToEntity(vars["cid"])); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to update comment")
		st.notify(c.presenter.Present(err))
		render(w, r, st, "Edit comment", statusOf(err), eventpages.CommentForm(&eventpages.CommentFormProps{
			Heading:   "Edit comment",
			Action:    action,
			CancelURL: detail,
			Comment:   current.Comment,
		}))
		return
	}
	st.notify(notify.Successf(MessageCommentEdited))
	redirect(w, r, st, detail)
}

func (c *EventsController) GetDeleteComment(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	vars := mux.Vars(r)
	detail := c.detailPath(vars["id"])
	render(w, r, st, "Delete comment", http.StatusOK, base.Confirm(&base.ConfirmProps{
		Title:     "Delete comment",
		Question:  "Are you sure you want to delete this comment?",
		Action:    fmt.Sprintf("%s/comments/%s/delete", detail, vars["cid"]),
		CancelURL: detail,
	}))
}

func (c *EventsController) DeleteComment(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	vars := mux.Vars(r)
	detail := c.detailPath(vars["id"])
	confirm, err := composables.UseForm(&dtos.ConfirmDTO{}, r)
	if err != nil || !confirm.Confirmed() {
		redirect(w, r, st, detail)
		return
	}
	if err := c.events.DeleteComment(r.Context(), vars["id"], vars["cid"]); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to delete comment")
		st.notify(c.presenter.Present(err))
	} else {
		st.notify(notify.Successf(MessageCommentRemoved))
	}
	redirect(w, r, st, detail)
}

func (c *EventsController) Observables(w http.ResponseWriter, r *http.Request) {
	st, err := useUIState(r, tabs.Events)
	if err != nil {
		sessionUnavailable(w, r, err)
		return
	}
	id := mux.Vars(r)["id"]
	e, err := c.events.GetByID(r.Context(), id)
	if err != nil {
		renderFailure(w, r, st, c.presenter, err)
		return
	}
	nodes, err := c.events.Observables(r.Context(), id)
	if err != nil {
		renderFailure(w, r, st, c.presenter, err)
		return
	}
	detail := c.detailPath(id)
	if composables.GetLastQueryParam(r, "view") != "flat" {
		render(w, r, st, e.Title, http.StatusOK, eventpages.StructuredObservables(&eventpages.ObservablesProps{
			EventTitle: e.Title,
			BasePath:   detail,
			Nodes:      mappers.ObservablesToViewModels(nodes),
		}))
		return
	}
	page, err := strconv.Atoi(composables.GetLastQueryParam(r, "page"))
	if err != nil || page < 1 {
		page = 1
	}
	render(w, r, st, e.Title, http.StatusOK, eventpages.FlatObservables(&eventpages.FlatObservablesProps{
		EventTitle: e.Title,
		BasePath:   detail,
		Page:       mappers.FlatPage(nodes, page-1, c.opts.FlatPageSize),
	}))
}

func (c *EventsController) ExportFlat(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	content, err := c.export.FlatObservablesXLSX(r.Context(), id)
	if err != nil {
		st, stErr := useUIState(r, tabs.Events)
		if stErr != nil {
			sessionUnavailable(w, r, stErr)
			return
		}
		renderFailure(w, r, st, c.presenter, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="event-%s-observables.xlsx"`, id))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to write export")
	}
}
