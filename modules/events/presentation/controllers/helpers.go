package controllers

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/sessions"

	"github.com/ce1sus/ce1sus-console/components/base"
	"github.com/ce1sus/ce1sus-console/modules/core/presentation/templates/layouts"
	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
	"github.com/ce1sus/ce1sus-console/pkg/composables"
	"github.com/ce1sus/ce1sus-console/pkg/htmx"
	"github.com/ce1sus/ce1sus-console/pkg/notify"
	"github.com/ce1sus/ce1sus-console/pkg/restclient"
	"github.com/ce1sus/ce1sus-console/pkg/tabs"
)

const (
	MessageEventAdded      = "Event successfully added"
	MessageEventEdited     = "Event successfully edited"
	MessageEventValidated  = "Event successfully validated"
	MessageEventRemoved    = "Event successfully removed"
	MessageCommentAdded    = "Comment successfully added"
	MessageCommentEdited   = "Comment successfully edited"
	MessageCommentRemoved  = "Comment successfully removed"
	MessageGroupChanged    = "Event owner successfully changed"
	MessageGroupNotChanged = "Could not change group"
)

var listingTitles = map[string]string{
	tabs.Events.Key:     "Recent events",
	tabs.Validation.Key: "Unvalidated events",
}

// uiState is the per-browser state of one section: its open tabs and the
// pending notification, both kept in the session.
type uiState struct {
	sess *sessions.Session
	tabs *tabs.Registry
}

func useUIState(r *http.Request, section tabs.Section) (*uiState, error) {
	sess, err := composables.UseSession(r.Context())
	if err != nil {
		return nil, err
	}
	return &uiState{sess: sess, tabs: tabs.FromSession(sess, section)}, nil
}

// other returns the tabs of another section sharing the same session.
func (s *uiState) other(section tabs.Section) *tabs.Registry {
	return tabs.FromSession(s.sess, section)
}

func (s *uiState) notify(msg notify.Message) {
	notify.Set(s.sess, msg)
}

func (s *uiState) save(w http.ResponseWriter, r *http.Request, extra ...*tabs.Registry) error {
	for _, reg := range append([]*tabs.Registry{s.tabs}, extra...) {
		if err := tabs.ToSession(s.sess, reg); err != nil {
			return err
		}
	}
	return s.sess.Save(r, w)
}

func (s *uiState) tabBar(active string) *base.TabBarProps {
	section := s.tabs.Section()
	return &base.TabBarProps{
		ListingTitle: listingTitles[section.Key],
		ListingPath:  section.ListingPath,
		Entries:      s.tabs.Entries(),
		Active:       active,
	}
}

// redirect stores the state and sends the browser to location. State that
// cannot be stored fails the request rather than dropping tabs or the
// notification.
func redirect(w http.ResponseWriter, r *http.Request, st *uiState, location string, extra ...*tabs.Registry) {
	if err := st.save(w, r, extra...); err != nil {
		sessionNotSaved(w, r, err)
		return
	}
	htmx.Redirect(w, r, location)
}

// render shows content in the layout with the section tab bar and consumes
// the pending notification.
func render(w http.ResponseWriter, r *http.Request, st *uiState, title string, status int, content templ.Component) {
	var msg *notify.Message
	if m, ok := notify.Pop(st.sess); ok {
		msg = &m
	}
	if err := st.save(w, r); err != nil {
		sessionNotSaved(w, r, err)
		return
	}
	page := layouts.Page(layouts.AuthenticatedProps{
		Title:        title,
		Notification: msg,
		Tabs:         st.tabBar(r.URL.Path),
	}, content)
	templ.Handler(page, templ.WithStatus(status), templ.WithStreaming()).ServeHTTP(w, r)
}

func statusOf(err error) int {
	var statusErr *restclient.StatusError
	switch {
	case errors.Is(err, event.ErrEventNotFound), errors.Is(err, event.ErrCommentNotFound):
		return http.StatusNotFound
	case errors.As(err, &statusErr):
		if statusErr.Status == 0 {
			return http.StatusBadGateway
		}
		if statusErr.Status >= 400 {
			return statusErr.Status
		}
	}
	return http.StatusInternalServerError
}

// renderFailure shows a page that could not be loaded, with the presented
// error as its notification.
func renderFailure(w http.ResponseWriter, r *http.Request, st *uiState, presenter notify.ErrorPresenter, err error) {
	composables.UseLogger(r.Context()).WithError(err).Warn("failed to load page data")
	st.notify(presenter.Present(err))
	render(w, r, st, "Error", statusOf(err), templ.NopComponent)
}

func sessionUnavailable(w http.ResponseWriter, r *http.Request, err error) {
	composables.UseLogger(r.Context()).WithError(err).Error("no session in request context")
	http.Error(w, "session unavailable", http.StatusInternalServerError)
}

func sessionNotSaved(w http.ResponseWriter, r *http.Request, err error) {
	composables.UseLogger(r.Context()).WithError(err).Error("failed to save session")
	http.Error(w, "session could not be saved", http.StatusInternalServerError)
}
