package controllers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
	"github.com/ce1sus/ce1sus-console/modules/events/domain/observable"
	"github.com/ce1sus/ce1sus-console/modules/events/infrastructure/inmem"
	"github.com/ce1sus/ce1sus-console/modules/events/presentation/controllers"
	"github.com/ce1sus/ce1sus-console/modules/events/presentation/viewmodels"
	"github.com/ce1sus/ce1sus-console/modules/events/services"
	"github.com/ce1sus/ce1sus-console/pkg/application"
	"github.com/ce1sus/ce1sus-console/pkg/httpapi"
	"github.com/ce1sus/ce1sus-console/pkg/middleware"
)

type testEnv struct {
	t      *testing.T
	repo   *inmem.EventRepository
	server *httptest.Server
	client *http.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := inmem.NewEventRepository(
		event.Group{Identifier: "g1", Name: "CERT"},
		event.Group{Identifier: "g2", Name: "SOC"},
	)
	store, err := middleware.NewFilesystemStore(t.TempDir(), "test-secret-test-secret-test-sec", 3600, false)
	require.NoError(t, err)
	app := application.New(&application.ApplicationOptions{SessionStore: store, Logger: logrus.New()})
	eventService := services.NewEventService(repo, app.EventPublisher())
	app.RegisterServices(eventService, services.NewExportService(eventService))

	opts := controllers.ListingOptions{PageSize: 10, MaxPageSize: 100, FlatPageSize: 10}
	r := mux.NewRouter()
	r.Use(middleware.WithSession(store, "ce1sus"))
	for _, c := range []application.Controller{
		controllers.NewEventsController(app, opts),
		controllers.NewValidationController(app, opts),
		controllers.NewEventsAPIController(app, opts),
	} {
		c.Register(r)
	}

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testEnv{
		t:      t,
		repo:   repo,
		server: srv,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (e *testEnv) do(method, path string, form url.Values) (*http.Response, string) {
	e.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(e.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp, err := e.client.Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return resp, string(raw)
}

func (e *testEnv) get(path string) (*http.Response, string) {
	return e.do(http.MethodGet, path, nil)
}

func (e *testEnv) post(path string, form url.Values) (*http.Response, string) {
	if form == nil {
		form = url.Values{}
	}
	return e.do(http.MethodPost, path, form)
}

func (e *testEnv) seed(id, title string, validated bool) {
	e.repo.Seed(&event.Event{
		Identifier:   id,
		Title:        title,
		Status:       "Draft",
		Risk:         "Low",
		Analysis:     "None",
		TLP:          "Amber",
		Validated:    validated,
		CreatedAt:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		CreatorGroup: event.Group{Identifier: "g1", Name: "CERT"},
		Permissions:  event.Permissions{CanModify: true, CanDelete: true, CanValidate: true},
	})
}

func eventForm(title string) url.Values {
	return url.Values{
		"Title":    {title},
		"Status":   {"Draft"},
		"Risk":     {"Low"},
		"Analysis": {"None"},
		"TLP":      {"Amber"},
	}
}

func tabLink(path string) string {
	return `href="` + path + `"`
}

func TestEventsController_Create(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.post("/events/add", eventForm("Phishing wave"))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	location := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "/events/event/"), location)

	resp, body := env.get(location)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Event successfully added")
	assert.Contains(t, body, `action="`+location+`/close"`)

	_, body = env.get(location)
	assert.NotContains(t, body, "Event successfully added", "the notification is shown once")
}

func TestEventsController_CreateInvalid(t *testing.T) {
	env := newTestEnv(t)

	form := eventForm("")
	form.Set("TLP", "Purple")
	resp, body := env.post("/events/add", form)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Title is required")
	assert.Contains(t, body, "TLP has an unsupported value")
	page, err := env.repo.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestEventsController_DetailNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get("/events/event/missing")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "event not found")
}

func TestEventsController_DetailOpensTabOnce(t *testing.T) {
	env := newTestEnv(t)
	env.seed("e1", "Botnet", true)

	env.get("/events/event/e1")
	_, body := env.get("/events/event/e1")

	assert.Equal(t, 1, strings.Count(body, `<a href="/events/event/e1"`))
	assert.Contains(t, body, `name="GroupID"`)
}

func TestEventsController_ManyTabsPersist(t *testing.T) {
	env := newTestEnv(t)
	ids := make([]string, 40)
	for i := range ids {
		ids[i] = uuid.NewString()
		env.seed(ids[i], fmt.Sprintf("Credential phishing campaign wave no. %03d", i), true)
	}

	for _, id := range ids {
		resp, _ := env.get("/events/event/" + id)
		require.Equal(t, http.StatusOK, resp.StatusCode, id)
	}

	last := ids[len(ids)-1]
	resp, _ := env.post("/events/event/"+last+"/comments", url.Values{"Comment": {"still tracking"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	_, body := env.get("/events/event/" + last)
	assert.Contains(t, body, "Comment successfully added")
	for _, id := range ids {
		assert.Contains(t, body, `action="/events/event/`+id+`/close"`, id)
	}
}

func TestEventsController_Update(t *testing.T) {
	env := newTestEnv(t)
	env.seed("e1", "Old title", true)
	env.get("/events/event/e1")

	t.Run("unchanged form", func(t *testing.T) {
		resp, _ := env.post("/events/event/e1/edit", eventForm("Old title"))
		require.Equal(t, http.StatusFound, resp.StatusCode)
		_, body := env.get("/events/event/e1")
		assert.NotContains(t, body, "successfully")
	})

	t.Run("changed form", func(t *testing.T) {
		resp, _ := env.post("/events/event/e1/edit", eventForm("New title"))
		require.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/events/event/e1", resp.Header.Get("Location"))

		_, body := env.get("/events/event/e1")
		assert.Contains(t, body, "Event successfully edited")
		assert.NotContains(t, body, "Old title")

		stored, err := env.repo.GetByID(context.Background(), "e1")
		require.NoError(t, err)
		assert.Equal(t, "New title", stored.Title)
	})

	t.Run("invalid form", func(t *testing.T) {
		resp, body := env.post("/events/event/e1/edit", eventForm(""))
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "Title is required")
	})
}

func TestEventsController_Delete(t *testing.T) {
	env := newTestEnv(t)
	env.seed("e1", "Botnet", false)
	env.get("/events/event/e1")
	env.get("/admin/validation/event/e1")

	_, body := env.get("/events/event/e1/delete")
	assert.Contains(t, body, `name="confirm" value="yes"`)

	resp, _ := env.post("/events/event/e1/delete", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/events/event/e1", resp.Header.Get("Location"), "unconfirmed delete goes back")
	_, err := env.repo.GetByID(context.Background(), "e1")
	require.NoError(t, err)

	resp, _ = env.post("/events/event/e1/delete", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/events/all", resp.Header.Get("Location"))

	_, err = env.repo.GetByID(context.Background(), "e1")
	require.ErrorIs(t, err, event.ErrEventNotFound)

	_, body = env.get("/events/all")
	assert.Contains(t, body, "Event successfully removed")
	assert.NotContains(t, body, tabLink("/events/event/e1"))

	_, body = env.get("/admin/validation/all")
	assert.NotContains(t, body, tabLink("/admin/validation/event/e1"))
}

func TestEventsController_Close(t *testing.T) {
	env := newTestEnv(t)
	env.seed("e1", "Botnet", true)

	resp, _ := env.post("/events/event/e1/close", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode, "closing a tab that is not open")

	env.get("/events/event/e1")
	resp, _ = env.post("/events/event/e1/close", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/events/all", resp.Header.Get("Location"))

	_, body := env.get("/events/all")
	assert.NotContains(t, body, `action="/events/event/e1/close"`)
}

func TestEventsController_ChangeGroup(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		groupID string
		want    string
		owner   string
	}{
		{name: "accepted", answer: "OK", groupID: "g2", want: "Event owner successfully changed", owner: "g2"},
		{name: "refused", answer: "Failed", groupID: "g2", want: "Could not change group", owner: "g1"},
		{name: "missing group", answer: "OK", groupID: "", want: "Could not change group", owner: "g1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.seed("e1", "Botnet", true)
			env.repo.GroupChangeAnswer = tt.answer

			resp, _ := env.post("/events/event/e1/changegroup", url.Values{"GroupID": {tt.groupID}})
			require.Equal(t, http.StatusFound, resp.StatusCode)

			_, body := env.get("/events/event/e1")
			assert.Contains(t, body, tt.want)
			stored, err := env.repo.GetByID(context.Background(), "e1")
			require.NoError(t, err)
			assert.Equal(t, tt.owner, stored.CreatorGroup.Identifier)
		})
	}
}

func TestEventsController_Comments(t *testing.T) {
	env := newTestEnv(t)
	env.seed("e1", "Botnet", true)

	resp, _ := env.post("/events/event/e1/comments", url.Values{"Comment": {"first look"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	_, body := env.get("/events/event/e1")
	assert.Contains(t, body, "Comment successfully added")
	assert.Contains(t, body, "first look")

	stored, err := env.repo.GetByID(context.Background(), "e1")
	require.NoError(t, err)
	require.Len(t, stored.Comments, 1)
	commentPath := "/events/event/e1/comments/" + stored.Comments[0].Identifier

	resp, body = env.get(commentPath)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "first look")

	resp, body = env.post(commentPath+"/edit", url.Values{"Comment": {"  "}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Comment is required")

	resp, _ = env.post(commentPath+"/edit", url.Values{"Comment": {"second look"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	_, body = env.get("/events/event/e1")
	assert.Contains(t, body, "Comment successfully edited")
	assert.Contains(t, body, "second look")

	resp, _ = env.post(commentPath+"/delete", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	_, body = env.get("/events/event/e1")
	assert.Contains(t, body, "Comment successfully removed")
	assert.NotContains(t, body, "second look")

	resp, _ = env.get("/events/event/e1/comments/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestValidationController(t *testing.T) {
	env := newTestEnv(t)
	env.seed("e1", "Pending", false)
	env.seed("e2", "Done", true)

	_, body := env.get("/admin/validation/all")
	assert.Contains(t, body, "Pending")
	assert.NotContains(t, body, "Done")

	_, body = env.get("/admin/validation/event/e1")
	assert.Contains(t, body, tabLink("/admin/validation/event/e1"))
	assert.Contains(t, body, `action="/admin/validation/event/e1/validate"`)
	assert.NotContains(t, body, `name="GroupID"`, "validation pages only validate")

	resp, _ := env.post("/admin/validation/event/e1/validate", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/validation/all", resp.Header.Get("Location"))

	_, body = env.get("/admin/validation/all")
	assert.Contains(t, body, "Event successfully validated")
	assert.Contains(t, body, "No events found")
	assert.NotContains(t, body, tabLink("/admin/validation/event/e1"))
}

func TestEventsController_ValidateClosesValidationTab(t *testing.T) {
	env := newTestEnv(t)
	env.seed("e1", "Pending", false)
	env.get("/admin/validation/event/e1")

	resp, _ := env.post("/events/event/e1/validate", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/events/event/e1", resp.Header.Get("Location"))

	_, body := env.get("/admin/validation/all")
	assert.NotContains(t, body, tabLink("/admin/validation/event/e1"))
}

func seedObservables(env *testEnv) {
	leaf := func(title, value string) *observable.Leaf {
		return &observable.Leaf{Title: title, Object: &observable.Object{
			Definition: observable.Definition{Name: "domain"},
			Attributes: []observable.Attribute{{Value: value}},
		}}
	}
	env.repo.SetObservables("e1", []observable.Node{
		&observable.Composition{Title: "dropper", Operator: "OR", Observables: []observable.Node{
			leaf("a", "a.example"), leaf("b", "b.example"), leaf("c", "c.example"),
		}},
		leaf("single", "d.example"),
	})
}

func TestEventsController_Observables(t *testing.T) {
	env := newTestEnv(t)
	env.seed("e1", "Botnet", true)
	seedObservables(env)

	_, body := env.get("/events/event/e1/observables")
	assert.Contains(t, body, "a.example")
	assert.NotContains(t, body, "rowspan")

	_, body = env.get("/events/event/e1/observables?view=flat&page=1")
	assert.Contains(t, body, `rowspan="3"`)
	assert.Equal(t, 2, strings.Count(body, `class="group"`))

	resp, raw := env.get("/events/event/e1/observables/flat.xlsx")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "event-e1-observables.xlsx")
	assert.NotEmpty(t, raw)
}

func TestEventsAPIController_FlatObservables(t *testing.T) {
	env := newTestEnv(t)
	env.seed("e1", "Botnet", true)
	seedObservables(env)

	resp, body := env.get("/api/v1/events/e1/observables/flat?page=0")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page viewmodels.FlatPage
	require.NoError(t, json.Unmarshal([]byte(body), &page))
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 1, page.Pages)
	require.Len(t, page.Rows, 4)
	assert.True(t, page.Rows[0].GroupCell)
	assert.Equal(t, 3, page.Rows[0].RowSpan)
	assert.Equal(t, "dropper", page.Rows[0].GroupTitle)
	assert.Equal(t, "single", page.Rows[3].GroupTitle)

	resp, body = env.get("/api/v1/events/missing/observables/flat")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var envelope httpapi.ErrorEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	assert.Equal(t, "EVENT_NOT_FOUND", envelope.Code)

	resp, _ = env.get("/api/v1/events/e1/observables/flat?page=-1")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
