package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
	"github.com/ce1sus/ce1sus-console/modules/events/domain/observable"
	"github.com/ce1sus/ce1sus-console/pkg/restclient"
)

func newRepository(t *testing.T, handler http.HandlerFunc) event.Repository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := restclient.New(restclient.Options{BaseURL: srv.URL + "/REST/0.3.0"})
	require.NoError(t, err)
	return NewEventRepository(client)
}

const eventJSON = `{
	"identifier": "e1",
	"uuid": "0f2c",
	"title": "Phishing wave",
	"description": "mails",
	"status": "Confirmed",
	"risk": "High",
	"analysis": "Opened",
	"tlp": "Amber",
	"published": 1,
	"first_seen": "2015-03-01T10:00:00",
	"last_seen": null,
	"created_at": "2015-03-02 11:12:13",
	"modified_on": "2015-03-03T00:00:00+00:00",
	"creator_group": {"identifier": "g1", "name": "CERT"},
	"comments": [{"identifier": "c1", "comment": "looks bad", "created_at": "2015-03-02"}],
	"properties": {"shared": "1", "validated": false},
	"userpermissions": {"add": true, "modify": 1, "validate": false, "delete": true, "process": false},
	"observables_count": 4
}`

func TestEventRepository_List(t *testing.T) {
	repo := newRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/REST/0.3.0/events", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "10", q.Get("count"))
		assert.Equal(t, "desc", q.Get("sorting[created_at]"))
		assert.Equal(t, "false", q.Get("complete"))
		_, _ = w.Write([]byte(`{"total": 11, "data": [` + eventJSON + `]}`))
	})

	page, err := repo.List(context.Background(), &event.FindParams{Limit: 10, Page: 2, SortBy: "created_at", SortDesc: true})
	require.NoError(t, err)
	assert.Equal(t, 11, page.Total)
	require.Len(t, page.Data, 1)

	e := page.Data[0]
	assert.Equal(t, "Phishing wave", e.Title)
	assert.True(t, e.Published)
	assert.True(t, e.Shared)
	assert.False(t, e.Validated)
	require.NotNil(t, e.FirstSeen)
	assert.Equal(t, 2015, e.FirstSeen.Year())
	assert.Nil(t, e.LastSeen)
	assert.Equal(t, "CERT", e.CreatorGroup.Name)
	assert.Equal(t, event.Permissions{CanAdd: true, CanModify: true, CanDelete: true}, e.Permissions)
	require.Len(t, e.Comments, 1)
	assert.Equal(t, "looks bad", e.Comments[0].Comment)
	assert.Equal(t, 4, e.ObservableCount)
}

func TestEventRepository_Unvalidated(t *testing.T) {
	repo := newRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/REST/0.3.0/validate/unvalidated", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"total": 0, "data": []}`))
	})

	page, err := repo.Unvalidated(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Data)
}

func TestEventRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := newRepository(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/REST/0.3.0/event/e1", r.URL.Path)
			assert.Equal(t, "true", r.URL.Query().Get("complete"))
			_, _ = w.Write([]byte(eventJSON))
		})
		e, err := repo.GetByID(context.Background(), "e1")
		require.NoError(t, err)
		assert.Equal(t, "e1", e.Identifier)
	})

	t.Run("backend error", func(t *testing.T) {
		repo := newRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := repo.GetByID(context.Background(), "missing")
		var statusErr *restclient.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.Status)
	})
}

func TestEventRepository_Create(t *testing.T) {
	repo := newRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/REST/0.3.0/event", r.URL.Path)

		var in map[string]any
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &in))
		assert.Equal(t, "Phishing wave", in["title"])
		assert.EqualValues(t, 1, in["published"])
		_, _ = w.Write([]byte(eventJSON))
	})

	created, err := repo.Create(context.Background(), &event.Event{Title: "Phishing wave", Published: true})
	require.NoError(t, err)
	assert.Equal(t, "e1", created.Identifier)
}

func TestEventRepository_Validate(t *testing.T) {
	repo := newRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/REST/0.3.0/event/e1/validate", r.URL.Path)
	})

	e, err := repo.Validate(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, "e1", e.Identifier)
	assert.True(t, e.Validated)
}

func TestEventRepository_Delete(t *testing.T) {
	called := false
	repo := newRepository(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/REST/0.3.0/event/e1", r.URL.Path)
	})

	require.NoError(t, repo.Delete(context.Background(), "e1"))
	assert.True(t, called)
}

func TestEventRepository_Observables(t *testing.T) {
	repo := newRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/REST/0.3.0/event/e1/observable", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("complete"))
		assert.Equal(t, "true", r.URL.Query().Get("inflated"))
		_, _ = w.Write([]byte(`[{"identifier": "o1", "title": "mail", "object": {"identifier": "x", "definition": {"name": "email"}, "attributes": []}}]`))
	})

	nodes, err := repo.Observables(context.Background(), "e1")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	leaf, ok := nodes[0].(*observable.Leaf)
	require.True(t, ok)
	require.NotNil(t, leaf.Object)
	assert.Equal(t, "email", leaf.Object.Definition.Name)
}

func TestEventRepository_Groups(t *testing.T) {
	repo := newRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/REST/0.3.0/group", r.URL.Path)
		_, _ = w.Write([]byte(`[{"identifier": "g1", "name": "CERT"}, {"identifier": "g2", "name": "SOC"}]`))
	})

	groups, err := repo.Groups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []event.Group{{Identifier: "g1", Name: "CERT"}, {Identifier: "g2", Name: "SOC"}}, groups)
}

func TestEventRepository_ChangeGroup(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "raw OK", body: "OK"},
		{name: "json OK", body: `"OK"`},
		{name: "OK with newline", body: "OK\n"},
		{name: "anything else", body: "Failed", wantErr: true},
		{name: "empty", body: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepository(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/REST/0.3.0/event/e1/changegroup", r.URL.Path)
				var in map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
				assert.Equal(t, "g2", in["identifier"])
				_, _ = w.Write([]byte(tt.body))
			})

			err := repo.ChangeGroup(context.Background(), "e1", "g2")
			if tt.wantErr {
				assert.ErrorIs(t, err, event.ErrGroupNotChanged)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEventRepository_Comments(t *testing.T) {
	repo := newRepository(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/REST/0.3.0/event/e1/comment":
			_, _ = w.Write([]byte(`{"identifier": "c9", "comment": "new"}`))
		case r.Method == http.MethodPut && r.URL.Path == "/REST/0.3.0/event/e1/comment/c9":
			// older backends answer with an empty body
		case r.Method == http.MethodDelete && r.URL.Path == "/REST/0.3.0/event/e1/comment/c9":
		default:
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	})
	ctx := context.Background()

	added, err := repo.AddComment(ctx, "e1", &event.Comment{Comment: "new"})
	require.NoError(t, err)
	assert.Equal(t, "c9", added.Identifier)

	updated, err := repo.UpdateComment(ctx, "e1", &event.Comment{Identifier: "c9", Comment: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Comment)

	require.NoError(t, repo.DeleteComment(ctx, "e1", "c9"))
}
