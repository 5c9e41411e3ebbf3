package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ce1sus/ce1sus-console/modules/core/presentation/assets"
	"github.com/ce1sus/ce1sus-console/modules/core/presentation/controllers"
	"github.com/ce1sus/ce1sus-console/pkg/application"
	"github.com/ce1sus/ce1sus-console/pkg/httpapi"
	"github.com/ce1sus/ce1sus-console/pkg/types"
)

func newApp() application.Application {
	app := application.New(&application.ApplicationOptions{Logger: logrus.New()})
	app.RegisterNavItems(types.NavigationItem{Name: "Recent events", Href: "/events/all"})
	return app
}

func TestNotFound(t *testing.T) {
	handler := controllers.NotFound(newApp())

	t.Run("api route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		var envelope httpapi.ErrorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, "NOT_FOUND", envelope.Code)
		assert.Equal(t, "/api/v1/unknown", envelope.Meta["path"])
	})

	t.Run("ui route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events/nope", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "does not exist")
		assert.Contains(t, rec.Body.String(), "Recent events")
	})
}

func TestNotFound_AllowlistFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allowlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nrules:\n  - prefix: /internal\n    class: api\n"), 0o644))

	handler := controllers.NotFound(newApp(), controllers.ErrorHandlersOptions{AllowlistPath: path})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/internal/x", nil))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestMethodNotAllowed(t *testing.T) {
	handler := controllers.MethodNotAllowed()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	req.Header.Set("X-Request-ID", "req-1")
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	var envelope httpapi.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "METHOD_NOT_ALLOWED", envelope.Code)
	assert.Equal(t, "POST", envelope.Meta["method"])
	assert.Equal(t, "req-1", envelope.Meta["request_id"])

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events/all", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.NotEqual(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestHomeController(t *testing.T) {
	r := mux.NewRouter()
	controllers.NewHomeController("/events/all").Register(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/events/all", rec.Header().Get("Location"))
}

func TestStaticFilesController(t *testing.T) {
	r := mux.NewRouter()
	controllers.NewStaticFilesController([]*hashfs.FS{assets.HashFS}).Register(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, assets.StylesheetPath(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".navbar")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/css/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
