package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ce1sus/ce1sus-console/pkg/composables"
	"github.com/ce1sus/ce1sus-console/pkg/configuration"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestWithSession(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir(), "secret", 3600, false)
	require.NoError(t, err)
	var sawSession bool
	h := WithSession(store, "ce1sus-console")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := composables.UseSession(r.Context())
		require.NoError(t, err)
		sawSession = sess.IsNew
	}))

	r := httptest.NewRequest(http.MethodGet, "/events/all", nil)
	r.AddCookie(&http.Cookie{Name: "ce1sus-console", Value: "garbage"})
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.True(t, sawSession, "an undecodable cookie yields a new session")
}

func TestFilesystemStore_LargeSession(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir(), "secret", 3600, false)
	require.NoError(t, err)
	large := strings.Repeat("x", 16*1024)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events/all", nil)
	sess, err := store.New(req, "ce1sus-console")
	require.NoError(t, err)
	sess.Values["tabs.events"] = large
	require.NoError(t, sess.Save(req, rec))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, len(cookies[0].Value), 4096, "the cookie only carries the session id")

	next := httptest.NewRequest(http.MethodGet, "/events/all", nil)
	next.AddCookie(cookies[0])
	restored, err := store.Get(next, "ce1sus-console")
	require.NoError(t, err)
	assert.False(t, restored.IsNew)
	assert.Equal(t, large, restored.Values["tabs.events"])
}

func TestOpsGuard(t *testing.T) {
	conf := &configuration.Configuration{
		GoAppEnvironment: configuration.Production,
		RealIPHeader:     "X-Real-IP",
		OpsGuard: configuration.OpsGuardOptions{
			Enabled: true,
			CIDRs:   "10.0.0.0/8",
			Token:   "s3cret",
		},
	}
	h := OpsGuard(conf, nil)(http.HandlerFunc(okHandler))

	tests := []struct {
		name    string
		path    string
		headers map[string]string
		want    int
	}{
		{name: "ui route", path: "/events/all", want: http.StatusOK},
		{name: "ops route from outside", path: "/debug/prometheus", headers: map[string]string{"X-Real-IP": "8.8.8.8"}, want: http.StatusNotFound},
		{name: "ops route from allowed network", path: "/debug/prometheus", headers: map[string]string{"X-Real-IP": "10.1.2.3"}, want: http.StatusOK},
		{name: "ops route with token", path: "/health", headers: map[string]string{"X-Real-IP": "8.8.8.8", "X-Ops-Token": "s3cret"}, want: http.StatusOK},
		{name: "ops route with bearer", path: "/health", headers: map[string]string{"X-Real-IP": "8.8.8.8", "Authorization": "Bearer s3cret"}, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestOpsGuard_DevelopmentPassesThrough(t *testing.T) {
	conf := &configuration.Configuration{GoAppEnvironment: "development", OpsGuard: configuration.OpsGuardOptions{Enabled: true}}
	w := httptest.NewRecorder()
	OpsGuard(conf, nil)(http.HandlerFunc(okHandler)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/prometheus", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWithLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	t.Run("provides request logger and request id", func(t *testing.T) {
		h := WithLogger(logger, DefaultLoggerOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			composables.UseLogger(r.Context()).Info("inside handler")
			w.WriteHeader(http.StatusTeapot)
		}))
		r := httptest.NewRequest(http.MethodGet, "/events/all", nil)
		r.Header.Set("X-Request-ID", "req-1")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, r)

		assert.Equal(t, "req-1", w.Header().Get("X-Request-Id"))
		assert.Contains(t, buf.String(), `"request-id":"req-1"`)
		assert.Contains(t, buf.String(), `"status-code":418`)
	})

	t.Run("recovers panics on ui routes", func(t *testing.T) {
		h := WithLogger(logger, DefaultLoggerOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/all", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal Server Error")
	})

	t.Run("recovers panics on api routes with json", func(t *testing.T) {
		h := WithLogger(logger, DefaultLoggerOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events/e1/observables/flat", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "INTERNAL_SERVER_ERROR", body["code"])
	})
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(RateLimitConfig{RequestsPerPeriod: 1})(http.HandlerFunc(okHandler))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/events/all", nil))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/events/all", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRequestParams(t *testing.T) {
	h := RequestParams("X-Real-IP")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, ok := composables.UseIP(r.Context())
		require.True(t, ok)
		assert.Equal(t, "10.0.0.7", ip)
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Real-IP", "10.0.0.7, 10.0.0.1")
	h.ServeHTTP(httptest.NewRecorder(), r)
}
