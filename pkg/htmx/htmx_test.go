package htmx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedirect(t *testing.T) {
	t.Run("plain request", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/events/event/1/delete", nil)
		w := httptest.NewRecorder()

		Redirect(w, r, "/events/all")

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/events/all", w.Header().Get("Location"))
	})

	t.Run("htmx request", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/events/event/1/delete", nil)
		r.Header.Set(HeaderRequest, "true")
		w := httptest.NewRecorder()

		Redirect(w, r, "/events/all")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "/events/all", w.Header().Get(HeaderRedirect))
		assert.Empty(t, w.Header().Get("Location"))
	})
}
