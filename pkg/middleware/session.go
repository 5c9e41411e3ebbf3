package middleware

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"github.com/ce1sus/ce1sus-console/pkg/composables"
)

// WithSession loads the browser session once per request. A cookie that no
// longer decodes (rotated secret) yields a fresh session instead of an error.
func WithSession(store sessions.Store, name string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				sess, err := store.Get(r, name)
				if err != nil {
					composables.UseLogger(r.Context()).WithError(err).Warn("discarding undecodable session cookie")
					sess, err = store.New(r, name)
					if sess == nil {
						http.Error(w, err.Error(), http.StatusInternalServerError)
						return
					}
				}
				next.ServeHTTP(w, r.WithContext(composables.WithSession(r.Context(), sess)))
			},
		)
	}
}

// NewFilesystemStore returns the store backing the browser sessions. Session
// values live in files under dir and the cookie only carries the signed
// session id, so the number of open tabs is not bounded by the cookie size.
// An empty dir uses a directory below os.TempDir.
func NewFilesystemStore(dir, secret string, maxAge int, secure bool) (*sessions.FilesystemStore, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "ce1sus-console-sessions")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session directory: %w", err)
	}
	store := sessions.NewFilesystemStore(dir, []byte(secret))
	store.MaxLength(0)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store, nil
}
