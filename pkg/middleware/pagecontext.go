package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ce1sus/ce1sus-console/pkg/composables"
	"github.com/ce1sus/ce1sus-console/pkg/types"
)

func WithPageContext(navItems func() []types.NavigationItem) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				pageCtx := &types.PageContext{
					URL:      r.URL,
					Title:    "ce1sus",
					NavItems: navItems(),
				}
				next.ServeHTTP(w, r.WithContext(composables.WithPageCtx(r.Context(), pageCtx)))
			},
		)
	}
}
