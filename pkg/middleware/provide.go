package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ce1sus/ce1sus-console/pkg/composables"
)

func Provide(k any, v any) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				ctx := context.WithValue(r.Context(), k, v)
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

func RequestParams(realIPHeader string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				ip, _ := realIP(r, realIPHeader)
				params := &composables.Params{
					IP:        ip,
					UserAgent: r.UserAgent(),
					Request:   r,
					Writer:    w,
				}
				next.ServeHTTP(w, r.WithContext(composables.WithParams(r.Context(), params)))
			},
		)
	}
}
