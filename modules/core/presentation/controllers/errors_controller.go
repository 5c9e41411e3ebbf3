package controllers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/ce1sus/ce1sus-console/modules/core/presentation/templates/layouts"
	"github.com/ce1sus/ce1sus-console/modules/core/presentation/templates/pages/error_pages"
	"github.com/ce1sus/ce1sus-console/pkg/application"
	"github.com/ce1sus/ce1sus-console/pkg/httpapi"
	"github.com/ce1sus/ce1sus-console/pkg/middleware"
	"github.com/ce1sus/ce1sus-console/pkg/routing"
)

type ErrorHandlersOptions struct {
	AllowlistPath string
}

func classifier(opts []ErrorHandlersOptions) *routing.Classifier {
	var resolved ErrorHandlersOptions
	if len(opts) > 0 {
		resolved = opts[0]
	}
	rules, err := routing.LoadAllowlist(resolved.AllowlistPath)
	if err != nil {
		rules = routing.DefaultRules
	}
	return routing.NewClassifier(rules)
}

func requestMeta(w http.ResponseWriter, r *http.Request) map[string]string {
	meta := map[string]string{"path": r.URL.Path}
	if requestID := requestIDFromResponse(w, r); requestID != "" {
		meta["request_id"] = requestID
	}
	return meta
}

func handler404(w http.ResponseWriter, r *http.Request) {
	page := layouts.Page(layouts.AuthenticatedProps{Title: "Not found"}, error_pages.NotFoundContent())
	templ.Handler(page, templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)
}

// NotFound answers unknown API and ops routes with a JSON envelope and
// everything else with the HTML page.
func NotFound(app application.Application, opts ...ErrorHandlersOptions) http.HandlerFunc {
	routes := classifier(opts)
	htmlHandler := middleware.WithPageContext(app.NavItems)(http.HandlerFunc(handler404))

	return func(w http.ResponseWriter, r *http.Request) {
		if routes.ClassifyPath(r.URL.Path).IsJSON() {
			httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "not found", requestMeta(w, r))
			return
		}
		htmlHandler.ServeHTTP(w, r)
	}
}

func MethodNotAllowed(opts ...ErrorHandlersOptions) http.HandlerFunc {
	routes := classifier(opts)

	return func(w http.ResponseWriter, r *http.Request) {
		if routes.ClassifyPath(r.URL.Path).IsJSON() {
			meta := requestMeta(w, r)
			meta["method"] = r.Method
			httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", meta)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func requestIDFromResponse(w http.ResponseWriter, r *http.Request) string {
	if w != nil {
		if requestID := strings.TrimSpace(w.Header().Get("X-Request-Id")); requestID != "" {
			return requestID
		}
	}
	if r != nil {
		return strings.TrimSpace(r.Header.Get("X-Request-ID"))
	}
	return ""
}
