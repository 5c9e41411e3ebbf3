// Package htmx holds the few request/response helpers the console needs to
// cooperate with htmx driven forms and modals.
package htmx

import "net/http"

const (
	HeaderRequest  = "HX-Request"
	HeaderRedirect = "HX-Redirect"
	HeaderTarget   = "HX-Target"
	HeaderRefresh  = "HX-Refresh"
)

func IsHxRequest(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

func Target(r *http.Request) string {
	return r.Header.Get(HeaderTarget)
}

// Redirect sends the browser to location. htmx requests get an HX-Redirect
// header so that the swap is replaced by a full navigation.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	if IsHxRequest(r) {
		w.Header().Set(HeaderRedirect, location)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, location, http.StatusFound)
}

func Refresh(w http.ResponseWriter) {
	w.Header().Set(HeaderRefresh, "true")
}
