package restclient

import (
	"fmt"
	"strings"
)

// StatusError is returned for every failed backend call. Status is 0 when the
// backend could not be reached at all.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   []byte
	Err    error
}

func (e *StatusError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: backend unreachable: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: status=%d body=%s", e.Method, e.Path, e.Status, strings.TrimSpace(string(e.Body)))
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func (e *StatusError) ContentType() string {
	return contentTypeOf(e.Body)
}

func contentTypeOf(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	switch {
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		return "application/json"
	case strings.HasPrefix(trimmed, "<"):
		return "text/html"
	default:
		return "text/plain"
	}
}
