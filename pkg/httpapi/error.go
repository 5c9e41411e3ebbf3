package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ce1sus/ce1sus-console/pkg/restclient"
)

// ErrorEnvelope standardizes JSON error responses.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteBackendError maps a failed backend call onto a JSON error. Backend
// statuses pass through, an unreachable backend becomes 502.
func WriteBackendError(w http.ResponseWriter, err error) error {
	var statusErr *restclient.StatusError
	if !errors.As(err, &statusErr) {
		return WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", err.Error(), nil)
	}
	if statusErr.Status == 0 {
		return WriteError(w, http.StatusBadGateway, "BACKEND_UNREACHABLE", "backend unreachable", map[string]string{
			"path": statusErr.Path,
		})
	}
	return WriteError(w, statusErr.Status, "BACKEND_ERROR", http.StatusText(statusErr.Status), map[string]string{
		"path": statusErr.Path,
	})
}
