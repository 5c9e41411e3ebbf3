package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ce1sus/ce1sus-console/pkg/restclient"
)

func TestWriteBackendError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not found", err: fmt.Errorf("load: %w", &restclient.StatusError{Status: 404, Path: "/event/x"}), wantStatus: 404, wantCode: "BACKEND_ERROR"},
		{name: "unreachable", err: &restclient.StatusError{Status: 0, Path: "/event/x"}, wantStatus: 502, wantCode: "BACKEND_UNREACHABLE"},
		{name: "other", err: errors.New("boom"), wantStatus: 500, wantCode: "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			require.NoError(t, WriteBackendError(w, tt.err))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			var env ErrorEnvelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, tt.wantCode, env.Code)
		})
	}
}
