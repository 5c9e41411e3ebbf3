package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ce1sus/ce1sus-console/pkg/application"
	"github.com/ce1sus/ce1sus-console/pkg/httpapi"
)

// Pinger checks that a dependency answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	backend Pinger
}

type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

func NewHealthController(backend Pinger) application.Controller {
	return &HealthController{backend: backend}
}

func (c *HealthController) Key() string {
	return "/health"
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc("/health", c.Health).Methods(http.MethodGet)
}

// Health reports the console as up even when the backend is not reachable;
// the backend state is informational.
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Backend: "ok"}
	if c.backend != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := c.backend.Ping(ctx); err != nil {
			resp.Backend = "unreachable"
		}
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, resp)
}
