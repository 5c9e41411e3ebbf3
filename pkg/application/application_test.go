package application

import (
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeter struct {
	name string
}

type stubController struct {
	key string
}

func (c *stubController) Key() string { return c.key }

func (c *stubController) Register(r *mux.Router) {
	r.HandleFunc(c.key, func(w http.ResponseWriter, r *http.Request) {})
}

func TestApplication_Services(t *testing.T) {
	app := New(&ApplicationOptions{})
	app.RegisterServices(&greeter{name: "events"})

	svc := app.Service(greeter{}).(*greeter)
	assert.Equal(t, "events", svc.name)

	assert.Panics(t, func() { app.Service(stubController{}) })
}

func TestApplication_Controllers(t *testing.T) {
	app := New(&ApplicationOptions{})
	app.RegisterControllers(
		&stubController{key: "/events"},
		&stubController{key: "/admin/validation"},
		&stubController{key: "/events"},
	)

	controllers := app.Controllers()
	require.Len(t, controllers, 2)
	assert.Equal(t, "/admin/validation", controllers[0].Key())
	assert.Equal(t, "/events", controllers[1].Key())
}

func TestApplication_DefaultEventBus(t *testing.T) {
	app := New(&ApplicationOptions{})
	require.NotNil(t, app.EventPublisher())
}
