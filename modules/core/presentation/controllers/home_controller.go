package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ce1sus/ce1sus-console/pkg/application"
)

// HomeController sends the root path to the events listing.
type HomeController struct {
	landing string
}

func NewHomeController(landing string) application.Controller {
	return &HomeController{landing: landing}
}

func (c *HomeController) Key() string {
	return "/"
}

func (c *HomeController) Register(r *mux.Router) {
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, c.landing, http.StatusFound)
	}).Methods(http.MethodGet)
}
