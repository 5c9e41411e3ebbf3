package controllers

import (
	"net/http"
	"strings"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"

	"github.com/ce1sus/ce1sus-console/pkg/application"
)

type StaticFilesController struct {
	fsInstances []*hashfs.FS
}

func (s *StaticFilesController) Key() string {
	return "/static"
}

// Register serves the first registered asset set that holds the requested
// file. Hashed names are cached forever by hashfs itself.
func (s *StaticFilesController) Register(r *mux.Router) {
	handlers := make([]http.Handler, len(s.fsInstances))
	for i, fsys := range s.fsInstances {
		handlers[i] = hashfs.FileServer(fsys)
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		for i, fsys := range s.fsInstances {
			f, err := fsys.Open(name)
			if err != nil {
				continue
			}
			_ = f.Close()
			handlers[i].ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", handler)).Methods(http.MethodGet, http.MethodHead)
}

func NewStaticFilesController(fsInstances []*hashfs.FS) application.Controller {
	return &StaticFilesController{
		fsInstances: fsInstances,
	}
}
