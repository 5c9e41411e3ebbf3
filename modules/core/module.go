package core

import (
	"github.com/ce1sus/ce1sus-console/modules/core/presentation/assets"
	"github.com/ce1sus/ce1sus-console/modules/core/presentation/controllers"
	"github.com/ce1sus/ce1sus-console/pkg/application"
	"github.com/ce1sus/ce1sus-console/pkg/metrics"
)

type ModuleOptions struct {
	// Landing is where the root path redirects to.
	Landing string
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	if opts.Landing == "" {
		opts.Landing = "/events/all"
	}
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	app.RegisterHashFsAssets(assets.HashFS)
	controllersToRegister := []application.Controller{
		controllers.NewHomeController(m.options.Landing),
		controllers.NewStaticFilesController(app.HashFsAssets()),
	}
	if backend := app.Backend(); backend != nil {
		controllersToRegister = append(controllersToRegister, metrics.NewHealthController(backend))
	}
	app.RegisterControllers(controllersToRegister...)
	return nil
}

func (m *Module) Name() string {
	return "core"
}
