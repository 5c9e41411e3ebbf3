package events

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
	"github.com/ce1sus/ce1sus-console/modules/events/handlers"
	"github.com/ce1sus/ce1sus-console/modules/events/infrastructure/rest"
	"github.com/ce1sus/ce1sus-console/modules/events/presentation/controllers"
	"github.com/ce1sus/ce1sus-console/modules/events/services"
	"github.com/ce1sus/ce1sus-console/pkg/application"
)

var ErrNoBackend = errors.New("events module needs a backend client or a repository")

type ModuleOptions struct {
	// Repository replaces the REST backend, e.g. with inmem.EventRepository.
	Repository event.Repository
	Listing    controllers.ListingOptions
	Logger     *logrus.Logger
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	repo := m.options.Repository
	if repo == nil {
		backend := app.Backend()
		if backend == nil {
			return ErrNoBackend
		}
		repo = rest.NewEventRepository(backend)
	}

	eventService := services.NewEventService(repo, app.EventPublisher())
	app.RegisterServices(
		eventService,
		services.NewExportService(eventService),
	)
	handlers.RegisterEventLogHandlers(app, m.options.Logger)

	listing := m.options.Listing
	app.RegisterControllers(
		controllers.NewEventsController(app, listing),
		controllers.NewValidationController(app, listing),
		controllers.NewEventsAPIController(app, listing),
	)
	return nil
}

func (m *Module) Name() string {
	return "events"
}
