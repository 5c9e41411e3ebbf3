package modules

import (
	"slices"

	"github.com/ce1sus/ce1sus-console/modules/core"
	"github.com/ce1sus/ce1sus-console/modules/events"
	"github.com/ce1sus/ce1sus-console/modules/events/presentation/controllers"
	"github.com/ce1sus/ce1sus-console/pkg/application"
	"github.com/ce1sus/ce1sus-console/pkg/configuration"
)

// BuiltInModules are the modules of the console configured from conf.
func BuiltInModules(conf *configuration.Configuration) []application.Module {
	return []application.Module{
		core.NewModule(nil),
		events.NewModule(&events.ModuleOptions{
			Listing: controllers.ListingOptions{
				PageSize:     conf.PageSize,
				MaxPageSize:  conf.MaxPageSize,
				FlatPageSize: conf.FlatPageSize,
			},
			Logger: conf.Logger(),
		}),
	}
}

var NavLinks = slices.Concat(
	events.NavItems,
)

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
