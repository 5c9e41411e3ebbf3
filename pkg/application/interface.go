package application

import (
	"reflect"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"github.com/ce1sus/ce1sus-console/pkg/eventbus"
	"github.com/ce1sus/ce1sus-console/pkg/restclient"
	"github.com/ce1sus/ce1sus-console/pkg/types"
)

type Controller interface {
	Register(r *mux.Router)
	Key() string
}

type Module interface {
	Name() string
	Register(app Application) error
}

// Application is the registry modules contribute their services, controllers
// and middleware to.
type Application interface {
	Backend() *restclient.Client
	SessionStore() sessions.Store
	EventPublisher() eventbus.EventBus
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	NavItems() []types.NavigationItem
	HashFsAssets() []*hashfs.FS
	RegisterHashFsAssets(fs ...*hashfs.FS)
	RegisterNavItems(items ...types.NavigationItem)
	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterServices(services ...any)
	Service(service any) any
	Services() map[reflect.Type]any
}
