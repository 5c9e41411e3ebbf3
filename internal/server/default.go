package server

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/ce1sus/ce1sus-console/modules/core/presentation/controllers"
	"github.com/ce1sus/ce1sus-console/pkg/application"
	"github.com/ce1sus/ce1sus-console/pkg/configuration"
	"github.com/ce1sus/ce1sus-console/pkg/constants"
	"github.com/ce1sus/ce1sus-console/pkg/middleware"
	"github.com/ce1sus/ce1sus-console/pkg/routing"
	"github.com/ce1sus/ce1sus-console/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration

	rules, err := routing.LoadAllowlist(conf.RoutingAllowlistPath)
	if err != nil {
		return nil, err
	}
	classifier := routing.NewClassifier(rules)

	loggerOpts := middleware.DefaultLoggerOptions()
	loggerOpts.RequestIDHeader = conf.RequestIDHeader
	loggerOpts.RealIPHeader = conf.RealIPHeader
	loggerOpts.Classifier = classifier

	// Core middleware stack with tracing capabilities
	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, loggerOpts),

		middleware.TracedMiddleware("opsGuard"),
		middleware.OpsGuard(conf, classifier),
		middleware.Provide(constants.AppKey, app),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(conf.AllowedOrigins()...),
	}

	if conf.RateLimit.Enabled {
		var store limiter.Store
		switch conf.RateLimit.Storage {
		case "redis":
			store, err = middleware.NewRedisStore(conf.RateLimit.RedisURL)
			if err != nil {
				options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
				store = middleware.NewMemoryStore()
			}
		default:
			store = middleware.NewMemoryStore()
		}

		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Store:             store,
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(conf.RealIPHeader),
		middleware.TracedMiddleware("session"),
		middleware.WithSession(app.SessionStore(), conf.Session.CookieName),
	)

	app.RegisterMiddleware(middlewares...)

	handlerOpts := controllers.ErrorHandlersOptions{
		AllowlistPath: conf.RoutingAllowlistPath,
	}
	serverInstance := server.NewHTTPServer(
		app,
		controllers.NotFound(app, handlerOpts),
		controllers.MethodNotAllowed(handlerOpts),
	)
	serverInstance.Logger = options.Logger
	return serverInstance, nil
}
