package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/ce1sus/ce1sus-console/internal/server"
	"github.com/ce1sus/ce1sus-console/modules"
	"github.com/ce1sus/ce1sus-console/pkg/application"
	"github.com/ce1sus/ce1sus-console/pkg/configuration"
	"github.com/ce1sus/ce1sus-console/pkg/eventbus"
	"github.com/ce1sus/ce1sus-console/pkg/logging"
	"github.com/ce1sus/ce1sus-console/pkg/metrics"
	"github.com/ce1sus/ce1sus-console/pkg/middleware"
	"github.com/ce1sus/ce1sus-console/pkg/restclient"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	// Set up OpenTelemetry if enabled
	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.TempoURL,
		)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	backend, err := restclient.New(restclient.Options{
		BaseURL:         conf.Backend.URL,
		Timeout:         conf.Backend.Timeout,
		Authorization:   conf.Backend.Authorization,
		RequestIDHeader: conf.RequestIDHeader,
	})
	if err != nil {
		log.Fatalf("failed to create backend client: %v", err)
	}

	sessionStore, err := middleware.NewFilesystemStore(
		conf.Session.Dir,
		conf.Session.Secret,
		int(conf.Session.Duration.Seconds()),
		conf.GoAppEnvironment == configuration.Production,
	)
	if err != nil {
		log.Fatalf("failed to create session store: %v", err)
	}

	app := application.New(&application.ApplicationOptions{
		Backend:      backend,
		SessionStore: sessionStore,
		EventBus:     eventbus.NewEventPublisher(logger),
		Logger:       logger,
	})
	if err := modules.Load(app, modules.BuiltInModules(conf)...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	app.RegisterNavItems(modules.NavLinks...)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(ctx, conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
	conf.Unload()
}
