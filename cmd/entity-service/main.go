package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diwise/entity-service/internal/pkg/application/entityservice"
	"github.com/diwise/entity-service/internal/pkg/application/notifications"
	"github.com/diwise/entity-service/internal/pkg/infrastructure/docstore/postgres"
	"github.com/diwise/entity-service/internal/pkg/infrastructure/router"
	"github.com/diwise/entity-service/internal/pkg/presentation/api"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
)

const serviceName string = "entity-service"

func main() {
	serviceVersion := buildinfo.SourceVersion()

	flags := parseExternalConfig(context.Background(), DefaultFlags())

	ctx, logger, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion, flags[logFormat])
	defer cleanup()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	appConfig, err := openConfigFiles(flags)
	if err != nil {
		logger.Error("failed to open configuration files", "err", err.Error())
		os.Exit(1)
	}

	pool, err := postgres.Connect(ctx, postgres.LoadConfiguration(ctx))
	if err != nil {
		logger.Error("failed to connect to database", "err", err.Error())
		os.Exit(1)
	}
	defer pool.Close()

	store, err := postgres.New(ctx, pool)
	if err != nil {
		logger.Error("failed to initialize document store", "err", err.Error())
		os.Exit(1)
	}

	cfg, err := entityservice.LoadConfiguration(appConfig.serviceConfig)
	appConfig.serviceConfig.Close()
	if err != nil {
		logger.Error("failed to load configuration", "err", err.Error())
		os.Exit(1)
	}

	options := []entityservice.Option{}

	if endpoint := env.GetVariableOrDefault(ctx, "NOTIFIER_ENDPOINT", ""); endpoint != "" {
		notifier, err := notifications.NewNotifier(ctx, endpoint)
		if err != nil {
			logger.Error("failed to create notifier", "err", err.Error())
			os.Exit(1)
		}
		options = append(options, entityservice.WithNotifier(notifier))
	}

	app, err := entityservice.New(ctx, *cfg, store, options...)
	if err != nil {
		logger.Error("failed to create entity service", "err", err.Error())
		os.Exit(1)
	}

	r, err := newRouter(ctx, app, appConfig)
	if err != nil {
		logger.Error("failed to register handlers", "err", err.Error())
		os.Exit(1)
	}

	if err = app.Start(); err != nil {
		logger.Error("failed to start entity service", "err", err.Error())
		os.Exit(1)
	}
	defer app.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", flags[listenAddress], flags[servicePort]),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		server.Shutdown(shutdownCtx)
	}()

	logger.Info("starting to listen for connections", "port", flags[servicePort])

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("failed to listen for connections", "err", err.Error())
		os.Exit(1)
	}
}

func newRouter(ctx context.Context, app entityservice.EntityService, appConfig *AppConfig) (*chi.Mux, error) {
	defer appConfig.opaConfig.Close()

	r := router.New(serviceName)

	err := api.RegisterHandlers(ctx, r, appConfig.opaConfig, app)
	if err != nil {
		return nil, err
	}

	logging.GetFromContext(ctx).Debug("registered api handlers")

	return r, nil
}
