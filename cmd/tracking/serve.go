package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/nebengjek-tracking/internal/pkg/config"
	"github.com/piresc/nebengjek-tracking/internal/pkg/database"
	"github.com/piresc/nebengjek-tracking/internal/pkg/health"
	httpclient "github.com/piresc/nebengjek-tracking/internal/pkg/http"
	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/internal/pkg/middleware"
	natspkg "github.com/piresc/nebengjek-tracking/internal/pkg/nats"
	nrpkg "github.com/piresc/nebengjek-tracking/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/nebengjek-tracking/internal/pkg/nsq"
	"github.com/piresc/nebengjek-tracking/internal/pkg/server"
	wspkg "github.com/piresc/nebengjek-tracking/internal/pkg/websocket"
	"github.com/piresc/nebengjek-tracking/services/tracking"
	"github.com/piresc/nebengjek-tracking/services/tracking/gateway"
	"github.com/piresc/nebengjek-tracking/services/tracking/handler"
	httpHandler "github.com/piresc/nebengjek-tracking/services/tracking/handler/http"
	natsHandler "github.com/piresc/nebengjek-tracking/services/tracking/handler/nats"
	wsHandler "github.com/piresc/nebengjek-tracking/services/tracking/handler/websocket"
	"github.com/piresc/nebengjek-tracking/services/tracking/repository"
	"github.com/piresc/nebengjek-tracking/services/tracking/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger.SetGlobalLogger(zapLogger)
	defer zapLogger.Close()

	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			logger.Warn("New Relic connection timeout", logger.Err(err))
		}
	}

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment))

	// Storage
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		redisClient.Close()
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	healthSvc := health.NewService(appName)
	healthSvc.AddChecker("redis", health.CheckerFunc(redisClient.Ping))
	healthSvc.AddChecker("postgres", health.CheckerFunc(postgresClient.Ping))

	// Channels
	manager := wspkg.NewManager(configs.Tracking.ClientSendBuffer)

	var (
		broadcaster tracking.Broadcaster
		natsClient  *natspkg.Client
		relay       *natsHandler.RelayHandler
	)
	if configs.NATS.URL != "" {
		natsClient, err = natspkg.NewClient(configs.NATS.URL, appName)
		if err != nil {
			postgresClient.Close()
			redisClient.Close()
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		relay = natsHandler.NewRelayHandler(manager, natsClient)
		if err := relay.InitNATSConsumers(); err != nil {
			natsClient.Close()
			postgresClient.Close()
			redisClient.Close()
			return err
		}
		broadcaster = gateway.NewNATSBroadcaster(natsClient)
		healthSvc.AddChecker("nats", health.CheckerFunc(natsClient.Ping))
	} else {
		logger.Info("NATS_URL not set, trip channels stay local to this instance")
		broadcaster = gateway.NewLocalBroadcaster(manager)
	}

	var (
		publisher tracking.EventPublisher
		producer  *nsqpkg.Producer
	)
	if configs.NSQ.Address != "" {
		producer, err = nsqpkg.NewProducer(configs.NSQ.Address)
		if err != nil {
			logger.Warn("NSQ unavailable, lifecycle events will not be exported", logger.Err(err))
			publisher = gateway.NewNoopPublisher()
		} else {
			publisher = gateway.NewNSQPublisher(producer)
			healthSvc.AddChecker("nsq", health.CheckerFunc(func(context.Context) error { return producer.Ping() }))
		}
	} else {
		publisher = gateway.NewNoopPublisher()
	}

	profileClient := httpclient.NewAPIKeyClient(
		configs.APIKey.UserService,
		"user-service",
		configs.Services.UserServiceURL,
		time.Duration(configs.Tracking.ProfileTimeoutSec)*time.Second,
	)
	profiles := gateway.NewProfileGW(profileClient)

	// Domain
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := usecase.NewMetrics(registry)

	locationRepo := repository.NewLocationRepository(redisClient)
	sessionRepo := repository.NewSessionRepository(postgresClient.GetDB())

	locationUC := usecase.NewLocationUC(configs, locationRepo, sessionRepo, broadcaster, profiles, metrics)
	sessionUC := usecase.NewSessionUC(sessionRepo, broadcaster, publisher, metrics)

	devMode := configs.App.IsDevelopment()
	h := handler.NewHandler(
		httpHandler.NewLocationHandler(locationUC, devMode),
		httpHandler.NewTrackingHandler(sessionUC, devMode),
		wsHandler.NewHandler(manager, sessionUC),
	)

	// HTTP
	e := echo.New()
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	e.Use(middleware.RequestContextMiddleware(appName))
	e.Use(nrpkg.Middleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.NewHTTPMetrics(registry).Middleware())

	health.RegisterHealthEndpoints(e, configs.App.Version, healthSvc)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	h.RegisterRoutes(e, middleware.JWTAuthMiddleware(configs.JWT))

	srv := server.NewGracefulServer(e, configs.Server)
	srv.OnShutdown("redis", func(context.Context) error { return redisClient.Close() })
	srv.OnShutdown("postgres", func(context.Context) error { return postgresClient.Close() })
	if natsClient != nil {
		srv.OnShutdown("nats", func(context.Context) error { return natsClient.Close() })
		srv.OnShutdown("relay", func(context.Context) error { return relay.Close() })
	}
	if producer != nil {
		srv.OnShutdown("nsq", func(context.Context) error {
			producer.Stop()
			return nil
		})
	}
	if nrApp != nil {
		srv.OnShutdown("newrelic", func(context.Context) error {
			nrApp.Shutdown(5 * time.Second)
			return nil
		})
	}

	return srv.Run(ctx)
}
