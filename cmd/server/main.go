package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"theknifeweb/internal/config"
	analyticsinfra "theknifeweb/internal/modules/analytics/infrastructure"
	analyticstransport "theknifeweb/internal/modules/analytics/interface"
	billinginfra "theknifeweb/internal/modules/billing/infrastructure"
	bookinginfra "theknifeweb/internal/modules/booking/infrastructure"
	bookingtransport "theknifeweb/internal/modules/booking/interface"
	cataloginfra "theknifeweb/internal/modules/catalog/infrastructure"
	catalogtransport "theknifeweb/internal/modules/catalog/interface"
	clientsusecase "theknifeweb/internal/modules/clients/application/usecase"
	clientsinfra "theknifeweb/internal/modules/clients/infrastructure"
	clientstransport "theknifeweb/internal/modules/clients/interface"
	realtimehandler "theknifeweb/internal/modules/realtime/application/handler"
	realtimeinfra "theknifeweb/internal/modules/realtime/infrastructure"
	realtimetransport "theknifeweb/internal/modules/realtime/interface"
	restaurantusecase "theknifeweb/internal/modules/restaurantarea/application/usecase"
	restauranttransport "theknifeweb/internal/modules/restaurantarea/interface"
	"theknifeweb/internal/platform/broker"
	"theknifeweb/internal/session"
	"theknifeweb/internal/shared/auth"
	"theknifeweb/internal/shared/logging"
	"theknifeweb/internal/shared/refresh"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("core api resolved", slog.String("base", cfg.REST.BaseURL), slog.Duration("timeout", cfg.REST.Timeout))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID))

	// Session plumbing: signed cookie carrying the session id, state behind it.
	codec := auth.NewTokenCodec(cfg.Session.Secret, cfg.Session.TTL)
	cookies := session.NewCookieManager(codec, cfg.Session.TTL, cfg.Session.CookieSecure)
	sessions, err := buildSessionRepository(cfg.Session)
	if err != nil {
		slog.Error("session backend setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	// HTTP adapters over the core API.
	catalogClient := cataloginfra.NewCatalogHTTPClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil)
	clientsClient := clientsinfra.NewClientsHTTPClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil)
	reservationsClient := bookinginfra.NewReservationsHTTPClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil)
	billingClient := billinginfra.NewBillingHTTPClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil)
	analyticsClient := analyticsinfra.NewAnalyticsHTTPClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil)

	generations := refresh.NewGenerations()
	clientAreaLoader := clientsusecase.NewAreaLoader(reservationsClient, billingClient, billingClient, generations, func(clientID string) string {
		return refresh.AreaKey("client", clientID)
	})
	restaurantAreaLoader := restaurantusecase.NewAreaLoader(reservationsClient, billingClient, generations, func(restaurantID string) string {
		return refresh.AreaKey("restaurant", restaurantID)
	})

	// Realtime refresh channel: kafka events bump generations and notify
	// subscribed area pages over websocket.
	hub := realtimeinfra.NewHub()
	registry := broker.NewHandlerRegistry()
	for entity, topics := range cfg.Kafka.Topics {
		for _, topic := range topics {
			registry.Register(realtimehandler.NewAreaStreamHandler(entity, topic, cfg.Websocket.AllowedActions, generations, hub))
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())
	e.Static("/static", "web/static")

	catalogtransport.NewHandler(catalogClient).RegisterRoutes(e)
	bookingtransport.NewHandler(cookies, sessions, clientsClient, reservationsClient, catalogClient).RegisterRoutes(e)
	clientstransport.NewHandler(cookies, sessions, clientsClient, clientAreaLoader, reservationsClient, billingClient).RegisterRoutes(e)
	restauranttransport.NewHandler(cookies, sessions, catalogClient, restaurantAreaLoader, billingClient).RegisterRoutes(e)
	analyticstransport.NewHandler(cookies, sessions, analyticsClient).RegisterRoutes(e)
	realtimetransport.NewHandler(hub).RegisterRoutes(e)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	e.Close()
}

func buildSessionRepository(cfg config.SessionConfig) (session.Repository, error) {
	switch cfg.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return session.NewRedisRepository(client, cfg.TTL), nil
	default:
		return session.NewMemoryRepository(cfg.TTL), nil
	}
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
