package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	apiAdapter "realworldblog/internal/blog/adapters/api"
	httpServer "realworldblog/internal/blog/adapters/http"
	sessionAdapter "realworldblog/internal/blog/adapters/session"
	"realworldblog/internal/blog/app/forms"
	"realworldblog/internal/blog/app/services"
	"realworldblog/internal/blog/app/session"
	"realworldblog/internal/blog/app/views"
	"realworldblog/internal/blog/config"
	sessionPort "realworldblog/internal/blog/ports/session"
	"realworldblog/pkg/db/redis"
	"realworldblog/pkg/logger"
	"realworldblog/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "BLOG_LOGGER_MODE"
	EnvLoggerLevel = "BLOG_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateAPIClient      = "failed to create blog api client"
	ErrCreateSessionStore   = "failed to create session store"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "blog service started"
	LogServiceShutdownDone = "blog service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingSessionStore = "closing session store"
	LogInitClients         = "initializing blog api client"
	LogInitSessionStore    = "initializing session store"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == string(logger.Production) {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitClients)
		baseClient, err := apiAdapter.NewClient(&cfg.API)
		if err != nil {
			log.Error(ctx, ErrCreateAPIClient, zap.Error(err))
			exitCode = 1
			return
		}
		client := apiAdapter.NewResilientClient(baseClient, &cfg.Resilience)

		log.Info(ctx, LogInitSessionStore, zap.String("backend", cfg.Session.Backend))
		repo, err := newSessionRepository(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrCreateSessionStore, zap.Error(err))
			exitCode = 1
			return
		}
		store := session.NewStore(repo, cfg.Session.TTL)

		tracker := views.NewTracker()
		unsubscribe := store.Subscribe(tracker.Observe)
		defer unsubscribe()

		log.Info(ctx, LogInitServices)
		controller := forms.NewController()
		svc := httpServer.Services{
			Auth:     services.NewAuthService(client, store, controller),
			Profile:  services.NewProfileService(client, store, controller, tracker),
			Articles: services.NewArticleService(client, store, controller, tracker, cfg.API.PageSize),
		}

		log.Info(ctx, LogInitHTTPServer)
		app := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(app, svc, store, &cfg.Session)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return app.Shutdown()
			},
			// Закрытие хранилища сессий.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingSessionStore)
				return repo.Close()
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func newSessionRepository(ctx context.Context, cfg *config.Config) (sessionPort.Repository, error) {
	if cfg.Session.Backend != config.SessionBackendRedis {
		return sessionAdapter.NewMemoryRepository(), nil
	}

	client, err := redis.NewClient(ctx, redis.NewConfigFromServiceConfig(&cfg.Redis))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateSessionStore, err)
	}
	return sessionAdapter.NewRedisRepository(client, cfg.Session.KeyPrefix), nil
}
