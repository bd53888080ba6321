package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/api/dto"
	httptransport "github.com/spec-kit/user-directory/internal/api/http"
	"github.com/spec-kit/user-directory/internal/api/http/handlers"
	"github.com/spec-kit/user-directory/internal/config"
	"github.com/spec-kit/user-directory/internal/events"
	"github.com/spec-kit/user-directory/internal/observability"
	"github.com/spec-kit/user-directory/internal/persistence"
	"github.com/spec-kit/user-directory/internal/repository"
	"github.com/spec-kit/user-directory/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Tracing, cfg.App)
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	store, pinger, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeStore()

	dispatcher := events.NewInMemoryDispatcher()
	service.NewAuditService(dispatcher, logger).RegisterHandlers()

	userService := service.NewUserService(service.UserDependencies{
		Store:      store,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		AllowOrigins: cfg.App.CORSAllowOrigins,
		Timeout:      cfg.App.RequestTimeout(),
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Store.Driver, pinger, metrics),
		Users:  handlers.NewUsersHandler(userService, dto.BodyDecoder{Strict: cfg.App.StrictBodies()}),
	})

	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("driver", cfg.Store.Driver),
			zap.String("body_mode", cfg.App.BodyMode),
		)
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// openStore builds the configured UserStore. The returned pinger is nil for
// drivers with nothing to probe.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.UserStore, repository.Pinger, func(), error) {
	noop := func() {}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		return repository.NewMemoryStore(nil), nil, noop, nil

	case config.DriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, nil, nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		store := repository.NewPostgresStore(pg.PoolHandle(), cfg.Store.Collection)
		return store, store, pg.Close, nil

	case config.DriverRedis:
		rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
		store := repository.NewRedisStore(rdb.Client, rdb.Key(cfg.Store.Collection))
		return store, store, rdb.Close, nil

	case config.DriverSQLite:
		db, err := persistence.NewSQLite(ctx, cfg.SQLite, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		store := repository.NewSQLiteStore(db.DB, cfg.Store.Collection)
		return store, store, db.Close, nil

	default:
		store := repository.NewFileStore(cfg.Store.DataFile)
		logger.Info("using json file store", zap.String("path", store.Path()))
		return store, store, noop, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
