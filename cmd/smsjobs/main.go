package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/tradetext/sms-jobs/config"
	"github.com/tradetext/sms-jobs/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	cfgPtr := &cfg

	logStartupInfo(ctx, logger, cfgPtr)

	if err = bootstrap.ValidateServiceConfig(cfgPtr); err != nil {
		return err
	}

	db, redisClient, err := initInfrastructure(cfgPtr, logger)
	if err != nil {
		return err
	}
	defer func() {
		if db != nil {
			if cerr := db.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close database failed", "error", cerr)
			}
		}
		if redisClient != nil {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}
	}()

	serviceDeps := &bootstrap.ServiceDeps{Config: cfgPtr, DB: db, Logger: logger}
	if redisClient != nil {
		// Assign only a live client: a typed-nil pointer inside the
		// interface field would read as configured.
		serviceDeps.RedisClient = redisClient
	}
	services := bootstrap.NewServices(serviceDeps)

	return runServices(ctx, runDeps{Config: cfgPtr, Services: services, Logger: logger})
}

type runDeps struct {
	Config   *config.AppConfig
	Services bootstrap.ServiceContainer
	Logger   *slog.Logger
}

// runServices starts the enabled services and blocks until a shutdown
// signal, then stops them gracefully.
func runServices(ctx context.Context, deps runDeps) error {
	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := bootstrap.StartHTTPServer(serverConfig(deps))

	var sweeper *bootstrap.Sweeper
	if deps.Config.IsSweeperEnabled() {
		sweeper = bootstrap.NewSweeper(deps.Services.Sessions, deps.Config.SMS.SweepInterval, deps.Logger)
		if err := sweeper.Start(signalCtx); err != nil {
			return err
		}
	}

	<-signalCtx.Done()
	deps.Logger.InfoContext(ctx, "shutdown signal received")

	g, shutdownCtx := errgroup.WithContext(context.WithoutCancel(ctx))
	g.Go(func() error {
		return bootstrap.ShutdownHTTPServer(shutdownCtx, server, deps.Logger)
	})
	g.Go(func() error {
		if sweeper != nil {
			sweeper.Stop()
		}
		return nil
	})
	return g.Wait()
}

func serverConfig(deps runDeps) *bootstrap.HTTPServerConfig {
	if !deps.Config.IsHTTPServerEnabled() {
		return nil
	}
	return &bootstrap.HTTPServerConfig{
		Config:   deps.Config,
		Services: deps.Services,
		Logger:   deps.Logger,
	}
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting smsjobs service",
		"enabled_services", bootstrap.GetEnabledServices(cfg),
		"has_job_store", cfg.HasJobStore(),
		"has_session_cache", cfg.HasSessionCache(),
		"has_vision_model", cfg.HasVisionModel(),
	)
}

// initInfrastructure connects the optional shared dependencies. A missing
// job store or session cache is a supported degraded configuration, so
// absence of config is not an error; a configured-but-unreachable one is.
func initInfrastructure(cfg *config.AppConfig, logger *slog.Logger) (*sql.DB, *goredis.Client, error) {
	var (
		db          *sql.DB
		redisClient *goredis.Client
		err         error
	)

	if cfg.HasJobStore() {
		db, err = bootstrap.ConnectDB(bootstrap.DatabaseConfig{
			DBConfig: cfg.Postgres,
			Logger:   logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect db: %w", err)
		}
	}

	if cfg.HasSessionCache() {
		redisClient, err = bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
			RedisConfig: cfg.Redis,
			Logger:      logger,
		})
		if err != nil {
			if db != nil {
				if cerr := db.Close(); cerr != nil {
					logger.Error("close database after redis connect failure", "error", cerr)
				}
			}
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
	}

	return db, redisClient, nil
}
