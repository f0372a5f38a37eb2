package bootstrap

import (
	"database/sql"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tradetext/sms-jobs/config"
	"github.com/tradetext/sms-jobs/internal/adapters/memory"
	redisadapter "github.com/tradetext/sms-jobs/internal/adapters/redis"
	"github.com/tradetext/sms-jobs/internal/adapters/vision"
	"github.com/tradetext/sms-jobs/internal/core"
	"github.com/tradetext/sms-jobs/internal/data"
	"github.com/tradetext/sms-jobs/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Dispatcher *service.DispatcherService
	Search     *service.JobSearchService
	Sessions   core.SessionStore
}

// ServiceDeps groups dependencies for service initialization. DB and
// RedisClient are nil when the corresponding capability is not configured;
// adapter selection degrades accordingly (fixture search, in-memory
// sessions) rather than failing.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient goredis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires adapters and services from the available infrastructure.
func NewServices(deps *ServiceDeps) ServiceContainer {
	cfg := deps.Config
	logger := deps.Logger

	var live core.JobRepository
	var prefs core.PreferenceRepository
	if deps.DB != nil {
		repoCfg := data.RepoConfig{Logger: logger}
		live = data.NewJobRepo(deps.DB, repoCfg)
		prefs = data.NewPrefRepo(deps.DB, repoCfg)
	} else if logger != nil {
		logger.Info("no job store configured, serving fixture jobs")
	}

	var sessions core.SessionStore
	if deps.RedisClient != nil {
		sessions = redisadapter.NewSessionStore(deps.RedisClient)
	} else {
		sessions = memory.NewSessionStore()
		if logger != nil {
			logger.Info("no session cache configured, sessions are per-process")
		}
	}

	var analyzer core.ImageAnalyzer
	if cfg.HasVisionModel() {
		client, err := vision.NewClient(cfg.Vision)
		if err != nil {
			if logger != nil {
				logger.Warn("vision client disabled", "error", err)
			}
		} else {
			analyzer = client
		}
	} else if logger != nil {
		logger.Info("no vision model configured, photo messages get the static reply")
	}

	search := service.NewJobSearchService(service.JobSearchServiceOptions{
		Live:     live,
		Fixtures: data.NewFixtureJobRepo(nil),
		Logger:   logger,
	})
	search.SetTimeout(cfg.SMS.UpstreamTimeout)

	dispatcher := service.NewDispatcherService(service.DispatcherServiceOptions{
		Deps: service.DispatcherDeps{
			Search:   search,
			Sessions: sessions,
			Prefs:    prefs,
			Vision:   analyzer,
		},
		UpstreamTimeout: cfg.SMS.UpstreamTimeout,
		Logger:          logger,
	})

	return ServiceContainer{
		Dispatcher: dispatcher,
		Search:     search,
		Sessions:   sessions,
	}
}
