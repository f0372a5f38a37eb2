package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/tradetext/sms-jobs/internal/core"
	"github.com/tradetext/sms-jobs/internal/data"
	"github.com/tradetext/sms-jobs/internal/domain/model"
)

// JobSearchServiceOptions groups dependencies for JobSearchService.
type JobSearchServiceOptions struct {
	Live     core.JobRepository // Optional: live job store; nil means fixture-only mode
	Fixtures core.JobRepository // Required: fixture fallback, must never fail
	Logger   *slog.Logger       // Optional: structured logger
}

// JobSearchService queries the live job store and degrades to the fixture
// set on any failure. It never returns an error to the caller: the SMS reply
// contract must hold even when every upstream is down. The DegradeReason it
// returns is for logging only.
type JobSearchService struct {
	live     core.JobRepository
	fixtures core.JobRepository
	logger   *slog.Logger
	timeout  time.Duration
}

// NewJobSearchService constructs a new JobSearchService.
func NewJobSearchService(opts JobSearchServiceOptions) *JobSearchService {
	if opts.Fixtures == nil {
		//nolint:forbidigo // Service construction must fail fast during wiring when dependencies are missing
		panic("fixture JobRepository is required")
	}

	return &JobSearchService{
		live:     opts.Live,
		fixtures: opts.Fixtures,
		logger:   opts.Logger,
		timeout:  5 * time.Second,
	}
}

// SetTimeout overrides the bound on live store calls.
func (s *JobSearchService) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// Search returns matching jobs plus the reason the call degraded, if it did.
func (s *JobSearchService) Search(ctx context.Context, query model.ParsedQuery) ([]model.JobSearchResult, model.DegradeReason) {
	return s.fetch(ctx, query, false)
}

// Digest returns the top digest jobs plus the degrade reason, if any.
func (s *JobSearchService) Digest(ctx context.Context) ([]model.JobSearchResult, model.DegradeReason) {
	return s.fetch(ctx, model.ParsedQuery{Command: model.CommandSearch}, true)
}

func (s *JobSearchService) fetch(ctx context.Context, query model.ParsedQuery, digest bool) ([]model.JobSearchResult, model.DegradeReason) {
	err := data.ErrJobStoreNotConfigured
	if s.live != nil {
		liveCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		var jobs []model.JobSearchResult
		if digest {
			jobs, err = s.live.Digest(liveCtx)
		} else {
			jobs, err = s.live.Search(liveCtx, query)
		}
		if err == nil {
			return jobs, model.DegradeNone
		}
	}

	reason := data.DegradeReasonFor(err)
	if s.logger != nil && reason == model.DegradeUpstreamError {
		s.logger.WarnContext(ctx, "job store degraded to fixtures",
			"reason", reason,
			"connection_error", data.IsConnectionError(err),
			"error", err,
		)
	}

	var jobs []model.JobSearchResult
	if digest {
		jobs, _ = s.fixtures.Digest(ctx)
	} else {
		jobs, _ = s.fixtures.Search(ctx, query)
	}
	return jobs, reason
}
