package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tradetext/sms-jobs/internal/core"
)

// Sweeper periodically sweeps expired search sessions. Expiry is already
// enforced lazily on every inbound message; the cron pass only bounds how
// long an idle process holds stale sessions.
type Sweeper struct {
	cron     *cron.Cron
	sessions core.SessionStore
	interval time.Duration
	logger   *slog.Logger
}

// NewSweeper creates a Sweeper that fires every interval.
func NewSweeper(sessions core.SessionStore, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		cron:     cron.New(),
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

// Start registers the sweep job and starts the scheduler.
func (s *Sweeper) Start(ctx context.Context) error {
	schedule := fmt.Sprintf("@every %s", s.interval)
	_, err := s.cron.AddFunc(schedule, func() {
		if sweepErr := s.sessions.Sweep(ctx); sweepErr != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "background session sweep failed", "error", sweepErr)
		}
	})
	if err != nil {
		return fmt.Errorf("register sweep job: %w", err)
	}

	s.cron.Start()
	if s.logger != nil {
		s.logger.InfoContext(ctx, "session sweeper started", "interval", s.interval)
	}
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sweep.
func (s *Sweeper) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	if s.logger != nil {
		s.logger.Info("session sweeper stopped")
	}
}
