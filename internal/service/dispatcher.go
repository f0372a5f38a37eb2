package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/tradetext/sms-jobs/internal/core"
	"github.com/tradetext/sms-jobs/internal/data"
	"github.com/tradetext/sms-jobs/internal/domain/model"
	obserrors "github.com/tradetext/sms-jobs/internal/observability/errors"
)

// Static reply texts. Every inbound message gets exactly one of these or a
// formatted job list; internal faults never leak past the apology.
const (
	helpText = "TradeText job alerts:\n" +
		"- Text a trade + zip to search (\"plumbing 77002\")\n" +
		"- Add \"under $500\" or \"over $200\" for price\n" +
		"- Reply 1-5 to claim a job from your last list\n" +
		"- DIGEST for today's top jobs\n" +
		"- PREFS to manage alerts, STOP to unsubscribe"

	stopText = "You're unsubscribed from job alerts. Text any trade to search again whenever you like."

	prefsText = "Manage your alert preferences (trades, minimum price, morning digest) in the TradeText app under Settings > Job Alerts."

	noSessionText = "No recent search to claim from. Text a trade and a zip first, like \"roofing 77450\"."

	photoFallbackText = "Thanks for the photo! This one needs a professional assessment - a contractor will review it and follow up shortly."

	apologyText = "Something went wrong on our end. Please try again in a minute."
)

// InboundMessage is one webhook-delivered SMS, already validated by the
// transport layer.
type InboundMessage struct {
	From     string
	Body     string
	MediaURL string
}

// DispatcherDeps groups the collaborators the dispatcher routes between.
// Prefs and Vision are optional; missing collaborators degrade to static
// replies instead of failing.
type DispatcherDeps struct {
	Search   *JobSearchService
	Sessions core.SessionStore
	Prefs    core.PreferenceRepository
	Vision   core.ImageAnalyzer
}

// DispatcherServiceOptions groups dependencies for DispatcherService.
type DispatcherServiceOptions struct {
	Deps            DispatcherDeps
	UpstreamTimeout time.Duration // Optional: bound on preference/vision calls, defaults to 5s
	Logger          *slog.Logger  // Optional: structured logger
}

// DispatcherService is the command state machine: it sweeps sessions, parses
// the inbound message, and routes the detected command to the right
// collaborators. It is stateless across messages except through the session
// store.
type DispatcherService struct {
	search   *JobSearchService
	sessions core.SessionStore
	prefs    core.PreferenceRepository
	vision   core.ImageAnalyzer
	timeout  time.Duration
	logger   *slog.Logger
}

// NewDispatcherService constructs a new DispatcherService.
func NewDispatcherService(opts DispatcherServiceOptions) *DispatcherService {
	if opts.Deps.Search == nil {
		//nolint:forbidigo // Service construction must fail fast during wiring when dependencies are missing
		panic("JobSearchService is required")
	}
	if opts.Deps.Sessions == nil {
		//nolint:forbidigo // Service construction must fail fast during wiring when dependencies are missing
		panic("SessionStore is required")
	}

	timeout := opts.UpstreamTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &DispatcherService{
		search:   opts.Deps.Search,
		sessions: opts.Deps.Sessions,
		prefs:    opts.Deps.Prefs,
		vision:   opts.Deps.Vision,
		timeout:  timeout,
		logger:   opts.Logger,
	}
}

// Handle processes one inbound message and returns the reply body. It never
// returns an error: whatever breaks inside, the SMS gateway still gets a
// well-formed reply.
func (s *DispatcherService) Handle(ctx context.Context, msg InboundMessage) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			if s.logger != nil {
				s.logger.ErrorContext(ctx, "panic handling inbound message",
					"error", fmt.Sprint(r),
					"stack", string(debug.Stack()),
				)
			}
			reply = apologyText
		}
	}()

	// Photo messages bypass text parsing entirely.
	if msg.MediaURL != "" {
		return s.handlePhoto(ctx, msg)
	}

	// Lazy expiry: every inbound message sweeps stale sessions for all
	// phones, not just the sender's.
	if err := s.sessions.Sweep(ctx); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "session sweep failed", "error", err)
	}

	query := Parse(msg.Body)
	switch query.Command {
	case model.CommandHelp:
		return helpText
	case model.CommandStop:
		// Subscription state is owned by an external collaborator; only
		// the confirmation is ours.
		return stopText
	case model.CommandPrefs:
		return prefsText
	case model.CommandDigest:
		return s.handleDigest(ctx, msg.From)
	case model.CommandClaim:
		return s.handleClaim(ctx, msg.From, query.JobNumber)
	default:
		return s.handleSearch(ctx, msg.From, query)
	}
}

func (s *DispatcherService) handleSearch(ctx context.Context, phone string, query model.ParsedQuery) string {
	jobs, reason := s.search.Search(ctx, query)
	if reason.Degraded() && s.logger != nil {
		s.logger.InfoContext(ctx, "search degraded", "reason", reason, "phone", phone)
	}

	s.saveSession(ctx, phone, jobs)
	return strings.Join(FormatResults(jobs), "\n")
}

func (s *DispatcherService) handleDigest(ctx context.Context, phone string) string {
	// Preferences are best-effort and informational; a missing or failing
	// preference store never blocks the digest.
	if s.prefs != nil {
		prefsCtx, cancel := context.WithTimeout(ctx, s.timeout)
		prefs, err := s.prefs.GetByPhone(prefsCtx, phone)
		cancel()
		switch {
		case err == nil && s.logger != nil:
			s.logger.DebugContext(ctx, "digest preferences loaded",
				"phone", phone,
				"morning_digest", prefs.MorningDigest,
				"preferred_trades", len(prefs.PreferredTrades),
			)
		case err != nil && !errors.Is(err, data.ErrPrefsNotFound) && s.logger != nil:
			s.logger.WarnContext(ctx, "preference fetch failed",
				"phone", phone,
				"error_class", obserrors.Classify(err),
				"error", err,
			)
		}
	}

	jobs, reason := s.search.Digest(ctx)
	if reason.Degraded() && s.logger != nil {
		s.logger.InfoContext(ctx, "digest degraded", "reason", reason, "phone", phone)
	}

	s.saveSession(ctx, phone, jobs)
	return strings.Join(FormatResults(jobs), "\n")
}

func (s *DispatcherService) handleClaim(ctx context.Context, phone string, jobNumber int) string {
	sess, err := s.sessions.Get(ctx, phone)
	if err != nil || len(sess.Jobs) == 0 {
		return noSessionText
	}

	job, ok := sess.JobAt(jobNumber)
	if !ok {
		return fmt.Sprintf("Invalid job number. Reply 1-%d to claim from your last search.", len(sess.Jobs))
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "job claimed", "phone", phone, "job_id", job.ID)
	}
	return fmt.Sprintf("You claimed job %d: %s at %s. The homeowner has been notified - check the app for next steps.",
		jobNumber, job.Title, job.Address)
}

func (s *DispatcherService) handlePhoto(ctx context.Context, msg InboundMessage) string {
	if s.vision == nil {
		return photoFallbackText
	}

	visionCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	assessment, err := s.vision.Assess(visionCtx, msg.MediaURL)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "photo assessment failed",
				"phone", msg.From,
				"error_class", obserrors.Classify(err),
				"error", err,
			)
		}
		return photoFallbackText
	}

	return assessment
}

// saveSession overwrites the sender's session with the latest result list.
// A failed save is logged and otherwise ignored: the reply has already been
// built and a claim against a stale session just misses.
func (s *DispatcherService) saveSession(ctx context.Context, phone string, jobs []model.JobSearchResult) {
	if err := s.sessions.Save(ctx, phone, jobs); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "session save failed", "phone", phone, "error", err)
	}
}
