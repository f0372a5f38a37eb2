package data

import (
	"context"
	"strings"
	"time"

	"github.com/tradetext/sms-jobs/internal/core"
	"github.com/tradetext/sms-jobs/internal/domain/model"
)

// fixtureJob is a fixture row. Age is relative to query time so postings
// never look stale no matter when the fixture path is exercised.
type fixtureJob struct {
	ID      string
	Title   string
	Address string
	City    string
	Zip     string
	Price   int
	Urgency model.JobUrgency
	Age     time.Duration
}

// fixtureJobs is the declared fixture order; fixture-mode results slice the
// first ResultLimit matches in this order, no reshuffling.
var fixtureJobs = []fixtureJob{
	{"fx-001", "Fence repair, 20ft cedar", "1200 Travis St, Houston", "houston", "77002", 450, model.JobUrgencyHigh, 5 * time.Minute},
	{"fx-002", "Kitchen sink leak", "803 Main St, Houston", "houston", "77002", 225, model.JobUrgencyEmergency, 22 * time.Minute},
	{"fx-003", "Ceiling fan install", "4410 Bell St, Houston", "houston", "77023", 150, model.JobUrgencyMedium, 2 * time.Hour},
	{"fx-004", "AC not cooling", "9200 Westview Dr, Houston", "houston", "77055", 600, model.JobUrgencyEmergency, 40 * time.Minute},
	{"fx-005", "Roof shingle replacement", "115 Mason Rd, Katy", "katy", "77450", 1800, model.JobUrgencyMedium, 6 * time.Hour},
	{"fx-006", "Interior painting, 2 rooms", "2201 Town Center Blvd, Sugar Land", "sugar land", "77479", 700, model.JobUrgencyLow, 26 * time.Hour},
	{"fx-007", "Privacy fence install", "6800 Broadway St, Pearland", "pearland", "77581", 2400, model.JobUrgencyLow, 3 * time.Hour},
	{"fx-008", "Water heater replacement", "1510 Kuykendahl Rd, Spring", "spring", "77379", 950, model.JobUrgencyHigh, 90 * time.Minute},
	{"fx-009", "Tile floor regrout", "3100 Fairmont Pkwy, Pasadena", "pasadena", "77504", 375, model.JobUrgencyMedium, 8 * time.Hour},
	{"fx-010", "Yard cleanup and mowing", "18000 Gosling Rd, Spring", "spring", "77388", 120, model.JobUrgencyLow, 30 * time.Hour},
}

// FixtureJobRepo serves the built-in fixture job set. It implements
// core.JobRepository, applies the same predicates as the live store, and
// never fails, which makes it the degradation target when the live store
// is missing or unreachable.
type FixtureJobRepo struct {
	timeProvider TimeProvider
}

// NewFixtureJobRepo creates a fixture-backed job repository.
func NewFixtureJobRepo(tp TimeProvider) *FixtureJobRepo {
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	return &FixtureJobRepo{timeProvider: tp}
}

// Search filters the fixture set with the live store's predicate semantics
// and returns the first ResultLimit matches in declared order.
func (r *FixtureJobRepo) Search(_ context.Context, query model.ParsedQuery) ([]model.JobSearchResult, error) {
	now := r.timeProvider.Now()
	results := make([]model.JobSearchResult, 0, core.ResultLimit)
	for _, fj := range fixtureJobs {
		if !matchesQuery(fj, query) {
			continue
		}
		results = append(results, fj.toResult(now))
		if len(results) == core.ResultLimit {
			break
		}
	}
	return results, nil
}

// Digest returns the first ResultLimit fixture jobs unfiltered.
func (r *FixtureJobRepo) Digest(ctx context.Context) ([]model.JobSearchResult, error) {
	return r.Search(ctx, model.ParsedQuery{Command: model.CommandSearch})
}

func (fj fixtureJob) toResult(now time.Time) model.JobSearchResult {
	postedAt := now.Add(-fj.Age)
	return model.JobSearchResult{
		ID:        fj.ID,
		Title:     fj.Title,
		Address:   fj.Address,
		Price:     fj.Price,
		Urgency:   fj.Urgency,
		PostedAt:  postedAt,
		PostedAgo: model.FormatPostedAgo(postedAt, now),
	}
}

// matchesQuery applies the shared filter predicates: AND semantics across
// every present field.
func matchesQuery(fj fixtureJob, query model.ParsedQuery) bool {
	if query.ZipCode != "" && fj.Zip != query.ZipCode {
		return false
	}
	if query.Trade != "" && !TitleMatchesTrade(fj.Title, query.Trade) {
		return false
	}
	if query.MinPrice != nil && fj.Price < *query.MinPrice {
		return false
	}
	if query.MaxPrice != nil && fj.Price > *query.MaxPrice {
		return false
	}
	if query.City != "" && !strings.Contains(strings.ToLower(fj.City), strings.ToLower(query.City)) {
		return false
	}
	return true
}

// TitleMatchesTrade reports whether a job title implies the given trade,
// using the same canonical-name-or-alias containment the parser uses on
// inbound messages.
func TitleMatchesTrade(title string, trade model.Trade) bool {
	lower := strings.ToLower(title)
	for _, entry := range model.Trades {
		if entry.Trade != trade {
			continue
		}
		if strings.Contains(lower, string(entry.Trade)) {
			return true
		}
		for _, alias := range entry.Aliases {
			if strings.Contains(lower, alias) {
				return true
			}
		}
		return false
	}
	return false
}
