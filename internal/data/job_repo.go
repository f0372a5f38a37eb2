package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tradetext/sms-jobs/internal/core"
	"github.com/tradetext/sms-jobs/internal/domain/model"
)

// RepoConfig holds configuration options shared by the Postgres repositories.
type RepoConfig struct {
	Logger       *slog.Logger
	TimeProvider TimeProvider
}

// JobRepo provides Postgres-backed job search. It is read-only: job rows are
// owned by the marketplace backend, this service only queries them.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
	logger       *slog.Logger
}

// NewJobRepo creates a new JobRepo instance with the given database connection and configuration.
func NewJobRepo(db *sql.DB, cfg RepoConfig) *JobRepo {
	tp := cfg.TimeProvider
	if tp == nil {
		tp = &RealTimeProvider{}
	}

	return &JobRepo{
		DB:           db,
		timeProvider: tp,
		logger:       cfg.Logger,
	}
}

const jobColumns = `
  id,
  title,
  address,
  price,
  urgency,
  posted_at
`

// urgencyRankSQL mirrors model.JobUrgency.Rank for ORDER BY.
const urgencyRankSQL = `
  CASE urgency
    WHEN 'emergency' THEN 4
    WHEN 'high' THEN 3
    WHEN 'medium' THEN 2
    WHEN 'low' THEN 1
    ELSE 0
  END`

// jobQueryBuilder accumulates positional WHERE clauses for the open-jobs query.
type jobQueryBuilder struct {
	conds []string
	args  []any
}

// add appends a single-value condition. The condition string must contain one
// %d verb for the positional placeholder, e.g. "zip_code = $%d".
func (b *jobQueryBuilder) add(cond string, value any) {
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf(cond, len(b.args)))
}

// addTrade appends an OR group matching the trade's canonical name or any of
// its aliases against the job title, the SQL mirror of TitleMatchesTrade.
func (b *jobQueryBuilder) addTrade(trade model.Trade) {
	terms := tradeSearchTerms(trade)
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		b.args = append(b.args, "%"+term+"%")
		parts = append(parts, fmt.Sprintf("title ILIKE $%d", len(b.args)))
	}
	if len(parts) > 0 {
		b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
	}
}

func (b *jobQueryBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " AND " + strings.Join(b.conds, " AND ")
}

// tradeSearchTerms returns the canonical name plus aliases for a trade.
func tradeSearchTerms(trade model.Trade) []string {
	for _, entry := range model.Trades {
		if entry.Trade == trade {
			return append([]string{string(entry.Trade)}, entry.Aliases...)
		}
	}
	return nil
}

// Search returns up to ResultLimit open jobs matching the query's filters,
// ordered by urgency descending then recency descending.
func (r *JobRepo) Search(ctx context.Context, query model.ParsedQuery) ([]model.JobSearchResult, error) {
	b := &jobQueryBuilder{}
	if query.ZipCode != "" {
		b.add("zip_code = $%d", query.ZipCode)
	}
	if query.Trade != "" {
		b.addTrade(query.Trade)
	}
	if query.MinPrice != nil {
		b.add("price >= $%d", *query.MinPrice)
	}
	if query.MaxPrice != nil {
		b.add("price <= $%d", *query.MaxPrice)
	}
	if query.City != "" {
		b.add("city ILIKE $%d", "%"+query.City+"%")
	}

	sqlQuery := fmt.Sprintf(`
		SELECT %s
		FROM jobs
		WHERE status = 'open'%s
		ORDER BY %s DESC, posted_at DESC
		LIMIT %d`,
		jobColumns, b.where(), urgencyRankSQL, core.ResultLimit)

	return r.queryJobs(ctx, sqlQuery, b.args)
}

// Digest returns up to ResultLimit of the freshest open jobs.
func (r *JobRepo) Digest(ctx context.Context) ([]model.JobSearchResult, error) {
	sqlQuery := fmt.Sprintf(`
		SELECT %s
		FROM jobs
		WHERE status = 'open'
		ORDER BY %s DESC, posted_at DESC
		LIMIT %d`,
		jobColumns, urgencyRankSQL, core.ResultLimit)

	return r.queryJobs(ctx, sqlQuery, nil)
}

func (r *JobRepo) queryJobs(ctx context.Context, sqlQuery string, args []any) ([]model.JobSearchResult, error) {
	rows, err := r.DB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	now := r.timeProvider.Now()
	var results []model.JobSearchResult
	for rows.Next() {
		var job model.JobSearchResult
		if scanErr := rows.Scan(&job.ID, &job.Title, &job.Address, &job.Price, &job.Urgency, &job.PostedAt); scanErr != nil {
			return nil, fmt.Errorf("scan job: %w", scanErr)
		}
		job.PostedAgo = model.FormatPostedAgo(job.PostedAt, now)
		results = append(results, job)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}

	return results, nil
}
