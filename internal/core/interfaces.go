// Package core contains the port interfaces between the service layer and
// the adapters behind it (repositories, session stores, external models).
// Service implementations depend on these interfaces, not concrete types.
package core

import (
	"context"

	"github.com/tradetext/sms-jobs/internal/domain/model"
)

// ResultLimit caps every search and digest response. Five jobs keep the
// reply inside a reasonable SMS budget and under the claim keypad range.
const ResultLimit = 5

// JobRepository defines the interface for querying the job store.
type JobRepository interface {
	// Search returns up to ResultLimit jobs matching the query's filters,
	// ordered by urgency descending then recency descending.
	Search(ctx context.Context, query model.ParsedQuery) ([]model.JobSearchResult, error)
	// Digest returns up to ResultLimit of the freshest open jobs.
	Digest(ctx context.Context) ([]model.JobSearchResult, error)
}

// PreferenceRepository defines read access to contractor preferences.
type PreferenceRepository interface {
	// GetByPhone returns the preferences for a phone number.
	// Returns data.ErrPrefsNotFound when the contractor has none saved.
	GetByPhone(ctx context.Context, phone string) (*model.ContractorPreferences, error)
}

// SessionStore tracks each contractor's most recent search results so a
// numeric reply can claim a job from the last list sent.
type SessionStore interface {
	// Save stores the result list for a phone, overwriting any prior entry.
	Save(ctx context.Context, phone string, jobs []model.JobSearchResult) error
	// Get returns the live session for a phone, or data.ErrSessionNotFound.
	// Claiming does not consume the session.
	Get(ctx context.Context, phone string) (model.SearchSession, error)
	// Sweep drops every expired session across all phones.
	Sweep(ctx context.Context) error
}

// ImageAnalyzer assesses a photo of a repair problem and describes the work.
type ImageAnalyzer interface {
	Assess(ctx context.Context, photoURL string) (string, error)
}
