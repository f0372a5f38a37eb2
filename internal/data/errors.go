package data

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tradetext/sms-jobs/internal/domain/model"
)

// Shared sentinel errors for data-layer repositories.
var (
	// ErrSessionNotFound is returned when no live session exists for a phone.
	ErrSessionNotFound = errors.New("session not found")
	// ErrPrefsNotFound is returned when a contractor has no saved preferences.
	ErrPrefsNotFound = errors.New("contractor preferences not found")
	// ErrJobStoreNotConfigured is returned when no live job store was wired.
	ErrJobStoreNotConfigured = errors.New("job store not configured")
)

// DegradeReasonFor maps a repository error to the reason the caller should
// log when falling back to fixture data.
func DegradeReasonFor(err error) model.DegradeReason {
	switch {
	case err == nil:
		return model.DegradeNone
	case errors.Is(err, ErrJobStoreNotConfigured):
		return model.DegradeNotConfigured
	default:
		return model.DegradeUpstreamError
	}
}

// IsConnectionError reports whether the error is a connection-class Postgres
// failure (server unreachable, shutdown in progress) rather than a query bug.
// Degrades caused by these are expected to clear on their own.
func IsConnectionError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgerrcode.IsConnectionException(pgErr.Code) ||
		pgerrcode.IsOperatorIntervention(pgErr.Code)
}
