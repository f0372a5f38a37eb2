package data

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/tradetext/sms-jobs/internal/domain/model"
)

func TestDegradeReasonFor(t *testing.T) {
	assert.Equal(t, model.DegradeNone, DegradeReasonFor(nil))
	assert.Equal(t, model.DegradeNotConfigured, DegradeReasonFor(ErrJobStoreNotConfigured))
	assert.Equal(t, model.DegradeNotConfigured, DegradeReasonFor(fmt.Errorf("search: %w", ErrJobStoreNotConfigured)))
	assert.Equal(t, model.DegradeUpstreamError, DegradeReasonFor(errors.New("connection refused")))
}

func TestIsConnectionError(t *testing.T) {
	connErr := &pgconn.PgError{Code: pgerrcode.ConnectionFailure}
	assert.True(t, IsConnectionError(connErr))
	assert.True(t, IsConnectionError(fmt.Errorf("query: %w", connErr)))

	assert.False(t, IsConnectionError(&pgconn.PgError{Code: pgerrcode.SyntaxError}))
	assert.False(t, IsConnectionError(errors.New("plain error")))
	assert.False(t, IsConnectionError(nil))
}
