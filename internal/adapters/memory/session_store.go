// Package memory provides in-process adapters for single-instance deployments.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/tradetext/sms-jobs/internal/data"
	"github.com/tradetext/sms-jobs/internal/domain/model"
)

// SessionStore keeps search sessions in a mutex-guarded map. Sessions are
// process-lifetime scoped; restarts drop them, which is acceptable because
// they expire after ten minutes anyway. Expiry is enforced on read and by
// Sweep, which the dispatcher runs at the start of every inbound message.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]model.SearchSession
	now      func() time.Time
}

// NewSessionStore creates an in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]model.SearchSession),
		now:      time.Now,
	}
}

// NewSessionStoreWithClock creates a store with an injected clock for tests.
func NewSessionStoreWithClock(now func() time.Time) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]model.SearchSession),
		now:      now,
	}
}

// Save stores the result list for a phone, overwriting any prior entry.
// Last write wins on same-phone races.
func (s *SessionStore) Save(_ context.Context, phone string, jobs []model.JobSearchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[phone] = model.SearchSession{
		Phone:     phone,
		Jobs:      jobs,
		CreatedAt: s.now(),
	}
	return nil
}

// Get returns the live session for a phone, or data.ErrSessionNotFound.
// Expired entries read as absent even before a sweep removes them.
func (s *SessionStore) Get(_ context.Context, phone string) (model.SearchSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[phone]
	if !ok || sess.Expired(s.now()) {
		return model.SearchSession{}, data.ErrSessionNotFound
	}
	return sess, nil
}

// Sweep drops every expired session across all phones, not just the caller's.
func (s *SessionStore) Sweep(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for phone, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, phone)
		}
	}
	return nil
}

// Len returns the number of stored sessions, expired or not.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
