// Package redis provides Redis-based adapters for the SMS job-search system.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tradetext/sms-jobs/internal/data"
	"github.com/tradetext/sms-jobs/internal/domain/model"
)

// SessionStore is a Redis-based search-session store for production use.
// Redis key TTL carries the 10-minute expiry, so claim-by-number keeps
// working when the service runs as more than one instance.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "smsjobs:session:",
		now:    time.Now,
	}
}

// NewSessionStoreWithPrefix creates a Redis session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// Save stores the result list for a phone, overwriting any prior entry.
func (s *SessionStore) Save(ctx context.Context, phone string, jobs []model.JobSearchResult) error {
	if phone == "" {
		return errors.New("phone cannot be empty")
	}

	sess := model.SearchSession{
		Phone:     phone,
		Jobs:      jobs,
		CreatedAt: s.now(),
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.client.Set(ctx, s.prefix+phone, payload, model.SessionTTL).Err()
}

// Get returns the live session for a phone, or data.ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, phone string) (model.SearchSession, error) {
	if phone == "" {
		return model.SearchSession{}, data.ErrSessionNotFound
	}

	raw, err := s.client.Get(ctx, s.prefix+phone).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.SearchSession{}, data.ErrSessionNotFound
		}
		return model.SearchSession{}, fmt.Errorf("redis get: %w", err)
	}

	var sess model.SearchSession
	if unmarshalErr := json.Unmarshal([]byte(raw), &sess); unmarshalErr != nil {
		return model.SearchSession{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	// Redis key TTL is the primary expiry; this catches clock-skewed entries.
	if sess.Expired(s.now()) {
		if deleteErr := s.client.Del(ctx, s.prefix+phone).Err(); deleteErr != nil {
			return model.SearchSession{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return model.SearchSession{}, data.ErrSessionNotFound
	}

	return sess, nil
}

// Sweep is a no-op: Redis key TTL already drops expired sessions.
func (s *SessionStore) Sweep(_ context.Context) error {
	return nil
}
