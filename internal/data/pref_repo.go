package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tradetext/sms-jobs/internal/domain/model"
)

// PrefRepo provides read access to contractor preferences. Preference rows
// are owned by the notification-settings surface; this service never writes.
type PrefRepo struct {
	DB     *sql.DB
	logger *slog.Logger
}

// NewPrefRepo creates a new PrefRepo instance.
func NewPrefRepo(db *sql.DB, cfg RepoConfig) *PrefRepo {
	return &PrefRepo{
		DB:     db,
		logger: cfg.Logger,
	}
}

// GetByPhone returns the preferences for a phone number, or ErrPrefsNotFound.
func (r *PrefRepo) GetByPhone(ctx context.Context, phone string) (*model.ContractorPreferences, error) {
	const query = `
		SELECT phone, min_price, max_distance, preferred_trades, skip_low_value, morning_digest
		FROM contractor_preferences
		WHERE phone = $1
	`

	var (
		prefs  model.ContractorPreferences
		trades string
	)
	err := r.DB.QueryRowContext(ctx, query, phone).Scan(
		&prefs.Phone,
		&prefs.MinPrice,
		&prefs.MaxDistance,
		&trades,
		&prefs.SkipLowValue,
		&prefs.MorningDigest,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPrefsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query contractor preferences: %w", err)
	}

	prefs.PreferredTrades = parseTradeList(trades)
	return &prefs, nil
}

// parseTradeList splits the comma-separated preferred_trades column,
// dropping empty and unknown entries.
func parseTradeList(raw string) []model.Trade {
	if raw == "" {
		return nil
	}
	var trades []model.Trade
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(strings.ToLower(part))
		if name == "" {
			continue
		}
		for _, entry := range model.Trades {
			if string(entry.Trade) == name {
				trades = append(trades, entry.Trade)
				break
			}
		}
	}
	return trades
}
