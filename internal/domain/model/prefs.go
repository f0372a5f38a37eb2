package model

// ContractorPreferences are per-contractor alert settings, keyed by phone
// number and owned by the preference store. This service only reads them.
type ContractorPreferences struct {
	Phone           string  `json:"phone"            db:"phone"`
	MinPrice        int     `json:"min_price"        db:"min_price"`
	MaxDistance     float64 `json:"max_distance"     db:"max_distance"`
	PreferredTrades []Trade `json:"preferred_trades" db:"preferred_trades"`
	SkipLowValue    bool    `json:"skip_low_value"   db:"skip_low_value"`
	MorningDigest   bool    `json:"morning_digest"   db:"morning_digest"`
}

// PrefersTrade reports whether the contractor has opted into the given trade.
// An empty preference list means no trade restriction.
func (p ContractorPreferences) PrefersTrade(t Trade) bool {
	if len(p.PreferredTrades) == 0 {
		return true
	}
	for _, pt := range p.PreferredTrades {
		if pt == t {
			return true
		}
	}
	return false
}
