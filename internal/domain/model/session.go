package model

import "time"

// SessionTTL is how long a search result list stays claimable by number.
const SessionTTL = 10 * time.Minute

// SearchSession is the short-lived memory of a contractor's last search,
// keyed by phone number. It exists so a bare "3" reply can be resolved
// against the numbered list the contractor just received.
type SearchSession struct {
	Phone     string            `json:"phone"`
	Jobs      []JobSearchResult `json:"jobs"`
	CreatedAt time.Time         `json:"created_at"`
}

// Expired reports whether the session is past its TTL at the given instant.
func (s SearchSession) Expired(now time.Time) bool {
	return now.Sub(s.CreatedAt) > SessionTTL
}

// JobAt returns the job at the 1-based index n, or false when n is out of
// range. Claim replies are 1-indexed to match the numbered SMS list.
func (s SearchSession) JobAt(n int) (JobSearchResult, bool) {
	if n < 1 || n > len(s.Jobs) {
		return JobSearchResult{}, false
	}
	return s.Jobs[n-1], true
}
