package model

import (
	"fmt"
	"time"
)

// JobUrgency represents how urgent a posted job is.
type JobUrgency string

const (
	// JobUrgencyLow indicates a flexible-schedule job.
	JobUrgencyLow JobUrgency = "low"
	// JobUrgencyMedium indicates a job wanted within a few days.
	JobUrgencyMedium JobUrgency = "medium"
	// JobUrgencyHigh indicates a job wanted today or tomorrow.
	JobUrgencyHigh JobUrgency = "high"
	// JobUrgencyEmergency indicates an immediate-response job.
	JobUrgencyEmergency JobUrgency = "emergency"
)

// Valid returns true if the JobUrgency is valid.
func (u JobUrgency) Valid() bool {
	return u == JobUrgencyLow || u == JobUrgencyMedium || u == JobUrgencyHigh ||
		u == JobUrgencyEmergency
}

// Rank returns the sort weight of the urgency, higher is more urgent.
// Unknown values rank below low so malformed rows sink to the bottom.
func (u JobUrgency) Rank() int {
	switch u {
	case JobUrgencyEmergency:
		return 4
	case JobUrgencyHigh:
		return 3
	case JobUrgencyMedium:
		return 2
	case JobUrgencyLow:
		return 1
	}
	return 0
}

// JobSearchResult is a denormalized, display-ready job record.
type JobSearchResult struct {
	ID        string     `json:"id"         db:"id"`
	Title     string     `json:"title"      db:"title"`
	Address   string     `json:"address"    db:"address"`
	Price     int        `json:"price"      db:"price"` // whole USD
	Urgency   JobUrgency `json:"urgency"    db:"urgency"`
	PostedAt  time.Time  `json:"posted_at"  db:"posted_at"`
	PostedAgo string     `json:"posted_ago"`
	Distance  *float64   `json:"distance,omitempty"` // miles, when known
}

// FormatPostedAgo renders the age of a posting as a compact human string
// ("5m", "2h", "1d"). Anything under a minute reads "now".
func FormatPostedAgo(postedAt, now time.Time) string {
	age := now.Sub(postedAt)
	switch {
	case age < time.Minute:
		return "now"
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd", int(age.Hours()/24))
	}
}
