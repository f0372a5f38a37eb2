package service

import (
	"fmt"

	"github.com/tradetext/sms-jobs/internal/domain/model"
)

// Formatter output is joined with newlines into one outbound SMS body. The
// 160-character segment size is a soft target: fields are truncated per-job,
// the whole message is not.
const (
	noJobsHint  = "No jobs found. Try a trade and a zip, like \"plumbing 77002\"."
	claimFooter = "Reply 1-5 to claim job"

	titleMax   = 15
	addressMax = 20
	addressCut = 17
)

// FormatResults renders a job list into SMS message lines: a count header,
// one numbered line per job, and a claim-instruction footer. Empty input
// yields a single hint line, never an empty slice.
func FormatResults(jobs []model.JobSearchResult) []string {
	if len(jobs) == 0 {
		return []string{noJobsHint}
	}

	lines := make([]string, 0, len(jobs)+2)
	if len(jobs) == 1 {
		lines = append(lines, "Found 1 job:")
	} else {
		lines = append(lines, fmt.Sprintf("Found %d jobs:", len(jobs)))
	}

	for i, job := range jobs {
		lines = append(lines, fmt.Sprintf("%d. %s $%d %s | %s | %s",
			i+1,
			urgencyIcon(job.Urgency),
			job.Price,
			truncateTitle(job.Title),
			truncateAddress(job.Address),
			job.PostedAgo,
		))
	}

	lines = append(lines, claimFooter)
	return lines
}

// urgencyIcon picks the per-line marker. Medium and low share the default.
func urgencyIcon(u model.JobUrgency) string {
	switch u {
	case model.JobUrgencyEmergency:
		return "🚨"
	case model.JobUrgencyHigh:
		return "⚡"
	default:
		return "🔨"
	}
}

// truncateTitle hard-cuts the title at titleMax runes, no ellipsis.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= titleMax {
		return title
	}
	return string(runes[:titleMax])
}

// truncateAddress cuts to addressCut runes plus "..." only when the address
// exceeds addressMax; shorter addresses pass through untouched.
func truncateAddress(address string) string {
	runes := []rune(address)
	if len(runes) <= addressMax {
		return address
	}
	return string(runes[:addressCut]) + "..."
}
