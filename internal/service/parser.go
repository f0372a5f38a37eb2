// Package service contains the business logic for interpreting inbound SMS
// messages, searching jobs, formatting replies, and dispatching commands.
package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tradetext/sms-jobs/internal/domain/model"
)

// Intent keyword tables. Command detection looks at the first token only,
// except claim which must match the entire message.
var (
	stopWords   = map[string]bool{"stop": true, "unsubscribe": true}
	helpWords   = map[string]bool{"help": true, "?": true}
	digestWords = map[string]bool{"digest": true, "morning": true}
	prefsWords  = map[string]bool{"prefs": true, "preferences": true, "settings": true}
)

// claimPattern matches an optional "claim" keyword followed by exactly one
// digit, against the whole normalized message. Single digit only: result
// lists are capped at five jobs, so a second digit always means the message
// is something else (a zip fragment, a price).
var claimPattern = regexp.MustCompile(`^(?:claim\s+)?([1-9])$`)

// Price phrase patterns. "max"/"min" overwrite "under"/"over" when both
// appear, so the explicit keyword wins over the colloquial one.
var (
	underPattern = regexp.MustCompile(`under\s+\$?(\d+)`)
	maxPattern   = regexp.MustCompile(`max\s+\$?(\d+)`)
	overPattern  = regexp.MustCompile(`over\s+\$?(\d+)`)
	minPattern   = regexp.MustCompile(`min\s+\$?(\d+)`)
)

// negationPhrases clear an extracted trade: the contractor explicitly asked
// for everything. Evaluated last, overriding trade extraction unconditionally.
var negationPhrases = []string{"anything", "any job", "all jobs"}

// Parse turns raw SMS text into a structured query. It is pure and total:
// unrecognized signals simply leave the corresponding field unset, and the
// fallback intent is always a search.
func Parse(text string) model.ParsedQuery {
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	tokens := strings.Fields(normalized)

	if len(tokens) == 0 {
		return model.ParsedQuery{Command: model.CommandSearch}
	}

	first := tokens[0]
	switch {
	case stopWords[first]:
		return model.ParsedQuery{Command: model.CommandStop}
	case helpWords[first]:
		return model.ParsedQuery{Command: model.CommandHelp}
	case digestWords[first]:
		return model.ParsedQuery{Command: model.CommandDigest}
	case prefsWords[first]:
		return model.ParsedQuery{Command: model.CommandPrefs}
	}

	if m := claimPattern.FindStringSubmatch(normalized); m != nil {
		n, _ := strconv.Atoi(m[1])
		return model.ParsedQuery{Command: model.CommandClaim, JobNumber: n}
	}

	query := model.ParsedQuery{Command: model.CommandSearch}
	query.ZipCode = extractZip(tokens)
	query.MinPrice, query.MaxPrice = extractPrices(normalized)
	query.Urgency = extractUrgency(normalized)
	query.Trade = extractTrade(normalized)
	query.City = extractCity(normalized)

	for _, phrase := range negationPhrases {
		if strings.Contains(normalized, phrase) {
			query.Trade = ""
			break
		}
	}

	return query
}

// extractZip returns the first token that is exactly five digits.
func extractZip(tokens []string) string {
	for _, tok := range tokens {
		if len(tok) == 5 && isDigits(tok) {
			return tok
		}
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// extractPrices pulls min/max price bounds out of the message. Within each
// bound the later pattern wins: "max" overwrites "under", "min" overwrites
// "over". Bounds are independent, not validated against each other.
func extractPrices(text string) (minPrice, maxPrice *int) {
	if m := underPattern.FindStringSubmatch(text); m != nil {
		maxPrice = parsePrice(m[1])
	}
	if m := maxPattern.FindStringSubmatch(text); m != nil {
		maxPrice = parsePrice(m[1])
	}
	if m := overPattern.FindStringSubmatch(text); m != nil {
		minPrice = parsePrice(m[1])
	}
	if m := minPattern.FindStringSubmatch(text); m != nil {
		minPrice = parsePrice(m[1])
	}
	return minPrice, maxPrice
}

func parsePrice(digits string) *int {
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// extractUrgency tests fixed substring tiers in priority order; the first
// matching tier wins and later tiers are not consulted.
func extractUrgency(text string) model.QueryUrgency {
	for _, word := range []string{"today", "asap", "emergency", "urgent"} {
		if strings.Contains(text, word) {
			return model.QueryUrgencyToday
		}
	}
	for _, word := range []string{"tomorrow", "morning"} {
		if strings.Contains(text, word) {
			return model.QueryUrgencyTomorrow
		}
	}
	for _, word := range []string{"this week", "week"} {
		if strings.Contains(text, word) {
			return model.QueryUrgencyThisWeek
		}
	}
	return ""
}

// extractTrade walks the ordered canonical trade table and returns the first
// trade whose name or alias appears in the message. Declaration order is the
// tie-break, which keeps the catch-all "general" aliases from shadowing the
// specific trades.
func extractTrade(text string) model.Trade {
	for _, entry := range model.Trades {
		if strings.Contains(text, string(entry.Trade)) {
			return entry.Trade
		}
		for _, alias := range entry.Aliases {
			if strings.Contains(text, alias) {
				return entry.Trade
			}
		}
	}
	return ""
}

// extractCity returns the first allow-listed city appearing in the message.
func extractCity(text string) string {
	for _, city := range model.Cities {
		if strings.Contains(text, city) {
			return city
		}
	}
	return ""
}
