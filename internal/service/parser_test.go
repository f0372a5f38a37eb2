package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradetext/sms-jobs/internal/domain/model"
)

func intPtr(n int) *int { return &n }

func TestParse_CommandKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.Command
	}{
		{"stop lowercase", "stop", model.CommandStop},
		{"stop uppercase", "STOP", model.CommandStop},
		{"unsubscribe", "unsubscribe", model.CommandStop},
		{"stop with trailing words", "stop sending me these", model.CommandStop},
		{"help", "help", model.CommandHelp},
		{"question mark", "?", model.CommandHelp},
		{"digest", "digest", model.CommandDigest},
		{"digest mixed case", "Digest please", model.CommandDigest},
		{"morning", "morning", model.CommandDigest},
		{"prefs", "prefs", model.CommandPrefs},
		{"preferences", "PREFERENCES", model.CommandPrefs},
		{"settings", "settings", model.CommandPrefs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			assert.Equal(t, tt.want, got.Command)
			// Terminal intents never carry filters.
			assert.False(t, got.HasFilters())
			assert.Zero(t, got.JobNumber)
		})
	}
}

func TestParse_Claim(t *testing.T) {
	tests := []struct {
		text      string
		jobNumber int
	}{
		{"3", 3},
		{"claim 3", 3},
		{"CLAIM 9", 9},
		{" 1 ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := Parse(tt.text)
			require.Equal(t, model.CommandClaim, got.Command)
			assert.Equal(t, tt.jobNumber, got.JobNumber)
			assert.False(t, got.HasFilters())
		})
	}
}

func TestParse_ClaimRejectsMultiDigit(t *testing.T) {
	// "33" and "claim 12" fall through to search parsing: result lists
	// hold at most five jobs, so a claim is always one digit.
	for _, text := range []string{"33", "claim 12", "0", "claim 0"} {
		got := Parse(text)
		assert.Equal(t, model.CommandSearch, got.Command, "text %q", text)
		assert.Zero(t, got.JobNumber)
	}
}

func TestParse_SearchExtraction(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.ParsedQuery
	}{
		{
			name: "trade and zip",
			text: "fence 77002",
			want: model.ParsedQuery{Command: model.CommandSearch, Trade: model.TradeFencing, ZipCode: "77002"},
		},
		{
			name: "trade price city",
			text: "plumbing under 500 houston",
			want: model.ParsedQuery{Command: model.CommandSearch, Trade: model.TradePlumbing, MaxPrice: intPtr(500), City: "houston"},
		},
		{
			name: "dollar sign price",
			text: "roofing under $1200",
			want: model.ParsedQuery{Command: model.CommandSearch, Trade: model.TradeRoofing, MaxPrice: intPtr(1200)},
		},
		{
			name: "min and max",
			text: "electrical over 200 under 800",
			want: model.ParsedQuery{Command: model.CommandSearch, Trade: model.TradeElectrical, MinPrice: intPtr(200), MaxPrice: intPtr(800)},
		},
		{
			name: "max overwrites under",
			text: "painting under 300 max 400",
			want: model.ParsedQuery{Command: model.CommandSearch, Trade: model.TradePainting, MaxPrice: intPtr(400)},
		},
		{
			name: "min overwrites over",
			text: "painting over 300 min 150",
			want: model.ParsedQuery{Command: model.CommandSearch, Trade: model.TradePainting, MinPrice: intPtr(150)},
		},
		{
			name: "urgency today tier",
			text: "emergency plumbing 77002",
			want: model.ParsedQuery{Command: model.CommandSearch, Trade: model.TradePlumbing, ZipCode: "77002", Urgency: model.QueryUrgencyToday},
		},
		{
			name: "urgency week tier",
			text: "hvac this week",
			want: model.ParsedQuery{Command: model.CommandSearch, Trade: model.TradeHVAC, Urgency: model.QueryUrgencyThisWeek},
		},
		{
			name: "alias maps to canonical trade",
			text: "water heater katy",
			want: model.ParsedQuery{Command: model.CommandSearch, Trade: model.TradePlumbing, City: "katy"},
		},
		{
			name: "general stays last",
			text: "handyman 77002",
			want: model.ParsedQuery{Command: model.CommandSearch, Trade: model.TradeGeneral, ZipCode: "77002"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.text))
		})
	}
}

func TestParse_NegationClearsTrade(t *testing.T) {
	got := Parse("anything tomorrow morning")
	assert.Equal(t, model.CommandSearch, got.Command)
	assert.Equal(t, model.QueryUrgencyTomorrow, got.Urgency)
	assert.Empty(t, got.Trade)

	// Negation clears an actually-extracted trade too.
	got = Parse("any job plumbing 77002")
	assert.Equal(t, "77002", got.ZipCode)
	assert.Empty(t, got.Trade)
}

func TestParse_UrgencyTierPriority(t *testing.T) {
	// "today" outranks "tomorrow" when both appear.
	got := Parse("need help today or tomorrow")
	assert.Equal(t, model.QueryUrgencyToday, got.Urgency)
}

func TestParse_EmptyAndNoise(t *testing.T) {
	for _, text := range []string{"", "   ", "hello there"} {
		got := Parse(text)
		assert.Equal(t, model.CommandSearch, got.Command, "text %q", text)
		assert.False(t, got.HasFilters(), "text %q", text)
	}
}

func TestParse_Idempotent(t *testing.T) {
	const text = "Plumbing UNDER $500 houston today"
	first := Parse(text)
	for range 10 {
		assert.Equal(t, first, Parse(text))
	}
}
