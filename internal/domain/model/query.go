// Package model defines the core data types used throughout the SMS job-search system.
package model

// Command represents the interpreted intent of an inbound SMS message.
type Command string

const (
	// CommandSearch is the default intent: extract filters and run a job search.
	CommandSearch Command = "search"
	// CommandClaim claims a job from the sender's most recent result list by number.
	CommandClaim Command = "claim"
	// CommandDigest requests the morning top-5 job digest on demand.
	CommandDigest Command = "digest"
	// CommandPrefs requests instructions for managing notification preferences.
	CommandPrefs Command = "prefs"
	// CommandStop unsubscribes the sender from job alerts.
	CommandStop Command = "stop"
	// CommandHelp requests usage instructions.
	CommandHelp Command = "help"
)

// Valid returns true if the Command is one of the known intents.
func (c Command) Valid() bool {
	switch c {
	case CommandSearch, CommandClaim, CommandDigest, CommandPrefs, CommandStop, CommandHelp:
		return true
	}
	return false
}

// Terminal returns true for intents that carry no search filters.
func (c Command) Terminal() bool {
	return c != CommandSearch
}

// Trade is a canonical trade identifier.
type Trade string

const (
	TradePlumbing    Trade = "plumbing"
	TradeElectrical  Trade = "electrical"
	TradeHVAC        Trade = "hvac"
	TradeRoofing     Trade = "roofing"
	TradeFencing     Trade = "fencing"
	TradePainting    Trade = "painting"
	TradeCarpentry   Trade = "carpentry"
	TradeFlooring    Trade = "flooring"
	TradeLandscaping Trade = "landscaping"
	TradeGeneral     Trade = "general"
)

// TradeAliases maps a canonical trade to the phrases that imply it.
// Matching walks Trades in order and stops at the first trade whose canonical
// name or any alias appears in the message, so "general"/"repair" must stay
// last to avoid shadowing the specific trades.
type TradeAliases struct {
	Trade   Trade
	Aliases []string
}

// Trades is the ordered canonical trade table.
var Trades = []TradeAliases{
	{TradePlumbing, []string{"plumb", "leak", "pipe", "drain", "faucet", "toilet", "water heater"}},
	{TradeElectrical, []string{"electric", "wiring", "outlet", "breaker", "panel", "light fixture"}},
	{TradeHVAC, []string{"hvac", "air condition", "furnace", "heating", "cooling"}},
	{TradeRoofing, []string{"roof", "shingle", "gutter"}},
	{TradeFencing, []string{"fence", "gate"}},
	{TradePainting, []string{"paint"}},
	{TradeCarpentry, []string{"carpent", "cabinet", "framing", "deck", "trim work"}},
	{TradeFlooring, []string{"floor", "tile", "carpet", "hardwood"}},
	{TradeLandscaping, []string{"landscap", "lawn", "yard", "tree", "mowing"}},
	{TradeGeneral, []string{"handyman", "repair", "maintenance", "odd job"}},
}

// Cities is the ordered allow-list of recognized city names.
// First substring match wins.
var Cities = []string{
	"houston",
	"katy",
	"sugar land",
	"pearland",
	"pasadena",
	"baytown",
	"the woodlands",
	"cypress",
	"spring",
	"humble",
}

// QueryUrgency is the time window a contractor is asking about.
type QueryUrgency string

const (
	QueryUrgencyToday    QueryUrgency = "today"
	QueryUrgencyTomorrow QueryUrgency = "tomorrow"
	QueryUrgencyThisWeek QueryUrgency = "this_week"
	QueryUrgencyAnytime  QueryUrgency = "anytime"
)

// ParsedQuery is the structured outcome of interpreting one inbound message.
// Command is always set. All other fields are optional; terminal commands
// (everything except search) never carry filter fields.
type ParsedQuery struct {
	Command   Command      `json:"command"`
	Trade     Trade        `json:"trade,omitempty"`
	ZipCode   string       `json:"zip_code,omitempty"`
	MinPrice  *int         `json:"min_price,omitempty"`
	MaxPrice  *int         `json:"max_price,omitempty"`
	City      string       `json:"city,omitempty"`
	Urgency   QueryUrgency `json:"urgency,omitempty"`
	JobNumber int          `json:"job_number,omitempty"` // 1-based, claim only
}

// HasFilters returns true when at least one search filter was extracted.
func (q ParsedQuery) HasFilters() bool {
	return q.Trade != "" || q.ZipCode != "" || q.MinPrice != nil || q.MaxPrice != nil ||
		q.City != "" || q.Urgency != ""
}
