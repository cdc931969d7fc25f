package cricket

import "fmt"

// Season bounds considered plausible for the dataset. Zero means all seasons.
const (
	firstSeason = 2008
	lastSeason  = 2100
)

// Filter is the typed query filter passed to every store operation. All
// values reach the store as bound parameters, never interpolated into SQL.
type Filter struct {
	Team       string
	Opponent   string
	Player     string
	Season     int
	MinMatches int
	Limit      int
}

// Validate rejects malformed or contradictory filters before any query runs.
func (f Filter) Validate() error {
	if f.Season != 0 && (f.Season < firstSeason || f.Season > lastSeason) {
		return &ValidationError{Field: "season", Reason: fmt.Sprintf("%d is outside %d-%d", f.Season, firstSeason, lastSeason)}
	}
	if f.MinMatches < 0 {
		return &ValidationError{Field: "min_matches", Reason: "must not be negative"}
	}
	if f.Limit < 0 {
		return &ValidationError{Field: "limit", Reason: "must not be negative"}
	}
	if f.Opponent != "" && f.Team == "" {
		return &ValidationError{Field: "opponent", Reason: "requires a team"}
	}
	if f.Opponent != "" && f.Opponent == f.Team {
		return &ValidationError{Field: "opponent", Reason: "must differ from team"}
	}
	return nil
}

// WithDefaults fills in the leaderboard defaults used across handlers.
func (f Filter) WithDefaults() Filter {
	if f.Limit == 0 {
		f.Limit = 15
	}
	return f
}

// CacheKey renders the full filter tuple. Every field participates so that
// two distinct filters can never share a cache entry.
func (f Filter) CacheKey() string {
	return fmt.Sprintf("t=%s|o=%s|p=%s|s=%d|mm=%d|l=%d",
		f.Team, f.Opponent, f.Player, f.Season, f.MinMatches, f.Limit)
}
