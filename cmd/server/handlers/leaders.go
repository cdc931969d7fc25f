package handlers

import (
	"context"
	"net/http"

	"github.com/mvaidya/cricstats/cache"
	"github.com/mvaidya/cricstats/cricket"
)

// BattingLeadersHandler lists career batting leaderboards. ?by=runs (default)
// ranks total runs; ?by=strike_rate ranks scoring rate among qualified
// batters.
func BattingLeadersHandler(env Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := parseFilter(r)
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		by := r.URL.Query().Get("by")

		var compute func(context.Context) ([]cricket.BattingCareer, error)
		switch by {
		case "", "runs":
			by = "runs"
			compute = func(ctx context.Context) ([]cricket.BattingCareer, error) {
				return env.Store.TopRunScorers(ctx, f)
			}
		case "strike_rate":
			compute = func(ctx context.Context) ([]cricket.BattingCareer, error) {
				return env.Store.BestStrikeRates(ctx, f)
			}
		default:
			writeJSONError(w, "by must be runs or strike_rate", http.StatusBadRequest)
			return
		}

		key := cache.Key("leaders_batting", by, f.CacheKey())
		cs, err := fetchCached(r.Context(), env, key, compute)
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		if cs == nil {
			cs = []cricket.BattingCareer{}
		}
		respondJSON(w, env.Logger, cs)
	}
}

// BowlingLeadersHandler lists career bowling leaderboards. ?by=wickets
// (default) or ?by=economy among qualified bowlers.
func BowlingLeadersHandler(env Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := parseFilter(r)
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		by := r.URL.Query().Get("by")

		var compute func(context.Context) ([]cricket.BowlingCareer, error)
		switch by {
		case "", "wickets":
			by = "wickets"
			compute = func(ctx context.Context) ([]cricket.BowlingCareer, error) {
				return env.Store.TopWicketTakers(ctx, f)
			}
		case "economy":
			compute = func(ctx context.Context) ([]cricket.BowlingCareer, error) {
				return env.Store.BestEconomyRates(ctx, f)
			}
		default:
			writeJSONError(w, "by must be wickets or economy", http.StatusBadRequest)
			return
		}

		key := cache.Key("leaders_bowling", by, f.CacheKey())
		cs, err := fetchCached(r.Context(), env, key, compute)
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		if cs == nil {
			cs = []cricket.BowlingCareer{}
		}
		respondJSON(w, env.Logger, cs)
	}
}
