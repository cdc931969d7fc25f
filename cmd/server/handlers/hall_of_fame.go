package handlers

import (
	"context"
	"net/http"

	"github.com/mvaidya/cricstats/cache"
	"github.com/mvaidya/cricstats/cricket"
)

// BattingHallOfFameHandler lists the highest single-innings scores. The
// single-innings grain is the point: career totals live under /leaders.
func BattingHallOfFameHandler(env Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := parseFilter(r)
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		key := cache.Key("hof_batting", f.CacheKey())
		is, err := fetchCached(r.Context(), env, key, func(ctx context.Context) ([]cricket.InningsBatting, error) {
			return env.Store.HighestInningsScores(ctx, f)
		})
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		if is == nil {
			is = []cricket.InningsBatting{}
		}
		respondJSON(w, env.Logger, is)
	}
}

// BowlingHallOfFameHandler lists the best single-innings bowling figures.
func BowlingHallOfFameHandler(env Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := parseFilter(r)
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		key := cache.Key("hof_bowling", f.CacheKey())
		is, err := fetchCached(r.Context(), env, key, func(ctx context.Context) ([]cricket.InningsBowling, error) {
			return env.Store.BestBowlingFigures(ctx, f)
		})
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		if is == nil {
			is = []cricket.InningsBowling{}
		}
		respondJSON(w, env.Logger, is)
	}
}
