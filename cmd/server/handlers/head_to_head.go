package handlers

import (
	"context"
	"net/http"

	"github.com/mvaidya/cricstats/cache"
	"github.com/mvaidya/cricstats/cricket"
)

// HeadToHeadHandler compares two named teams. ?team_a= and ?team_b= are
// required; ?season= narrows the window.
func HeadToHeadHandler(env Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamA := r.URL.Query().Get("team_a")
		teamB := r.URL.Query().Get("team_b")
		if teamA == "" || teamB == "" {
			writeJSONError(w, "team_a and team_b are required", http.StatusBadRequest)
			return
		}
		if teamA == teamB {
			writeJSONError(w, "team_a and team_b must differ", http.StatusBadRequest)
			return
		}
		f := cricket.Filter{Team: teamA, Opponent: teamB}
		var err error
		if f.Season, err = intParam(r, "season"); err != nil {
			writeError(w, env.Logger, err)
			return
		}
		if err := f.Validate(); err != nil {
			writeError(w, env.Logger, err)
			return
		}

		key := cache.Key("head_to_head", f.CacheKey())
		h2h, err := fetchCached(r.Context(), env, key, func(ctx context.Context) (cricket.HeadToHead, error) {
			return env.Store.HeadToHead(ctx, teamA, teamB, f.Season)
		})
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		respondJSON(w, env.Logger, h2h)
	}
}
