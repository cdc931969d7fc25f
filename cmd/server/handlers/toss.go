package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mvaidya/cricstats/cache"
	"github.com/mvaidya/cricstats/cricket"
)

// TossHandler reports how often winning the toss translated into winning the
// match, split by the toss decision.
func TossHandler(env Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season, err := intParam(r, "season")
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		key := cache.Key("toss", strconv.Itoa(season))
		ts, err := fetchCached(r.Context(), env, key, func(ctx context.Context) ([]cricket.TossBreakdown, error) {
			return env.Store.TossBreakdown(ctx, season)
		})
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		if ts == nil {
			ts = []cricket.TossBreakdown{}
		}
		respondJSON(w, env.Logger, ts)
	}
}
