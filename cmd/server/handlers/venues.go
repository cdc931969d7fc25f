package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mvaidya/cricstats/cache"
	"github.com/mvaidya/cricstats/cricket"
)

// VenuesHandler reports matches hosted per venue, busiest first.
func VenuesHandler(env Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := intParam(r, "limit")
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		if limit <= 0 {
			limit = 10
		}
		key := cache.Key("venues", strconv.Itoa(limit))
		vs, err := fetchCached(r.Context(), env, key, func(ctx context.Context) ([]cricket.VenueCount, error) {
			return env.Store.VenueBreakdown(ctx, limit)
		})
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		if vs == nil {
			vs = []cricket.VenueCount{}
		}
		respondJSON(w, env.Logger, vs)
	}
}
