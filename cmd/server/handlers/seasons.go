package handlers

import (
	"net/http"

	"github.com/mvaidya/cricstats/cache"
	"github.com/mvaidya/cricstats/cricket"
)

// SeasonsHandler reports the per-season overview rows.
func SeasonsHandler(env Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := cache.Key("seasons")
		ss, err := fetchCached(r.Context(), env, key, env.Store.SeasonSummaries)
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		if ss == nil {
			ss = []cricket.SeasonSummary{}
		}
		respondJSON(w, env.Logger, ss)
	}
}
