package handlers

import (
	"net/http"

	"github.com/mvaidya/cricstats/cache"
	"github.com/mvaidya/cricstats/cricket"
)

// TeamsHandler lists the team reference rows.
func TeamsHandler(env Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := cache.Key("teams")
		teams, err := fetchCached(r.Context(), env, key, env.Store.Teams)
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		if teams == nil {
			teams = []cricket.Team{}
		}
		respondJSON(w, env.Logger, teams)
	}
}
