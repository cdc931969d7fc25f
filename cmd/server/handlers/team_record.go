package handlers

import (
	"context"
	"net/http"

	"github.com/mvaidya/cricstats/cache"
	"github.com/mvaidya/cricstats/cricket"
)

// TeamRecordHandler reports one team's win/loss record, optionally for a
// single season or against a single opponent.
func TeamRecordHandler(env Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := parseFilter(r)
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		if f.Team == "" {
			writeJSONError(w, "team is required", http.StatusBadRequest)
			return
		}

		if f.Opponent != "" {
			key := cache.Key("head_to_head", f.CacheKey())
			h2h, err := fetchCached(r.Context(), env, key, func(ctx context.Context) (cricket.HeadToHead, error) {
				return env.Store.HeadToHead(ctx, f.Team, f.Opponent, f.Season)
			})
			if err != nil {
				writeError(w, env.Logger, err)
				return
			}
			respondJSON(w, env.Logger, h2h)
			return
		}

		key := cache.Key("team_record", f.CacheKey())
		rec, err := fetchCached(r.Context(), env, key, func(ctx context.Context) (cricket.Record, error) {
			return env.Store.TeamRecord(ctx, f)
		})
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		respondJSON(w, env.Logger, rec)
	}
}

// StandingsHandler reports every team's record for a season (or all time).
func StandingsHandler(env Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := parseFilter(r)
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		key := cache.Key("standings", f.CacheKey())
		recs, err := fetchCached(r.Context(), env, key, func(ctx context.Context) ([]cricket.Record, error) {
			return env.Store.AllTeamRecords(ctx, f.Season)
		})
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		if recs == nil {
			recs = []cricket.Record{}
		}
		respondJSON(w, env.Logger, recs)
	}
}
