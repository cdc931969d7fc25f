package handlers

import (
	"context"
	"net/http"

	"github.com/mvaidya/cricstats/cache"
	"github.com/mvaidya/cricstats/cricket"
)

// TeamSplits is the combined situational view for one team: phase scoring,
// chase/defend record and the approximate net run rate per season.
type TeamSplits struct {
	Team        string              `json:"team"`
	Season      int                 `json:"season,omitempty"`
	Phases      cricket.PhaseSplit  `json:"phases"`
	ChaseDefend cricket.ChaseDefend `json:"chase_defend"`
	NetRunRates []SeasonNetRunRate  `json:"net_run_rates"`
}

type SeasonNetRunRate struct {
	Season       int     `json:"season"`
	Matches      int     `json:"matches"`
	RunsScored   int     `json:"runs_scored"`
	RunsConceded int     `json:"runs_conceded"`
	NetRunRate   float64 `json:"net_run_rate"`
}

// TeamSplitsHandler combines the SQL phase aggregation with the pure
// match-level chase/defend and NRR calculators.
func TeamSplitsHandler(env Env) http.HandlerFunc {
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

		key := cache.Key("team_splits", f.CacheKey())
		splits, err := fetchCached(r.Context(), env, key, func(ctx context.Context) (TeamSplits, error) {
			return buildTeamSplits(ctx, env, f)
		})
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		respondJSON(w, env.Logger, splits)
	}
}

func buildTeamSplits(ctx context.Context, env Env, f cricket.Filter) (TeamSplits, error) {
	out := TeamSplits{Team: f.Team, Season: f.Season, NetRunRates: []SeasonNetRunRate{}}

	phases, err := env.Store.PhaseSplits(ctx, f)
	if err != nil {
		return out, err
	}
	if len(phases) > 0 {
		out.Phases = phases[0]
	} else {
		out.Phases = cricket.PhaseSplit{Team: f.Team}
	}

	matches, err := env.Store.Matches(ctx, f)
	if err != nil {
		return out, err
	}
	out.ChaseDefend = cricket.ComputeChaseDefend(matches, f.Team)

	totals, err := env.Store.TeamSeasonTotals(ctx, f)
	if err != nil {
		return out, err
	}
	for _, t := range totals {
		out.NetRunRates = append(out.NetRunRates, SeasonNetRunRate{
			Season:       t.Season,
			Matches:      t.Matches,
			RunsScored:   t.RunsScored,
			RunsConceded: t.RunsConceded,
			NetRunRate:   cricket.NetRunRate(t.RunsScored, t.RunsConceded, t.Matches),
		})
	}
	return out, nil
}
