package handlers

import (
	"context"
	"net/http"

	"github.com/mvaidya/cricstats/cache"
	"github.com/mvaidya/cricstats/cricket"
)

// PlayerProfile is a batter's career summary plus every innings, highest
// first.
type PlayerProfile struct {
	Player     string                   `json:"player"`
	Innings    int                      `json:"innings"`
	Runs       int                      `json:"runs"`
	Balls      int                      `json:"balls"`
	Fours      int                      `json:"fours"`
	Sixes      int                      `json:"sixes"`
	Dismissals int                      `json:"dismissals"`
	Average    float64                  `json:"average"`
	StrikeRate float64                  `json:"strike_rate"`
	ByInnings  []cricket.InningsBatting `json:"by_innings"`
}

// PlayerProfileHandler builds a batter's profile from the raw deliveries via
// the in-process innings aggregator.
func PlayerProfileHandler(env Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player := r.PathValue("player")
		if player == "" {
			writeJSONError(w, "player is required", http.StatusBadRequest)
			return
		}

		key := cache.Key("player_profile", player)
		profile, err := fetchCached(r.Context(), env, key, func(ctx context.Context) (PlayerProfile, error) {
			return buildPlayerProfile(ctx, env, player)
		})
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}
		respondJSON(w, env.Logger, profile)
	}
}

func buildPlayerProfile(ctx context.Context, env Env, player string) (PlayerProfile, error) {
	ds, err := env.Store.BatterDeliveries(ctx, player)
	if err != nil {
		return PlayerProfile{}, err
	}

	p := PlayerProfile{Player: player, ByInnings: cricket.BattingInningsTotals(ds)}
	for _, ib := range p.ByInnings {
		p.Innings++
		p.Runs += ib.Runs
		p.Balls += ib.Balls
		p.Fours += ib.Fours
		p.Sixes += ib.Sixes
		if ib.Dismissed {
			p.Dismissals++
		}
	}
	p.Average = cricket.BattingAverage(p.Runs, p.Dismissals)
	p.StrikeRate = cricket.StrikeRate(p.Runs, p.Balls)
	return p, nil
}
