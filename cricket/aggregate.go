package cricket

import (
	"sort"

	"github.com/mvaidya/cricstats/internal/overs"
)

// ComputeRecord aggregates a team's win/loss record over the given matches.
// Matches without a recorded winner count as played but are excluded from
// the win percentage on both sides of the division.
func ComputeRecord(matches []Match, team string) Record {
	rec := Record{Team: team}
	for _, m := range matches {
		if m.Team1 != team && m.Team2 != team {
			continue
		}
		rec.MatchesPlayed++
		switch {
		case m.Winner == "":
			rec.NoResults++
		case m.Winner == team:
			rec.Wins++
		default:
			rec.Losses++
		}
	}
	rec.WinPct = WinPct(rec.Wins, rec.Wins+rec.Losses)
	return rec
}

// ComputeHeadToHead restricts the record to matches contested between a and b.
// The pairing is order-independent: {team1, team2} must equal {a, b}.
func ComputeHeadToHead(matches []Match, a, b string) HeadToHead {
	h := HeadToHead{TeamA: a, TeamB: b}
	for _, m := range matches {
		if !samePairing(m, a, b) {
			continue
		}
		h.Matches++
		switch m.Winner {
		case "":
			h.NoResults++
		case a:
			h.AWins++
		case b:
			h.BWins++
		}
	}
	decisive := h.AWins + h.BWins
	h.AWinPct = WinPct(h.AWins, decisive)
	h.BWinPct = WinPct(h.BWins, decisive)
	return h
}

func samePairing(m Match, a, b string) bool {
	return (m.Team1 == a && m.Team2 == b) || (m.Team1 == b && m.Team2 == a)
}

// BattedFirst reports whether team batted first in m, derived from the toss:
// the toss winner bats first iff it chose to bat.
func BattedFirst(m Match, team string) bool {
	if m.TossWinner == team {
		return m.TossDecision == "bat"
	}
	return m.TossDecision == "field"
}

// ComputeChaseDefend splits a team's record into batted-first (defend) and
// batted-second (chase) buckets. No-result matches are excluded entirely.
func ComputeChaseDefend(matches []Match, team string) ChaseDefend {
	cd := ChaseDefend{Team: team}
	for _, m := range matches {
		if m.Team1 != team && m.Team2 != team {
			continue
		}
		if m.Winner == "" {
			continue
		}
		won := m.Winner == team
		if BattedFirst(m, team) {
			cd.DefendMatches++
			if won {
				cd.DefendWins++
			}
		} else {
			cd.ChaseMatches++
			if won {
				cd.ChaseWins++
			}
		}
	}
	cd.DefendWinPct = WinPct(cd.DefendWins, cd.DefendMatches)
	cd.ChaseWinPct = WinPct(cd.ChaseWins, cd.ChaseMatches)
	return cd
}

type inningsKey struct {
	matchID int
	innings int
	player  string
}

// BattingInningsTotals groups deliveries by (match, innings, batter) and sums
// per-innings batting figures. This intermediate grain is what makes
// "highest score" style leaderboards correct: aggregating straight to the
// player level conflates career totals with single-innings records.
func BattingInningsTotals(ds []Delivery) []InningsBatting {
	byInnings := map[inningsKey]*InningsBatting{}
	for _, d := range ds {
		if d.Batter == "" {
			continue
		}
		k := inningsKey{d.MatchID, d.Innings, d.Batter}
		ib, ok := byInnings[k]
		if !ok {
			ib = &InningsBatting{MatchID: d.MatchID, Innings: d.Innings, Batter: d.Batter}
			byInnings[k] = ib
		}
		ib.Runs += d.BatterRuns
		if d.Legal() {
			ib.Balls++
		}
		switch d.BatterRuns {
		case 4:
			ib.Fours++
		case 6:
			ib.Sixes++
		}
		if d.Wicket && d.PlayerDismissed == d.Batter {
			ib.Dismissed = true
		}
	}

	out := make([]InningsBatting, 0, len(byInnings))
	for _, ib := range byInnings {
		ib.StrikeRate = StrikeRate(ib.Runs, ib.Balls)
		out = append(out, *ib)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Runs != out[j].Runs {
			return out[i].Runs > out[j].Runs
		}
		if out[i].MatchID != out[j].MatchID {
			return out[i].MatchID < out[j].MatchID
		}
		if out[i].Innings != out[j].Innings {
			return out[i].Innings < out[j].Innings
		}
		return out[i].Batter < out[j].Batter
	})
	return out
}

// BowlingInningsTotals groups deliveries by (match, innings, bowler). Wickets
// count only bowler-credited dismissals, runs conceded only runs chargeable
// to the bowler, balls only legal deliveries.
func BowlingInningsTotals(ds []Delivery) []InningsBowling {
	byInnings := map[inningsKey]*InningsBowling{}
	for _, d := range ds {
		if d.Bowler == "" {
			continue
		}
		k := inningsKey{d.MatchID, d.Innings, d.Bowler}
		ib, ok := byInnings[k]
		if !ok {
			ib = &InningsBowling{MatchID: d.MatchID, Innings: d.Innings, Bowler: d.Bowler}
			byInnings[k] = ib
		}
		if d.CreditsBowler() {
			ib.Wickets++
		}
		ib.RunsConceded += d.BowlerRuns()
		if d.Legal() {
			ib.Balls++
		}
	}

	out := make([]InningsBowling, 0, len(byInnings))
	for _, ib := range byInnings {
		ib.Economy = Economy(ib.RunsConceded, ib.Balls)
		out = append(out, *ib)
	}
	// Best figures first: most wickets, then fewest runs conceded.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wickets != out[j].Wickets {
			return out[i].Wickets > out[j].Wickets
		}
		if out[i].RunsConceded != out[j].RunsConceded {
			return out[i].RunsConceded < out[j].RunsConceded
		}
		if out[i].MatchID != out[j].MatchID {
			return out[i].MatchID < out[j].MatchID
		}
		if out[i].Innings != out[j].Innings {
			return out[i].Innings < out[j].Innings
		}
		return out[i].Bowler < out[j].Bowler
	})
	return out
}

// ComputePhaseSplit buckets a batting side's deliveries into powerplay and
// death overs and reports the scoring rate and wickets lost in each.
func ComputePhaseSplit(ds []Delivery, team string) PhaseSplit {
	ps := PhaseSplit{Team: team}
	for _, d := range ds {
		if d.BattingTeam != team {
			continue
		}
		var pn *PhaseNumbers
		switch overs.Classify(d.Over) {
		case overs.Powerplay:
			pn = &ps.Powerplay
		case overs.Death:
			pn = &ps.Death
		default:
			continue
		}
		pn.Balls++
		pn.Runs += d.TotalRuns
		if d.Wicket {
			pn.Wickets++
		}
	}
	ps.Powerplay.RunsPerBall = RunsPerBall(ps.Powerplay.Runs, ps.Powerplay.Balls)
	ps.Death.RunsPerBall = RunsPerBall(ps.Death.Runs, ps.Death.Balls)
	return ps
}
