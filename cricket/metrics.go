package cricket

import "math"

// Every calculator in this file is a pure function with an explicit
// divide-by-zero rule: an empty denominator yields 0, never NaN or an error.

// StrikeRate is runs per 100 legal balls faced.
func StrikeRate(runs, legalBalls int) float64 {
	if legalBalls == 0 {
		return 0
	}
	return round1(100 * float64(runs) / float64(legalBalls))
}

// Economy is runs conceded per over (6 legal balls).
func Economy(runsConceded, legalBalls int) float64 {
	if legalBalls == 0 {
		return 0
	}
	return round2(6 * float64(runsConceded) / float64(legalBalls))
}

// NetRunRate is the simplified per-match approximation used by the source
// dataset's dashboard: (scored - conceded) / matches / 20. It is not the
// official overs-weighted ICC formula and is kept as-is deliberately.
func NetRunRate(runsScored, runsConceded, matches int) float64 {
	if matches == 0 {
		return 0
	}
	return round3(float64(runsScored-runsConceded) / float64(matches) / 20)
}

// WinPct is wins per 100 decisive matches.
func WinPct(wins, decisive int) float64 {
	if decisive == 0 {
		return 0
	}
	return round1(100 * float64(wins) / float64(decisive))
}

// RunsPerBall is the scoring rate used for phase splits.
func RunsPerBall(runs, balls int) float64 {
	if balls == 0 {
		return 0
	}
	return round2(float64(runs) / float64(balls))
}

// BattingAverage is runs per dismissal. A batter never dismissed in the
// sample has no average; report 0 rather than infinity.
func BattingAverage(runs, dismissals int) float64 {
	if dismissals == 0 {
		return 0
	}
	return round1(float64(runs) / float64(dismissals))
}

// BowlingAverage is runs conceded per wicket taken.
func BowlingAverage(runsConceded, wickets int) float64 {
	if wickets == 0 {
		return 0
	}
	return round1(float64(runsConceded) / float64(wickets))
}

// BowlingStrikeRate is legal balls bowled per wicket taken.
func BowlingStrikeRate(legalBalls, wickets int) float64 {
	if wickets == 0 {
		return 0
	}
	return round1(float64(legalBalls) / float64(wickets))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
