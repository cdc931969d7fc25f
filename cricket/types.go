package cricket

// Team is static reference data loaded once from the teams table.
type Team struct {
	Name      string `json:"team_name"`
	ShortName string `json:"short_name"`
	Active    bool   `json:"is_active"`
}

// Match is one completed fixture. Winner is empty when the match had no
// result; at most one of WinByRuns/WinByWickets is non-zero.
type Match struct {
	ID            int    `json:"match_id"`
	Season        int    `json:"season"`
	Date          string `json:"match_date"`
	City          string `json:"city"`
	Venue         string `json:"venue"`
	Team1         string `json:"team1"`
	Team2         string `json:"team2"`
	TossWinner    string `json:"toss_winner"`
	TossDecision  string `json:"toss_decision"`
	Winner        string `json:"winner,omitempty"`
	WinByRuns     int    `json:"win_by_runs,omitempty"`
	WinByWickets  int    `json:"win_by_wickets,omitempty"`
	PlayerOfMatch string `json:"player_of_match,omitempty"`
}

// Delivery is one ball bowled. Overs are 1-based. The extras breakdown
// carries run counts, not flags: a ball is a wide iff WideRuns > 0.
type Delivery struct {
	MatchID         int    `json:"match_id"`
	Innings         int    `json:"innings"`
	Over            int    `json:"over"`
	Ball            int    `json:"ball"`
	BattingTeam     string `json:"batting_team"`
	BowlingTeam     string `json:"bowling_team"`
	Batter          string `json:"batter"`
	NonStriker      string `json:"non_striker"`
	Bowler          string `json:"bowler"`
	BatterRuns      int    `json:"batter_runs"`
	WideRuns        int    `json:"wide_runs"`
	NoBallRuns      int    `json:"noball_runs"`
	ByeRuns         int    `json:"bye_runs"`
	LegByeRuns      int    `json:"legbye_runs"`
	PenaltyRuns     int    `json:"penalty_runs"`
	TotalRuns       int    `json:"total_runs"`
	Wicket          bool   `json:"is_wicket"`
	PlayerDismissed string `json:"player_dismissed,omitempty"`
	WicketKind      string `json:"wicket_kind,omitempty"`
	Fielder         string `json:"fielder,omitempty"`
}

// Record is a team's win/loss record over a filtered set of matches.
// WinPct counts only decisive matches in both numerator and denominator.
type Record struct {
	Team          string  `json:"team"`
	MatchesPlayed int     `json:"matches_played"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	NoResults     int     `json:"no_results"`
	WinPct        float64 `json:"win_pct"`
}

// HeadToHead is the record between two named teams over the matches they
// contested against each other.
type HeadToHead struct {
	TeamA     string  `json:"team_a"`
	TeamB     string  `json:"team_b"`
	Matches   int     `json:"matches"`
	AWins     int     `json:"team_a_wins"`
	BWins     int     `json:"team_b_wins"`
	NoResults int     `json:"no_results"`
	AWinPct   float64 `json:"team_a_win_pct"`
	BWinPct   float64 `json:"team_b_win_pct"`
}

// InningsBatting is one batter's totals within a single innings of a single
// match. Balls counts legal deliveries only.
type InningsBatting struct {
	MatchID    int     `json:"match_id"`
	Innings    int     `json:"innings"`
	Batter     string  `json:"batter"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	Dismissed  bool    `json:"dismissed"`
	StrikeRate float64 `json:"strike_rate"`
}

// InningsBowling is one bowler's figures within a single innings. Wickets
// counts bowler-credited dismissals only; RunsConceded excludes byes and
// leg-byes.
type InningsBowling struct {
	MatchID      int     `json:"match_id"`
	Innings      int     `json:"innings"`
	Bowler       string  `json:"bowler"`
	Wickets      int     `json:"wickets"`
	RunsConceded int     `json:"runs_conceded"`
	Balls        int     `json:"balls"`
	Economy      float64 `json:"economy"`
}

// BattingCareer is a batter's cumulative totals across the filtered match set.
type BattingCareer struct {
	Player       string  `json:"player"`
	Matches      int     `json:"matches"`
	Innings      int     `json:"innings"`
	Runs         int     `json:"runs"`
	Balls        int     `json:"balls"`
	Fours        int     `json:"fours"`
	Sixes        int     `json:"sixes"`
	HighestScore int     `json:"highest_score"`
	Average      float64 `json:"average"`
	StrikeRate   float64 `json:"strike_rate"`
}

// BowlingCareer is a bowler's cumulative figures across the filtered match set.
type BowlingCareer struct {
	Player       string  `json:"player"`
	Matches      int     `json:"matches"`
	Balls        int     `json:"balls"`
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`
	Economy      float64 `json:"economy"`
	Average      float64 `json:"average"`
	StrikeRate   float64 `json:"strike_rate"`
}

// PhaseNumbers aggregates deliveries falling into one phase of an innings.
type PhaseNumbers struct {
	Balls       int     `json:"balls"`
	Runs        int     `json:"runs"`
	Wickets     int     `json:"wickets"`
	RunsPerBall float64 `json:"runs_per_ball"`
}

// PhaseSplit compares a team's powerplay and death-over scoring.
type PhaseSplit struct {
	Team      string       `json:"team"`
	Powerplay PhaseNumbers `json:"powerplay"`
	Death     PhaseNumbers `json:"death"`
}

// ChaseDefend splits a team's record by whether it batted first.
type ChaseDefend struct {
	Team          string  `json:"team"`
	DefendMatches int     `json:"defend_matches"`
	DefendWins    int     `json:"defend_wins"`
	DefendWinPct  float64 `json:"defend_win_pct"`
	ChaseMatches  int     `json:"chase_matches"`
	ChaseWins     int     `json:"chase_wins"`
	ChaseWinPct   float64 `json:"chase_win_pct"`
}

// SeasonTotals is the input to the approximate net-run-rate calculation:
// runs scored and conceded by a team over a season's matches.
type SeasonTotals struct {
	Team         string `json:"team"`
	Season       int    `json:"season"`
	Matches      int    `json:"matches"`
	RunsScored   int    `json:"runs_scored"`
	RunsConceded int    `json:"runs_conceded"`
}

// SeasonSummary is one row of the per-season overview.
type SeasonSummary struct {
	Season              int     `json:"season"`
	Matches             int     `json:"matches"`
	Teams               int     `json:"teams"`
	TotalRuns           int     `json:"total_runs"`
	AvgFirstInningsRuns float64 `json:"avg_first_innings_runs"`
}

// TossBreakdown reports how often the toss winner went on to win the match,
// split by the decision taken. No-result matches count as toss wins but are
// excluded from the win percentage on both sides.
type TossBreakdown struct {
	Decision  string  `json:"toss_decision"`
	TossWins  int     `json:"toss_wins"`
	MatchWins int     `json:"match_wins"`
	NoResults int     `json:"no_results"`
	WinPct    float64 `json:"win_pct"`
}

// VenueCount is one row of the matches-per-venue breakdown.
type VenueCount struct {
	Venue   string `json:"venue"`
	City    string `json:"city"`
	Matches int    `json:"matches"`
}
