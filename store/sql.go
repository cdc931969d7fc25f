package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mvaidya/cricstats/cricket"
	"github.com/mvaidya/cricstats/internal/overs"
)

// Qualification thresholds for the rate leaderboards, matching the dataset's
// established cutoffs: a strike-rate entry needs a real sample of balls faced,
// an economy entry a real sample of overs bowled.
const (
	minBallsFaced  = 125
	minBallsBowled = 300
)

// nonBowlerKinds lists dismissals that never credit the bowler. Mirrors
// cricket.Delivery.CreditsBowler for the SQL path.
const nonBowlerKinds = `('run out','retired hurt','retired out','obstructing the field','handled the ball','timed out')`

func (s *DB) Teams(ctx context.Context) ([]cricket.Team, error) {
	rows, err := s.query(ctx, "teams",
		`SELECT team_name, short_name, is_active FROM teams ORDER BY team_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []cricket.Team
	for rows.Next() {
		var t cricket.Team
		if err := rows.Scan(&t.Name, &t.ShortName, &t.Active); err != nil {
			return nil, &cricket.StoreError{Op: "teams", Err: err}
		}
		teams = append(teams, t)
	}
	return teams, rowsErr("teams", rows)
}

func (s *DB) Matches(ctx context.Context, f cricket.Filter) ([]cricket.Match, error) {
	const q = `
		SELECT match_id, season, match_date, COALESCE(city,''), venue,
		       team1, team2, toss_winner, toss_decision,
		       COALESCE(winner,''), COALESCE(win_by_runs,0), COALESCE(win_by_wickets,0),
		       COALESCE(player_of_match,'')
		FROM matches
		WHERE (? = '' OR team1 = ? OR team2 = ?)
		  AND (? = '' OR team1 = ? OR team2 = ?)
		  AND (? = 0 OR season = ?)
		ORDER BY match_date, match_id`
	rows, err := s.query(ctx, "matches", q,
		f.Team, f.Team, f.Team,
		f.Opponent, f.Opponent, f.Opponent,
		f.Season, f.Season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ms []cricket.Match
	for rows.Next() {
		var m cricket.Match
		if err := rows.Scan(&m.ID, &m.Season, &m.Date, &m.City, &m.Venue,
			&m.Team1, &m.Team2, &m.TossWinner, &m.TossDecision,
			&m.Winner, &m.WinByRuns, &m.WinByWickets, &m.PlayerOfMatch); err != nil {
			return nil, &cricket.StoreError{Op: "matches", Err: err}
		}
		ms = append(ms, m)
	}
	return ms, rowsErr("matches", rows)
}

func (s *DB) TeamRecord(ctx context.Context, f cricket.Filter) (cricket.Record, error) {
	const q = `
		SELECT COUNT(*),
		       SUM(CASE WHEN COALESCE(winner,'') = ? THEN 1 ELSE 0 END),
		       SUM(CASE WHEN COALESCE(winner,'') NOT IN ('', ?) THEN 1 ELSE 0 END),
		       SUM(CASE WHEN COALESCE(winner,'') = '' THEN 1 ELSE 0 END)
		FROM matches
		WHERE (team1 = ? OR team2 = ?) AND (? = 0 OR season = ?)`
	row := s.db.QueryRowContext(ctx, s.rebind(q),
		f.Team, f.Team, f.Team, f.Team, f.Season, f.Season)

	r := cricket.Record{Team: f.Team}
	var wins, losses, noResults sql.NullInt64
	if err := row.Scan(&r.MatchesPlayed, &wins, &losses, &noResults); err != nil {
		return cricket.Record{}, &cricket.StoreError{Op: "team record", Err: err}
	}
	r.Wins = int(wins.Int64)
	r.Losses = int(losses.Int64)
	r.NoResults = int(noResults.Int64)
	r.WinPct = cricket.WinPct(r.Wins, r.Wins+r.Losses)
	return r, nil
}

func (s *DB) AllTeamRecords(ctx context.Context, season int) ([]cricket.Record, error) {
	const q = `
		WITH appearances AS (
			SELECT team1 AS team, COALESCE(winner,'') AS winner
			FROM matches WHERE (? = 0 OR season = ?)
			UNION ALL
			SELECT team2 AS team, COALESCE(winner,'') AS winner
			FROM matches WHERE (? = 0 OR season = ?)
		)
		SELECT team, COUNT(*) AS played,
		       SUM(CASE WHEN winner = team THEN 1 ELSE 0 END) AS wins,
		       SUM(CASE WHEN winner NOT IN ('', team) THEN 1 ELSE 0 END) AS losses,
		       SUM(CASE WHEN winner = '' THEN 1 ELSE 0 END) AS no_results
		FROM appearances
		GROUP BY team
		ORDER BY wins DESC, team`
	rows, err := s.query(ctx, "all team records", q, season, season, season, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rs []cricket.Record
	for rows.Next() {
		var r cricket.Record
		if err := rows.Scan(&r.Team, &r.MatchesPlayed, &r.Wins, &r.Losses, &r.NoResults); err != nil {
			return nil, &cricket.StoreError{Op: "all team records", Err: err}
		}
		r.WinPct = cricket.WinPct(r.Wins, r.Wins+r.Losses)
		rs = append(rs, r)
	}
	return rs, rowsErr("all team records", rows)
}

func (s *DB) HeadToHead(ctx context.Context, teamA, teamB string, season int) (cricket.HeadToHead, error) {
	const q = `
		SELECT COUNT(*),
		       SUM(CASE WHEN COALESCE(winner,'') = ? THEN 1 ELSE 0 END),
		       SUM(CASE WHEN COALESCE(winner,'') = ? THEN 1 ELSE 0 END),
		       SUM(CASE WHEN COALESCE(winner,'') = '' THEN 1 ELSE 0 END)
		FROM matches
		WHERE ((team1 = ? AND team2 = ?) OR (team1 = ? AND team2 = ?))
		  AND (? = 0 OR season = ?)`
	row := s.db.QueryRowContext(ctx, s.rebind(q),
		teamA, teamB, teamA, teamB, teamB, teamA, season, season)

	h := cricket.HeadToHead{TeamA: teamA, TeamB: teamB}
	var aWins, bWins, noResults sql.NullInt64
	if err := row.Scan(&h.Matches, &aWins, &bWins, &noResults); err != nil {
		return cricket.HeadToHead{}, &cricket.StoreError{Op: "head to head", Err: err}
	}
	h.AWins = int(aWins.Int64)
	h.BWins = int(bWins.Int64)
	h.NoResults = int(noResults.Int64)
	decisive := h.AWins + h.BWins
	h.AWinPct = cricket.WinPct(h.AWins, decisive)
	h.BWinPct = cricket.WinPct(h.BWins, decisive)
	return h, nil
}

func (s *DB) SeasonSummaries(ctx context.Context) ([]cricket.SeasonSummary, error) {
	const q = `
		WITH per_match AS (
			SELECT m.match_id, m.season,
			       SUM(d.total_runs) AS runs,
			       SUM(CASE WHEN d.innings = 1 THEN d.total_runs ELSE 0 END) AS first_innings_runs
			FROM matches m
			JOIN deliveries d ON d.match_id = m.match_id
			GROUP BY m.match_id, m.season
		), team_counts AS (
			SELECT season, COUNT(DISTINCT team) AS teams FROM (
				SELECT season, team1 AS team FROM matches
				UNION
				SELECT season, team2 AS team FROM matches
			) AS u
			GROUP BY season
		)
		SELECT p.season, COUNT(*) AS matches, tc.teams,
		       SUM(p.runs) AS total_runs,
		       AVG(p.first_innings_runs) AS avg_first_innings
		FROM per_match p
		JOIN team_counts tc ON tc.season = p.season
		GROUP BY p.season, tc.teams
		ORDER BY p.season`
	rows, err := s.query(ctx, "season summaries", q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ss []cricket.SeasonSummary
	for rows.Next() {
		var sum cricket.SeasonSummary
		if err := rows.Scan(&sum.Season, &sum.Matches, &sum.Teams, &sum.TotalRuns, &sum.AvgFirstInningsRuns); err != nil {
			return nil, &cricket.StoreError{Op: "season summaries", Err: err}
		}
		ss = append(ss, sum)
	}
	return ss, rowsErr("season summaries", rows)
}

// battingInningsCTE subaggregates one row per (match, innings, batter). Every
// batting leaderboard builds on it; career-total shortcuts skip the innings
// level and mis-rank single-innings records.
const battingInningsCTE = `
	WITH per_innings AS (
		SELECT d.match_id, d.innings, d.batter,
		       SUM(d.batter_runs) AS runs,
		       SUM(CASE WHEN d.wide_runs = 0 AND d.noball_runs = 0 THEN 1 ELSE 0 END) AS balls,
		       SUM(CASE WHEN d.batter_runs = 4 THEN 1 ELSE 0 END) AS fours,
		       SUM(CASE WHEN d.batter_runs = 6 THEN 1 ELSE 0 END) AS sixes,
		       MAX(CASE WHEN d.is_wicket = 1 AND d.player_dismissed = d.batter THEN 1 ELSE 0 END) AS dismissed
		FROM deliveries d
		JOIN matches m ON m.match_id = d.match_id
		WHERE (? = 0 OR m.season = ?)
		GROUP BY d.match_id, d.innings, d.batter
	)`

func (s *DB) battingCareers(ctx context.Context, op, orderBy, having string, f cricket.Filter) ([]cricket.BattingCareer, error) {
	q := battingInningsCTE + `
	SELECT batter, COUNT(DISTINCT match_id) AS matches, COUNT(*) AS innings,
	       SUM(runs) AS total_runs, SUM(balls) AS total_balls,
	       SUM(fours) AS total_fours, SUM(sixes) AS total_sixes,
	       MAX(runs) AS highest, SUM(dismissed) AS dismissals
	FROM per_innings
	GROUP BY batter
	HAVING COUNT(DISTINCT match_id) >= ?` + having + `
	ORDER BY ` + orderBy + `
	LIMIT ?`
	rows, err := s.query(ctx, op, q, f.Season, f.Season, f.MinMatches, f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cs []cricket.BattingCareer
	for rows.Next() {
		var c cricket.BattingCareer
		var dismissals int
		if err := rows.Scan(&c.Player, &c.Matches, &c.Innings, &c.Runs, &c.Balls,
			&c.Fours, &c.Sixes, &c.HighestScore, &dismissals); err != nil {
			return nil, &cricket.StoreError{Op: op, Err: err}
		}
		c.Average = cricket.BattingAverage(c.Runs, dismissals)
		c.StrikeRate = cricket.StrikeRate(c.Runs, c.Balls)
		cs = append(cs, c)
	}
	return cs, rowsErr(op, rows)
}

func (s *DB) TopRunScorers(ctx context.Context, f cricket.Filter) ([]cricket.BattingCareer, error) {
	return s.battingCareers(ctx, "top run scorers",
		"total_runs DESC, batter", "", f)
}

func (s *DB) BestStrikeRates(ctx context.Context, f cricket.Filter) ([]cricket.BattingCareer, error) {
	having := fmt.Sprintf(" AND SUM(balls) >= %d", minBallsFaced)
	return s.battingCareers(ctx, "best strike rates",
		"(100.0 * SUM(runs) / SUM(balls)) DESC, batter", having, f)
}

// bowlingInningsCTE is the bowling counterpart: wicket credit and bowler-run
// accounting applied per ball before any grouping.
const bowlingInningsCTE = `
	WITH per_innings AS (
		SELECT d.match_id, d.innings, d.bowler,
		       SUM(CASE WHEN d.is_wicket = 1
		                 AND COALESCE(d.wicket_kind,'') NOT IN ` + nonBowlerKinds + `
		            THEN 1 ELSE 0 END) AS wickets,
		       SUM(d.batter_runs + d.wide_runs + d.noball_runs) AS runs_conceded,
		       SUM(CASE WHEN d.wide_runs = 0 AND d.noball_runs = 0 THEN 1 ELSE 0 END) AS balls
		FROM deliveries d
		JOIN matches m ON m.match_id = d.match_id
		WHERE (? = 0 OR m.season = ?)
		GROUP BY d.match_id, d.innings, d.bowler
	)`

func (s *DB) bowlingCareers(ctx context.Context, op, orderBy, having string, f cricket.Filter) ([]cricket.BowlingCareer, error) {
	q := bowlingInningsCTE + `
	SELECT bowler, COUNT(DISTINCT match_id) AS matches,
	       SUM(balls) AS total_balls, SUM(runs_conceded) AS total_runs,
	       SUM(wickets) AS total_wickets
	FROM per_innings
	GROUP BY bowler
	HAVING COUNT(DISTINCT match_id) >= ?` + having + `
	ORDER BY ` + orderBy + `
	LIMIT ?`
	rows, err := s.query(ctx, op, q, f.Season, f.Season, f.MinMatches, f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cs []cricket.BowlingCareer
	for rows.Next() {
		var c cricket.BowlingCareer
		if err := rows.Scan(&c.Player, &c.Matches, &c.Balls, &c.RunsConceded, &c.Wickets); err != nil {
			return nil, &cricket.StoreError{Op: op, Err: err}
		}
		c.Economy = cricket.Economy(c.RunsConceded, c.Balls)
		c.Average = cricket.BowlingAverage(c.RunsConceded, c.Wickets)
		c.StrikeRate = cricket.BowlingStrikeRate(c.Balls, c.Wickets)
		cs = append(cs, c)
	}
	return cs, rowsErr(op, rows)
}

func (s *DB) TopWicketTakers(ctx context.Context, f cricket.Filter) ([]cricket.BowlingCareer, error) {
	return s.bowlingCareers(ctx, "top wicket takers",
		"total_wickets DESC, total_runs ASC, bowler", "", f)
}

func (s *DB) BestEconomyRates(ctx context.Context, f cricket.Filter) ([]cricket.BowlingCareer, error) {
	having := fmt.Sprintf(" AND SUM(balls) >= %d", minBallsBowled)
	return s.bowlingCareers(ctx, "best economy rates",
		"(6.0 * SUM(runs_conceded) / SUM(balls)) ASC, bowler", having, f)
}

func (s *DB) HighestInningsScores(ctx context.Context, f cricket.Filter) ([]cricket.InningsBatting, error) {
	q := battingInningsCTE + `
	SELECT match_id, innings, batter, runs, balls, fours, sixes, dismissed
	FROM per_innings
	ORDER BY runs DESC, balls ASC, match_id, innings, batter
	LIMIT ?`
	rows, err := s.query(ctx, "highest innings scores", q, f.Season, f.Season, f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var is []cricket.InningsBatting
	for rows.Next() {
		var i cricket.InningsBatting
		if err := rows.Scan(&i.MatchID, &i.Innings, &i.Batter, &i.Runs, &i.Balls,
			&i.Fours, &i.Sixes, &i.Dismissed); err != nil {
			return nil, &cricket.StoreError{Op: "highest innings scores", Err: err}
		}
		i.StrikeRate = cricket.StrikeRate(i.Runs, i.Balls)
		is = append(is, i)
	}
	return is, rowsErr("highest innings scores", rows)
}

func (s *DB) BestBowlingFigures(ctx context.Context, f cricket.Filter) ([]cricket.InningsBowling, error) {
	q := bowlingInningsCTE + `
	SELECT match_id, innings, bowler, wickets, runs_conceded, balls
	FROM per_innings
	ORDER BY wickets DESC, runs_conceded ASC, match_id, innings, bowler
	LIMIT ?`
	rows, err := s.query(ctx, "best bowling figures", q, f.Season, f.Season, f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var is []cricket.InningsBowling
	for rows.Next() {
		var i cricket.InningsBowling
		if err := rows.Scan(&i.MatchID, &i.Innings, &i.Bowler, &i.Wickets, &i.RunsConceded, &i.Balls); err != nil {
			return nil, &cricket.StoreError{Op: "best bowling figures", Err: err}
		}
		i.Economy = cricket.Economy(i.RunsConceded, i.Balls)
		is = append(is, i)
	}
	return is, rowsErr("best bowling figures", rows)
}

func (s *DB) PhaseSplits(ctx context.Context, f cricket.Filter) ([]cricket.PhaseSplit, error) {
	q := fmt.Sprintf(`
		SELECT d.batting_team,
		       SUM(CASE WHEN d.over <= %[1]d AND d.wide_runs = 0 AND d.noball_runs = 0 THEN 1 ELSE 0 END),
		       SUM(CASE WHEN d.over <= %[1]d THEN d.total_runs ELSE 0 END),
		       SUM(CASE WHEN d.over <= %[1]d AND d.is_wicket = 1 THEN 1 ELSE 0 END),
		       SUM(CASE WHEN d.over >= %[2]d AND d.wide_runs = 0 AND d.noball_runs = 0 THEN 1 ELSE 0 END),
		       SUM(CASE WHEN d.over >= %[2]d THEN d.total_runs ELSE 0 END),
		       SUM(CASE WHEN d.over >= %[2]d AND d.is_wicket = 1 THEN 1 ELSE 0 END)
		FROM deliveries d
		JOIN matches m ON m.match_id = d.match_id
		WHERE (? = '' OR d.batting_team = ?) AND (? = 0 OR m.season = ?)
		GROUP BY d.batting_team
		ORDER BY d.batting_team`,
		overs.PowerplayLastOver, overs.DeathFirstOver)
	rows, err := s.query(ctx, "phase splits", q, f.Team, f.Team, f.Season, f.Season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var splits []cricket.PhaseSplit
	for rows.Next() {
		var p cricket.PhaseSplit
		if err := rows.Scan(&p.Team,
			&p.Powerplay.Balls, &p.Powerplay.Runs, &p.Powerplay.Wickets,
			&p.Death.Balls, &p.Death.Runs, &p.Death.Wickets); err != nil {
			return nil, &cricket.StoreError{Op: "phase splits", Err: err}
		}
		p.Powerplay.RunsPerBall = cricket.RunsPerBall(p.Powerplay.Runs, p.Powerplay.Balls)
		p.Death.RunsPerBall = cricket.RunsPerBall(p.Death.Runs, p.Death.Balls)
		splits = append(splits, p)
	}
	return splits, rowsErr("phase splits", rows)
}

func (s *DB) TeamSeasonTotals(ctx context.Context, f cricket.Filter) ([]cricket.SeasonTotals, error) {
	const q = `
		WITH totals AS (
			SELECT d.match_id, d.batting_team AS team, d.bowling_team AS opponent,
			       SUM(d.total_runs) AS runs
			FROM deliveries d
			GROUP BY d.match_id, d.batting_team, d.bowling_team
		)
		SELECT x.team, m.season, COUNT(DISTINCT x.match_id) AS matches,
		       SUM(x.scored) AS scored, SUM(x.conceded) AS conceded
		FROM (
			SELECT match_id, team, runs AS scored, 0 AS conceded FROM totals
			UNION ALL
			SELECT match_id, opponent AS team, 0 AS scored, runs AS conceded FROM totals
		) AS x
		JOIN matches m ON m.match_id = x.match_id
		WHERE (? = '' OR x.team = ?) AND (? = 0 OR m.season = ?)
		GROUP BY x.team, m.season
		ORDER BY m.season, x.team`
	rows, err := s.query(ctx, "team season totals", q, f.Team, f.Team, f.Season, f.Season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ts []cricket.SeasonTotals
	for rows.Next() {
		var t cricket.SeasonTotals
		if err := rows.Scan(&t.Team, &t.Season, &t.Matches, &t.RunsScored, &t.RunsConceded); err != nil {
			return nil, &cricket.StoreError{Op: "team season totals", Err: err}
		}
		ts = append(ts, t)
	}
	return ts, rowsErr("team season totals", rows)
}

func (s *DB) TossBreakdown(ctx context.Context, season int) ([]cricket.TossBreakdown, error) {
	const q = `
		SELECT toss_decision, COUNT(*) AS toss_wins,
		       SUM(CASE WHEN COALESCE(winner,'') = toss_winner THEN 1 ELSE 0 END) AS match_wins,
		       SUM(CASE WHEN COALESCE(winner,'') = '' THEN 1 ELSE 0 END) AS no_results
		FROM matches
		WHERE (? = 0 OR season = ?)
		GROUP BY toss_decision
		ORDER BY toss_decision`
	rows, err := s.query(ctx, "toss breakdown", q, season, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ts []cricket.TossBreakdown
	for rows.Next() {
		var t cricket.TossBreakdown
		if err := rows.Scan(&t.Decision, &t.TossWins, &t.MatchWins, &t.NoResults); err != nil {
			return nil, &cricket.StoreError{Op: "toss breakdown", Err: err}
		}
		// No-result matches are still tosses won, but a win percentage over
		// them would punish the toss winner for the weather.
		t.WinPct = cricket.WinPct(t.MatchWins, t.TossWins-t.NoResults)
		ts = append(ts, t)
	}
	return ts, rowsErr("toss breakdown", rows)
}

func (s *DB) VenueBreakdown(ctx context.Context, limit int) ([]cricket.VenueCount, error) {
	const q = `
		SELECT venue, COALESCE(city,''), COUNT(*) AS matches
		FROM matches
		GROUP BY venue, city
		ORDER BY matches DESC, venue
		LIMIT ?`
	rows, err := s.query(ctx, "venue breakdown", q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vs []cricket.VenueCount
	for rows.Next() {
		var v cricket.VenueCount
		if err := rows.Scan(&v.Venue, &v.City, &v.Matches); err != nil {
			return nil, &cricket.StoreError{Op: "venue breakdown", Err: err}
		}
		vs = append(vs, v)
	}
	return vs, rowsErr("venue breakdown", rows)
}

func (s *DB) BatterDeliveries(ctx context.Context, batter string) ([]cricket.Delivery, error) {
	const q = `
		SELECT match_id, innings, over, ball, batting_team, bowling_team,
		       batter, non_striker, bowler,
		       batter_runs, wide_runs, noball_runs, bye_runs, legbye_runs,
		       penalty_runs, total_runs, is_wicket,
		       COALESCE(player_dismissed,''), COALESCE(wicket_kind,''), COALESCE(fielder,'')
		FROM deliveries
		WHERE batter = ?
		ORDER BY match_id, innings, over, ball`
	rows, err := s.query(ctx, "batter deliveries", q, batter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ds []cricket.Delivery
	for rows.Next() {
		var d cricket.Delivery
		if err := rows.Scan(&d.MatchID, &d.Innings, &d.Over, &d.Ball,
			&d.BattingTeam, &d.BowlingTeam, &d.Batter, &d.NonStriker, &d.Bowler,
			&d.BatterRuns, &d.WideRuns, &d.NoBallRuns, &d.ByeRuns, &d.LegByeRuns,
			&d.PenaltyRuns, &d.TotalRuns, &d.Wicket,
			&d.PlayerDismissed, &d.WicketKind, &d.Fielder); err != nil {
			return nil, &cricket.StoreError{Op: "batter deliveries", Err: err}
		}
		ds = append(ds, d)
	}
	return ds, rowsErr("batter deliveries", rows)
}

// maxAdHocRows caps ad-hoc result sets; generated SQL carries no guaranteed
// LIMIT and the deliveries table runs to hundreds of thousands of rows.
const maxAdHocRows = 1000

// Query executes an already-validated read-only statement and returns its
// raw shape. Callers must run the statement through sqlguard first.
func (s *DB) Query(ctx context.Context, query string) (*QueryResult, error) {
	rows, err := s.query(ctx, "ad-hoc query", query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &cricket.StoreError{Op: "ad-hoc query", Err: err}
	}
	result := &QueryResult{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		if len(result.Rows) == maxAdHocRows {
			break
		}
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &cricket.StoreError{Op: "ad-hoc query", Err: err}
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	return result, rowsErr("ad-hoc query", rows)
}

func rowsErr(op string, rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		return &cricket.StoreError{Op: op, Err: err}
	}
	return nil
}
