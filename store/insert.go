package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mvaidya/cricstats/cricket"
)

// nullable maps an empty string to NULL so optional columns stay NULL in the
// database instead of collecting empty strings.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

func (s *DB) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &cricket.StoreError{Op: op, Err: err}
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return &cricket.StoreError{Op: op, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &cricket.StoreError{Op: op, Err: err}
	}
	return nil
}

func (s *DB) InsertTeams(ctx context.Context, teams []cricket.Team) error {
	const q = `INSERT INTO teams (team_name, short_name, is_active) VALUES (?, ?, ?)
		ON CONFLICT (team_name) DO NOTHING`
	return s.withTx(ctx, "insert teams", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.rebind(q))
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, t := range teams {
			if _, err := stmt.ExecContext(ctx, t.Name, t.ShortName, t.Active); err != nil {
				return fmt.Errorf("team %q: %w", t.Name, err)
			}
		}
		return nil
	})
}

func (s *DB) InsertMatches(ctx context.Context, matches []cricket.Match) error {
	const q = `INSERT INTO matches
		(match_id, season, match_date, city, venue, team1, team2,
		 toss_winner, toss_decision, winner, win_by_runs, win_by_wickets, player_of_match)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return s.withTx(ctx, "insert matches", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.rebind(q))
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, m := range matches {
			if m.Winner != "" && m.Winner != m.Team1 && m.Winner != m.Team2 {
				return fmt.Errorf("match %d: winner %q is neither %q nor %q",
					m.ID, m.Winner, m.Team1, m.Team2)
			}
			if _, err := stmt.ExecContext(ctx,
				m.ID, m.Season, m.Date, nullable(m.City), m.Venue, m.Team1, m.Team2,
				m.TossWinner, m.TossDecision, nullable(m.Winner),
				nullableInt(m.WinByRuns), nullableInt(m.WinByWickets),
				nullable(m.PlayerOfMatch)); err != nil {
				return fmt.Errorf("match %d: %w", m.ID, err)
			}
		}
		return nil
	})
}

func (s *DB) InsertDeliveries(ctx context.Context, ds []cricket.Delivery) error {
	const q = `INSERT INTO deliveries
		(match_id, innings, over, ball, batting_team, bowling_team,
		 batter, non_striker, bowler, batter_runs, wide_runs, noball_runs,
		 bye_runs, legbye_runs, penalty_runs, total_runs, is_wicket,
		 player_dismissed, wicket_kind, fielder)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return s.withTx(ctx, "insert deliveries", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.rebind(q))
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, d := range ds {
			if _, err := stmt.ExecContext(ctx,
				d.MatchID, d.Innings, d.Over, d.Ball, d.BattingTeam, d.BowlingTeam,
				d.Batter, d.NonStriker, d.Bowler, d.BatterRuns, d.WideRuns, d.NoBallRuns,
				d.ByeRuns, d.LegByeRuns, d.PenaltyRuns, d.TotalRuns, d.Wicket,
				nullable(d.PlayerDismissed), nullable(d.WicketKind), nullable(d.Fielder)); err != nil {
				return fmt.Errorf("match %d over %d.%d: %w", d.MatchID, d.Over, d.Ball, err)
			}
		}
		return nil
	})
}
