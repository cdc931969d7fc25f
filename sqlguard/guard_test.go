package sqlguard

import (
	"errors"
	"testing"
)

func testValidator() *Validator {
	return New(map[string][]string{
		"teams":   {"team_name", "short_name", "is_active"},
		"matches": {"match_id", "season", "match_date", "city", "venue", "team1", "team2", "toss_winner", "toss_decision", "winner", "win_by_runs", "win_by_wickets", "player_of_match"},
		"deliveries": {"match_id", "innings", "over", "ball", "batting_team", "bowling_team",
			"batter", "non_striker", "bowler", "batter_runs", "wide_runs", "noball_runs",
			"bye_runs", "legbye_runs", "penalty_runs", "total_runs", "is_wicket",
			"player_dismissed", "wicket_kind", "fielder"},
	})
}

func TestValidateAccepts(t *testing.T) {
	v := testValidator()
	good := []string{
		"SELECT team1, winner FROM matches WHERE season = 2024",
		"SELECT batter, SUM(batter_runs) AS total_runs FROM deliveries GROUP BY batter ORDER BY total_runs DESC LIMIT 10",
		"SELECT bowler, SUM(is_wicket) AS wickets FROM deliveries WHERE wicket_kind NOT IN ('run out') GROUP BY bowler",
		"select winner, count(*) as wins from matches where winner is not null group by winner",
		"SELECT m.season, COUNT(*) FROM matches m GROUP BY m.season",
		"SELECT m.team1 FROM matches AS m WHERE m.season = 2020",
		"SELECT m.season, d.batter FROM deliveries d JOIN matches m ON d.match_id = m.match_id",
		"WITH totals AS (SELECT batter, SUM(batter_runs) AS runs FROM deliveries GROUP BY batter) SELECT batter, runs FROM totals ORDER BY runs DESC",
		"SELECT team_name FROM teams WHERE is_active = 1;",
		"SELECT batter, SUM(batter_runs) AS runs FROM deliveries GROUP BY batter HAVING runs >= 200",
	}
	for _, q := range good {
		if err := v.Validate(q); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", q, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	v := testValidator()
	bad := []struct {
		name string
		q    string
	}{
		{"empty", ""},
		{"insert", "INSERT INTO matches (match_id) VALUES (1)"},
		{"update", "UPDATE matches SET winner = 'X'"},
		{"delete", "DELETE FROM deliveries"},
		{"drop", "DROP TABLE matches"},
		{"pragma", "PRAGMA table_info(matches)"},
		{"stacked statements", "SELECT team1 FROM matches; DROP TABLE matches"},
		{"comment smuggling", "SELECT team1 FROM matches -- WHERE 1=1"},
		{"block comment", "SELECT /* hidden */ team1 FROM matches"},
		{"unknown table", "SELECT name FROM sqlite_master"},
		{"unknown column", "SELECT password FROM matches"},
		{"aliased unknown table", "SELECT * FROM sqlite_master AS x"},
		{"aliased unknown table bare", "SELECT team1 FROM secrets s"},
		{"joined unknown table", "SELECT team1 FROM matches JOIN sqlite_master AS x ON 1 = 1"},
		{"comma join", "SELECT team1 FROM matches, sqlite_master"},
		{"comma join behind subquery", "SELECT team1 FROM (SELECT team1 FROM matches), sqlite_master"},
		{"unbalanced parentheses", "SELECT team1 FROM matches)"},
		{"quoted identifier", `SELECT "team1" FROM matches`},
		{"does not start with select", "EXPLAIN SELECT team1 FROM matches"},
		{"unterminated literal", "SELECT team1 FROM matches WHERE winner = 'X"},
	}
	for _, c := range bad {
		t.Run(c.name, func(t *testing.T) {
			err := v.Validate(c.q)
			if err == nil {
				t.Fatalf("Validate(%q) = nil, want rejection", c.q)
			}
			if !errors.Is(err, ErrUnsafeSQL) {
				t.Errorf("rejection should wrap ErrUnsafeSQL, got %v", err)
			}
		})
	}
}

func TestValidateNeverMutatesInput(t *testing.T) {
	v := testValidator()
	q := "SELECT team1 FROM matches"
	before := q
	_ = v.Validate(q)
	if q != before {
		t.Error("Validate mutated its input")
	}
}
