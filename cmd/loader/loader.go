// Command loader ingests match and ball-by-ball CSV exports into the store.
// Header names are matched case-insensitively, with aliases for the common
// export variants (over/over_number, player_dismissed/player_out, ...).
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mvaidya/cricstats/config"
	"github.com/mvaidya/cricstats/cricket"
	"github.com/mvaidya/cricstats/store"
)

const insertBatchSize = 5000

func logger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "1" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func main() {
	matchesPath := flag.String("matches", "matches.csv", "matches CSV file")
	deliveriesPath := flag.String("deliveries", "deliveries.csv", "deliveries CSV file")
	teamsPath := flag.String("teams", "", "optional teams CSV file; derived from match rows when empty")
	flag.Parse()

	l := logger()

	cfg, err := config.Load()
	if err != nil {
		l.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	var db store.Store
	if cfg.Database.Driver == "postgres" {
		db, err = store.NewPostgres(ctx, cfg.Database.DSN, l)
	} else {
		db, err = store.NewSQLite(cfg.Database.Path, l)
	}
	if err != nil {
		l.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		l.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, l, db, *matchesPath, *deliveriesPath, *teamsPath); err != nil {
		l.Error("load failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, l *slog.Logger, db store.Store, matchesPath, deliveriesPath, teamsPath string) error {
	matches, err := readMatches(matchesPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", matchesPath, err)
	}
	l.Info("parsed matches", "file", matchesPath, "rows", len(matches))

	var teams []cricket.Team
	if teamsPath != "" {
		teams, err = readTeams(teamsPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", teamsPath, err)
		}
	} else {
		teams = deriveTeams(matches)
	}

	if err := db.InsertTeams(ctx, teams); err != nil {
		return err
	}
	l.Info("inserted teams", "rows", len(teams))

	if err := db.InsertMatches(ctx, matches); err != nil {
		return err
	}
	l.Info("inserted matches", "rows", len(matches))

	total, err := loadDeliveries(ctx, db, deliveriesPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", deliveriesPath, err)
	}
	l.Info("inserted deliveries", "rows", total)
	return nil
}

// row is one CSV record with header-based, alias-aware access.
type row struct {
	index  map[string]int
	fields []string
}

// headerAliases maps canonical column names to the variants seen across the
// dataset's exports.
var headerAliases = map[string][]string{
	"match_id":         {"id"},
	"match_date":       {"date"},
	"team1":            {"team1_name"},
	"team2":            {"team2_name"},
	"toss_winner":      {"toss_winner_name"},
	"winner":           {"match_winner_name", "match_winner"},
	"player_of_match":  {"player_of_the_match"},
	"over":             {"over_number"},
	"ball":             {"ball_number"},
	"batting_team":     {"team_batting"},
	"bowling_team":     {"team_bowling"},
	"wide_runs":        {"wide_ball_runs"},
	"noball_runs":      {"no_ball_runs"},
	"bye_runs":         {"byes"},
	"legbye_runs":      {"legbyes"},
	"player_dismissed": {"player_out"},
	"fielder":          {"fielders_involved"},
}

func newIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func (r row) get(name string) string {
	if i, ok := r.index[name]; ok && i < len(r.fields) {
		return strings.TrimSpace(r.fields[i])
	}
	for _, alias := range headerAliases[name] {
		if i, ok := r.index[alias]; ok && i < len(r.fields) {
			return strings.TrimSpace(r.fields[i])
		}
	}
	return ""
}

func (r row) getInt(name string) int {
	v := r.get(name)
	if v == "" {
		return 0
	}
	// Some exports carry integer columns as floats ("4.0").
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return 0
}

func (r row) getBool(name string) bool {
	switch strings.ToLower(r.get(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func readMatches(path string) ([]cricket.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("missing header: %w", err)
	}
	idx := newIndex(header)

	var matches []cricket.Match
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		r := row{index: idx, fields: fields}
		m := cricket.Match{
			ID:            r.getInt("match_id"),
			Season:        r.getInt("season"),
			Date:          r.get("match_date"),
			City:          r.get("city"),
			Venue:         r.get("venue"),
			Team1:         r.get("team1"),
			Team2:         r.get("team2"),
			TossWinner:    r.get("toss_winner"),
			TossDecision:  strings.ToLower(r.get("toss_decision")),
			Winner:        r.get("winner"),
			WinByRuns:     r.getInt("win_by_runs"),
			WinByWickets:  r.getInt("win_by_wickets"),
			PlayerOfMatch: r.get("player_of_match"),
		}
		if m.ID == 0 || m.Team1 == "" || m.Team2 == "" {
			return nil, fmt.Errorf("line %d: missing match_id or team names", line)
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func readTeams(path string) ([]cricket.Team, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("missing header: %w", err)
	}
	idx := newIndex(header)

	var teams []cricket.Team
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		r := row{index: idx, fields: fields}
		teams = append(teams, cricket.Team{
			Name:      r.get("team_name"),
			ShortName: r.get("short_name"),
			Active:    r.getBool("is_active"),
		})
	}
	return teams, nil
}

// deriveTeams builds reference rows from the distinct names in the fixtures.
func deriveTeams(matches []cricket.Match) []cricket.Team {
	seen := map[string]bool{}
	for _, m := range matches {
		seen[m.Team1] = true
		seen[m.Team2] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	teams := make([]cricket.Team, 0, len(names))
	for _, name := range names {
		teams = append(teams, cricket.Team{Name: name, ShortName: shortName(name), Active: true})
	}
	return teams
}

// shortName abbreviates "Chennai Super Kings" to "CSK".
func shortName(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		b.WriteByte(word[0])
	}
	return strings.ToUpper(b.String())
}

func loadDeliveries(ctx context.Context, db store.Store, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("missing header: %w", err)
	}
	idx := newIndex(header)

	total := 0
	batch := make([]cricket.Delivery, 0, insertBatchSize)
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, fmt.Errorf("line %d: %w", line, err)
		}
		r := row{index: idx, fields: fields}
		d := cricket.Delivery{
			MatchID:         r.getInt("match_id"),
			Innings:         r.getInt("innings"),
			Over:            r.getInt("over"),
			Ball:            r.getInt("ball"),
			BattingTeam:     r.get("batting_team"),
			BowlingTeam:     r.get("bowling_team"),
			Batter:          r.get("batter"),
			NonStriker:      r.get("non_striker"),
			Bowler:          r.get("bowler"),
			BatterRuns:      r.getInt("batter_runs"),
			WideRuns:        r.getInt("wide_runs"),
			NoBallRuns:      r.getInt("noball_runs"),
			ByeRuns:         r.getInt("bye_runs"),
			LegByeRuns:      r.getInt("legbye_runs"),
			PenaltyRuns:     r.getInt("penalty_runs"),
			TotalRuns:       r.getInt("total_runs"),
			Wicket:          r.getBool("is_wicket"),
			PlayerDismissed: r.get("player_dismissed"),
			WicketKind:      strings.ToLower(r.get("wicket_kind")),
			Fielder:         r.get("fielder"),
		}
		if d.TotalRuns == 0 {
			d.TotalRuns = d.BatterRuns + d.WideRuns + d.NoBallRuns + d.ByeRuns + d.LegByeRuns + d.PenaltyRuns
		}
		batch = append(batch, d)
		if len(batch) == insertBatchSize {
			if err := db.InsertDeliveries(ctx, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := db.InsertDeliveries(ctx, batch); err != nil {
			return total, err
		}
		total += len(batch)
	}
	return total, nil
}
