// Package store holds the relational backends for match and ball-by-ball
// data. SQLite is the primary backend; Postgres is supported behind the same
// interface. All aggregate queries take bound parameters, never interpolated
// values, and "no rows" is an empty result, not an error.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/mvaidya/cricstats/cricket"
)

// QueryResult carries the ordered columns and rows of an ad-hoc validated
// SELECT, for the natural-language query path.
type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

type Store interface {
	Close()
	Ping(ctx context.Context) error
	Migrate() error

	Teams(ctx context.Context) ([]cricket.Team, error)
	Matches(ctx context.Context, f cricket.Filter) ([]cricket.Match, error)
	TeamRecord(ctx context.Context, f cricket.Filter) (cricket.Record, error)
	AllTeamRecords(ctx context.Context, season int) ([]cricket.Record, error)
	HeadToHead(ctx context.Context, teamA, teamB string, season int) (cricket.HeadToHead, error)
	SeasonSummaries(ctx context.Context) ([]cricket.SeasonSummary, error)

	TopRunScorers(ctx context.Context, f cricket.Filter) ([]cricket.BattingCareer, error)
	TopWicketTakers(ctx context.Context, f cricket.Filter) ([]cricket.BowlingCareer, error)
	BestStrikeRates(ctx context.Context, f cricket.Filter) ([]cricket.BattingCareer, error)
	BestEconomyRates(ctx context.Context, f cricket.Filter) ([]cricket.BowlingCareer, error)
	HighestInningsScores(ctx context.Context, f cricket.Filter) ([]cricket.InningsBatting, error)
	BestBowlingFigures(ctx context.Context, f cricket.Filter) ([]cricket.InningsBowling, error)

	PhaseSplits(ctx context.Context, f cricket.Filter) ([]cricket.PhaseSplit, error)
	TeamSeasonTotals(ctx context.Context, f cricket.Filter) ([]cricket.SeasonTotals, error)
	TossBreakdown(ctx context.Context, season int) ([]cricket.TossBreakdown, error)
	VenueBreakdown(ctx context.Context, limit int) ([]cricket.VenueCount, error)
	BatterDeliveries(ctx context.Context, batter string) ([]cricket.Delivery, error)

	Query(ctx context.Context, query string) (*QueryResult, error)

	InsertTeams(ctx context.Context, teams []cricket.Team) error
	InsertMatches(ctx context.Context, matches []cricket.Match) error
	InsertDeliveries(ctx context.Context, ds []cricket.Delivery) error
}

// DB implements Store over database/sql. The driver field selects placeholder
// rebinding and the migration driver.
type DB struct {
	db     *sql.DB
	pool   *pgxpool.Pool // non-nil for postgres only
	driver string
	logger *slog.Logger
}

// NewSQLite opens (or creates) a SQLite database file using the pure-Go
// driver. Use ":memory:" for a throwaway database.
func NewSQLite(path string, logger *slog.Logger) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	// Single writer; the read path is concurrent under WAL.
	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", pragma, err)
		}
	}
	return &DB{db: db, driver: "sqlite", logger: logger}, nil
}

// NewPostgres connects a pgx pool and exposes it through database/sql so both
// backends share one query implementation.
func NewPostgres(ctx context.Context, dsn string, logger *slog.Logger) (Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: connect postgres: %w", err)
	}
	db := stdlib.OpenDBFromPool(pool)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping postgres: %w", err)
	}
	return &DB{db: db, pool: pool, driver: "postgres", logger: logger}, nil
}

func (s *DB) Close() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("closing database", "error", err)
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *DB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// rebind converts ?-style placeholders to the $N style Postgres expects.
// Queries in this package never contain literal question marks.
func (s *DB) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var out []byte
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}

func (s *DB) query(ctx context.Context, op, query string, args ...any) (*sql.Rows, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		s.logger.Error("query failed", "op", op, "error", err)
		return nil, &cricket.StoreError{Op: op, Err: err}
	}
	return rows, nil
}
