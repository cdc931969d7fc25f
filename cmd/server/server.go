package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/mvaidya/cricstats/cache"
	"github.com/mvaidya/cricstats/cmd/server/auth"
	"github.com/mvaidya/cricstats/cmd/server/handlers"
	"github.com/mvaidya/cricstats/config"
	"github.com/mvaidya/cricstats/nlsql"
	"github.com/mvaidya/cricstats/sqlguard"
	"github.com/mvaidya/cricstats/store"
)

func logger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "1" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// waitForPostgres blocks until the database accepts connections, for
// deployments where the server races the database container.
func waitForPostgres(l *slog.Logger, dsn string) error {
	var err error
	for i := 1; i <= 5; i++ {
		var db *sql.DB
		db, err = sql.Open("postgres", dsn)
		if err == nil {
			err = db.PingContext(context.Background())
			db.Close()
			if err == nil {
				return nil
			}
		}
		l.Warn("database not ready", "attempt", i, "error", err)
		time.Sleep(5 * time.Second)
	}
	return err
}

func openStore(ctx context.Context, l *slog.Logger, cfg *config.Config) (store.Store, error) {
	switch cfg.Database.Driver {
	case "postgres":
		if err := waitForPostgres(l, cfg.Database.DSN); err != nil {
			return nil, fmt.Errorf("database never became ready: %w", err)
		}
		return store.NewPostgres(ctx, cfg.Database.DSN, l)
	default:
		return store.NewSQLite(cfg.Database.Path, l)
	}
}

// querySchema is the table/column allow-list for generated SQL. It must match
// the migrations; anything not listed here is unreachable from /ask.
var querySchema = map[string][]string{
	"teams": {"team_name", "short_name", "is_active"},
	"matches": {"match_id", "season", "match_date", "city", "venue", "team1", "team2",
		"toss_winner", "toss_decision", "winner", "win_by_runs", "win_by_wickets",
		"player_of_match"},
	"deliveries": {"match_id", "innings", "over", "ball", "batting_team", "bowling_team",
		"batter", "non_striker", "bowler", "batter_runs", "wide_runs", "noball_runs",
		"bye_runs", "legbye_runs", "penalty_runs", "total_runs", "is_wicket",
		"player_dismissed", "wicket_kind", "fielder"},
}

func main() {
	l := logger()

	cfg, err := config.Load()
	if err != nil {
		l.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := openStore(ctx, l, cfg)
	if err != nil {
		l.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		l.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	resultCache, err := cache.New(cache.Config{
		Backend:  cfg.Cache.Backend,
		Address:  cfg.Cache.Address,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
		TTL:      cfg.Cache.TTL,
		MaxSize:  cfg.Cache.MaxSize,
	})
	if err != nil {
		l.Error("failed to build cache", "error", err)
		os.Exit(1)
	}
	defer resultCache.Close()

	env := handlers.Env{Store: db, Cache: resultCache, TTL: cfg.Cache.TTL, Logger: l}
	authn := auth.New(cfg.Auth.JWTSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /livez", handlers.LivezHandler)
	mux.Handle("POST /login", handlers.LoginHandler(env, authn, cfg.Auth.AdminUser, cfg.Auth.AdminPassword))

	mux.Handle("GET /teams", handlers.TeamsHandler(env))
	mux.Handle("GET /standings", handlers.StandingsHandler(env))
	mux.Handle("GET /teams/{team}/record", handlers.TeamRecordHandler(env))
	mux.Handle("GET /teams/{team}/splits", handlers.TeamSplitsHandler(env))
	mux.Handle("GET /head-to-head", handlers.HeadToHeadHandler(env))
	mux.Handle("GET /seasons", handlers.SeasonsHandler(env))
	mux.Handle("GET /toss", handlers.TossHandler(env))
	mux.Handle("GET /venues", handlers.VenuesHandler(env))
	mux.Handle("GET /hall-of-fame/batting", handlers.BattingHallOfFameHandler(env))
	mux.Handle("GET /hall-of-fame/bowling", handlers.BowlingHallOfFameHandler(env))
	mux.Handle("GET /leaders/batting", handlers.BattingLeadersHandler(env))
	mux.Handle("GET /leaders/bowling", handlers.BowlingLeadersHandler(env))
	mux.Handle("GET /players/{player}/profile", handlers.PlayerProfileHandler(env))

	if cfg.AI.APIKey != "" {
		client := nlsql.NewGemini(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout)
		guard := sqlguard.New(querySchema)
		mux.Handle("POST /ask", authn.Middleware(handlers.AskHandler(env, client, guard)))
	} else {
		l.Warn("AI API key not configured, /ask disabled")
		mux.HandleFunc("POST /ask", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "natural-language queries are not configured", http.StatusServiceUnavailable)
		})
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	l.Info("server starting", "addr", addr, "driver", cfg.Database.Driver, "cache", cfg.Cache.Backend)
	if err := http.ListenAndServe(addr, mux); err != nil {
		l.Error("server failed", "error", err)
		os.Exit(1)
	}
}
