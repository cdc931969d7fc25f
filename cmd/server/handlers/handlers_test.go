package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mvaidya/cricstats/cache"
	"github.com/mvaidya/cricstats/cmd/server/auth"
	"github.com/mvaidya/cricstats/cricket"
	"github.com/mvaidya/cricstats/nlsql"
	"github.com/mvaidya/cricstats/sqlguard"
	"github.com/mvaidya/cricstats/store"
)

// mockStore returns canned data, or err from every method when set. calls
// counts store hits so cache behaviour can be asserted.
type mockStore struct {
	err        error
	teams      []cricket.Team
	matches    []cricket.Match
	record     cricket.Record
	deliveries []cricket.Delivery
	result     *store.QueryResult
	calls      int
}

func (m *mockStore) Close()                          {}
func (m *mockStore) Ping(context.Context) error      { return m.err }
func (m *mockStore) Migrate() error                  { return m.err }

func (m *mockStore) Teams(context.Context) ([]cricket.Team, error) {
	m.calls++
	return m.teams, m.err
}

func (m *mockStore) Matches(context.Context, cricket.Filter) ([]cricket.Match, error) {
	m.calls++
	return m.matches, m.err
}

func (m *mockStore) TeamRecord(_ context.Context, f cricket.Filter) (cricket.Record, error) {
	m.calls++
	r := m.record
	r.Team = f.Team
	return r, m.err
}

func (m *mockStore) AllTeamRecords(context.Context, int) ([]cricket.Record, error) {
	m.calls++
	return []cricket.Record{m.record}, m.err
}

func (m *mockStore) HeadToHead(_ context.Context, a, b string, _ int) (cricket.HeadToHead, error) {
	m.calls++
	return cricket.HeadToHead{TeamA: a, TeamB: b, Matches: 2, AWins: 1, BWins: 1}, m.err
}

func (m *mockStore) SeasonSummaries(context.Context) ([]cricket.SeasonSummary, error) {
	m.calls++
	return []cricket.SeasonSummary{{Season: 2024, Matches: 74}}, m.err
}

func (m *mockStore) TopRunScorers(context.Context, cricket.Filter) ([]cricket.BattingCareer, error) {
	m.calls++
	return []cricket.BattingCareer{{Player: "V Kohli", Runs: 8000}}, m.err
}

func (m *mockStore) TopWicketTakers(context.Context, cricket.Filter) ([]cricket.BowlingCareer, error) {
	m.calls++
	return []cricket.BowlingCareer{{Player: "YS Chahal", Wickets: 200}}, m.err
}

func (m *mockStore) BestStrikeRates(context.Context, cricket.Filter) ([]cricket.BattingCareer, error) {
	m.calls++
	return nil, m.err
}

func (m *mockStore) BestEconomyRates(context.Context, cricket.Filter) ([]cricket.BowlingCareer, error) {
	m.calls++
	return nil, m.err
}

func (m *mockStore) HighestInningsScores(context.Context, cricket.Filter) ([]cricket.InningsBatting, error) {
	m.calls++
	return []cricket.InningsBatting{{Batter: "CH Gayle", Runs: 175}}, m.err
}

func (m *mockStore) BestBowlingFigures(context.Context, cricket.Filter) ([]cricket.InningsBowling, error) {
	m.calls++
	return []cricket.InningsBowling{{Bowler: "A Joseph", Wickets: 6}}, m.err
}

func (m *mockStore) PhaseSplits(context.Context, cricket.Filter) ([]cricket.PhaseSplit, error) {
	m.calls++
	return []cricket.PhaseSplit{{Team: "Chennai Super Kings"}}, m.err
}

func (m *mockStore) TeamSeasonTotals(context.Context, cricket.Filter) ([]cricket.SeasonTotals, error) {
	m.calls++
	return []cricket.SeasonTotals{{Team: "Chennai Super Kings", Season: 2024, Matches: 14, RunsScored: 2400, RunsConceded: 2300}}, m.err
}

func (m *mockStore) TossBreakdown(context.Context, int) ([]cricket.TossBreakdown, error) {
	m.calls++
	return []cricket.TossBreakdown{{Decision: "field", TossWins: 10, MatchWins: 6, WinPct: 60}}, m.err
}

func (m *mockStore) VenueBreakdown(context.Context, int) ([]cricket.VenueCount, error) {
	m.calls++
	return []cricket.VenueCount{{Venue: "Eden Gardens", City: "Kolkata", Matches: 88}}, m.err
}

func (m *mockStore) BatterDeliveries(context.Context, string) ([]cricket.Delivery, error) {
	m.calls++
	return m.deliveries, m.err
}

func (m *mockStore) Query(context.Context, string) (*store.QueryResult, error) {
	m.calls++
	return m.result, m.err
}

func (m *mockStore) InsertTeams(context.Context, []cricket.Team) error        { return m.err }
func (m *mockStore) InsertMatches(context.Context, []cricket.Match) error     { return m.err }
func (m *mockStore) InsertDeliveries(context.Context, []cricket.Delivery) error { return m.err }

func testEnv(t *testing.T, s store.Store) Env {
	t.Helper()
	c := cache.NewMemory(64)
	t.Cleanup(func() { c.Close() })
	return Env{
		Store:  s,
		Cache:  c,
		TTL:    time.Minute,
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
	}
}

func TestTeamsHandler(t *testing.T) {
	ms := &mockStore{teams: []cricket.Team{{Name: "Chennai Super Kings", ShortName: "CSK", Active: true}}}
	h := TeamsHandler(testEnv(t, ms))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/teams", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var teams []cricket.Team
	if err := json.Unmarshal(rec.Body.Bytes(), &teams); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(teams) != 1 || teams[0].ShortName != "CSK" {
		t.Errorf("teams = %+v", teams)
	}
}

func TestTeamsHandlerStoreError(t *testing.T) {
	ms := &mockStore{err: &cricket.StoreError{Op: "teams", Err: errors.New("connection refused")}}
	h := TeamsHandler(testEnv(t, ms))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/teams", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502: store failure must not look like an empty result", rec.Code)
	}
}

func TestTeamRecordHandler(t *testing.T) {
	ms := &mockStore{record: cricket.Record{MatchesPlayed: 14, Wins: 10, Losses: 4, WinPct: 71.4}}
	h := TeamRecordHandler(testEnv(t, ms))

	req := httptest.NewRequest(http.MethodGet, "/teams/Chennai%20Super%20Kings/record?season=2024", nil)
	req.SetPathValue("team", "Chennai Super Kings")
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var r cricket.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.Team != "Chennai Super Kings" || r.Wins != 10 {
		t.Errorf("record = %+v", r)
	}
}

func TestTeamRecordHandlerBadSeason(t *testing.T) {
	h := TeamRecordHandler(testEnv(t, &mockStore{}))

	req := httptest.NewRequest(http.MethodGet, "/teams/X/record?season=notayear", nil)
	req.SetPathValue("team", "X")
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestTeamRecordHandlerCaches(t *testing.T) {
	ms := &mockStore{record: cricket.Record{MatchesPlayed: 2}}
	h := TeamRecordHandler(testEnv(t, ms))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/teams/X/record", nil)
		req.SetPathValue("team", "X")
		rec := httptest.NewRecorder()
		h(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	}
	if ms.calls != 1 {
		t.Errorf("store hit %d times for identical requests, want 1", ms.calls)
	}
}

func TestHeadToHeadHandlerRequiresBothTeams(t *testing.T) {
	h := HeadToHeadHandler(testEnv(t, &mockStore{}))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/head-to-head?team_a=X", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/head-to-head?team_a=X&team_b=X", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("same team twice: status = %d, want 400", rec.Code)
	}
}

func TestBattingLeadersHandlerRejectsUnknownMetric(t *testing.T) {
	h := BattingLeadersHandler(testEnv(t, &mockStore{}))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/leaders/batting?by=elegance", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestPlayerProfileHandler(t *testing.T) {
	ms := &mockStore{deliveries: []cricket.Delivery{
		{MatchID: 1, Innings: 1, Over: 1, Ball: 1, Batter: "X Player", BatterRuns: 4, TotalRuns: 4},
		{MatchID: 1, Innings: 1, Over: 1, Ball: 2, Batter: "X Player", BatterRuns: 6, TotalRuns: 6},
		{MatchID: 2, Innings: 2, Over: 3, Ball: 1, Batter: "X Player", BatterRuns: 1, TotalRuns: 1,
			Wicket: true, PlayerDismissed: "X Player", WicketKind: "caught"},
	}}
	h := PlayerProfileHandler(testEnv(t, ms))

	req := httptest.NewRequest(http.MethodGet, "/players/X%20Player/profile", nil)
	req.SetPathValue("player", "X Player")
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var p PlayerProfile
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Innings != 2 || p.Runs != 11 || p.Dismissals != 1 {
		t.Errorf("profile = %+v, want 2 innings, 11 runs, 1 dismissal", p)
	}
	if p.ByInnings[0].Runs != 10 {
		t.Errorf("best innings = %+v, want 10", p.ByInnings[0])
	}
}

func testGuard() *sqlguard.Validator {
	return sqlguard.New(map[string][]string{
		"matches": {"match_id", "season", "winner", "team1", "team2"},
	})
}

func TestAskHandler(t *testing.T) {
	ms := &mockStore{result: &store.QueryResult{
		Columns: []string{"winner"},
		Rows:    [][]any{{"Chennai Super Kings"}},
	}}
	client := &nlsql.Mock{SQL: "SELECT winner FROM matches WHERE season = 2024"}
	h := AskHandler(testEnv(t, ms), client, testGuard())

	body, _ := json.Marshal(AskRequest{Question: "who won in 2024?"})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp AskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SQL != client.SQL || len(resp.Rows) != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestAskHandlerBlocksUnsafeSQL(t *testing.T) {
	ms := &mockStore{result: &store.QueryResult{}}
	client := &nlsql.Mock{SQL: "DROP TABLE matches"}
	h := AskHandler(testEnv(t, ms), client, testGuard())

	body, _ := json.Marshal(AskRequest{Question: "clean up"})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(body)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if ms.calls != 0 {
		t.Error("rejected SQL reached the store")
	}
}

func TestAskHandlerGenerationFailure(t *testing.T) {
	client := &nlsql.Mock{Err: errors.New("model timeout")}
	h := AskHandler(testEnv(t, &mockStore{}), client, testGuard())

	body, _ := json.Marshal(AskRequest{Question: "anything"})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(body)))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestAskHandlerEmptyQuestion(t *testing.T) {
	h := AskHandler(testEnv(t, &mockStore{}), &nlsql.Mock{SQL: "SELECT 1"}, testGuard())

	body, _ := json.Marshal(AskRequest{Question: "   "})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLoginHandler(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	authn := auth.New("test-jwt-secret")
	h := LoginHandler(testEnv(t, &mockStore{}), authn, "admin", string(hash))

	t.Run("valid credentials", func(t *testing.T) {
		body, _ := json.Marshal(LoginCredentials{Username: "admin", Password: "super-secret"})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body)))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Token == "" {
			t.Error("no token issued")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		body, _ := json.Marshal(LoginCredentials{Username: "admin", Password: "nope"})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body)))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		body, _ := json.Marshal(LoginCredentials{Username: "intruder", Password: "super-secret"})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body)))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestAuthMiddleware(t *testing.T) {
	authn := auth.New("test-jwt-secret")
	protected := authn.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ask", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	token, err := authn.GenerateJWT("admin")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/ask", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/ask", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", rec.Code)
	}
}

func TestTeamSplitsHandler(t *testing.T) {
	ms := &mockStore{matches: []cricket.Match{
		{ID: 1, Team1: "Chennai Super Kings", Team2: "Mumbai Indians",
			TossWinner: "Chennai Super Kings", TossDecision: "bat", Winner: "Chennai Super Kings"},
		{ID: 2, Team1: "Mumbai Indians", Team2: "Chennai Super Kings",
			TossWinner: "Mumbai Indians", TossDecision: "bat", Winner: "Chennai Super Kings"},
	}}
	h := TeamSplitsHandler(testEnv(t, ms))

	req := httptest.NewRequest(http.MethodGet, "/teams/Chennai%20Super%20Kings/splits", nil)
	req.SetPathValue("team", "Chennai Super Kings")
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var splits TeamSplits
	if err := json.Unmarshal(rec.Body.Bytes(), &splits); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if splits.ChaseDefend.DefendMatches != 1 || splits.ChaseDefend.ChaseMatches != 1 {
		t.Errorf("chase/defend = %+v", splits.ChaseDefend)
	}
	if splits.ChaseDefend.DefendWins != 1 || splits.ChaseDefend.ChaseWins != 1 {
		t.Errorf("chase/defend wins = %+v", splits.ChaseDefend)
	}
	if len(splits.NetRunRates) != 1 {
		t.Fatalf("net run rates = %+v", splits.NetRunRates)
	}
	// (2400-2300)/14/20 rounded to 3 places.
	if splits.NetRunRates[0].NetRunRate != 0.357 {
		t.Errorf("NRR = %v, want 0.357", splits.NetRunRates[0].NetRunRate)
	}
}
