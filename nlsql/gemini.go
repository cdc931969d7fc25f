package nlsql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// schemaPrompt describes the queryable tables to the model. Column names must
// stay in lockstep with the migrations and the sqlguard allow-list.
const schemaPrompt = `Database schema (SQLite):

Table: teams (team_name, short_name, is_active)
Table: matches (match_id, season, match_date, city, venue, team1, team2,
                toss_winner, toss_decision, winner, win_by_runs,
                win_by_wickets, player_of_match)
Table: deliveries (match_id, innings, over, ball, batting_team, bowling_team,
                   batter, non_striker, bowler, batter_runs, wide_runs,
                   noball_runs, bye_runs, legbye_runs, penalty_runs,
                   total_runs, is_wicket, player_dismissed, wicket_kind, fielder)

Rules the SQL must follow:
- A legal delivery has wide_runs = 0 AND noball_runs = 0; use it as the
  denominator for strike rate (100.0 * runs / balls) and economy
  (6.0 * runs / balls).
- A wicket credits the bowler only when wicket_kind is not one of
  'run out', 'retired hurt', 'retired out', 'obstructing the field',
  'handled the ball', 'timed out'.
- Runs charged to the bowler are batter_runs + wide_runs + noball_runs.
- Overs are 1-based: powerplay is overs 1-6, death overs are 16-20.
- Single-innings records need GROUP BY match_id, innings, player.

Example (highest single-innings scores):
SELECT batter, match_id, innings, SUM(batter_runs) AS runs
FROM deliveries GROUP BY match_id, innings, batter
ORDER BY runs DESC LIMIT 10`

// Gemini calls the generateContent REST endpoint.
type Gemini struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewGemini(apiKey, model string, timeout time.Duration) *Gemini {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Gemini{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (g *Gemini) GenerateSQL(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(`You are an expert SQL developer for an IPL cricket database.

%s

User Question: %s

Generate a valid SQLite query. Return ONLY the SQL query, no explanations.
Read-only SELECT statements only; add LIMIT 20 for large results.`, schemaPrompt, question)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("nlsql: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("nlsql: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("nlsql: call model: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("nlsql: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nlsql: model returned status %d: %s", resp.StatusCode, truncate(raw, 200))
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("nlsql: parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("nlsql: model error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("nlsql: empty response from model")
	}

	sql := stripFences(parsed.Candidates[0].Content.Parts[0].Text)
	if sql == "" {
		return "", fmt.Errorf("nlsql: model produced no SQL")
	}
	return sql, nil
}

// stripFences removes a surrounding ```sql / ``` markdown fence, which the
// model emits despite being told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```sql")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
