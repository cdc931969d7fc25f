package nlsql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func respondWith(t *testing.T, text string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		prompt := req.Contents[0].Parts[0].Text
		if !strings.Contains(prompt, "Table: deliveries") {
			t.Error("prompt is missing the deliveries schema")
		}
		if !strings.Contains(prompt, "run out") {
			t.Error("prompt is missing the wicket-credit rule")
		}
		resp := generateResponse{}
		resp.Candidates = []struct {
			Content content `json:"content"`
		}{{Content: content{Parts: []part{{Text: text}}}}}
		json.NewEncoder(w).Encode(resp)
	}
}

func newTestGemini(url string) *Gemini {
	g := NewGemini("test-key", "gemini-2.0-flash", 5*time.Second)
	g.baseURL = url
	return g
}

func TestGenerateSQL(t *testing.T) {
	srv := httptest.NewServer(respondWith(t, "SELECT winner FROM matches LIMIT 20"))
	defer srv.Close()

	sql, err := newTestGemini(srv.URL).GenerateSQL(context.Background(), "who wins most?")
	if err != nil {
		t.Fatalf("GenerateSQL: %v", err)
	}
	if sql != "SELECT winner FROM matches LIMIT 20" {
		t.Errorf("sql = %q", sql)
	}
}

func TestGenerateSQLStripsFences(t *testing.T) {
	srv := httptest.NewServer(respondWith(t, "```sql\nSELECT venue FROM matches\n```"))
	defer srv.Close()

	sql, err := newTestGemini(srv.URL).GenerateSQL(context.Background(), "venues?")
	if err != nil {
		t.Fatalf("GenerateSQL: %v", err)
	}
	if sql != "SELECT venue FROM matches" {
		t.Errorf("sql = %q, fences not stripped", sql)
	}
}

func TestGenerateSQLServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":429,"message":"quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := newTestGemini(srv.URL).GenerateSQL(context.Background(), "q"); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestGenerateSQLEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	if _, err := newTestGemini(srv.URL).GenerateSQL(context.Background(), "q"); err == nil {
		t.Fatal("expected error on empty candidates")
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct{ in, want string }{
		{"SELECT 1", "SELECT 1"},
		{"```sql\nSELECT 1\n```", "SELECT 1"},
		{"```\nSELECT 1\n```", "SELECT 1"},
		{"  SELECT 1  ", "SELECT 1"},
		{"", ""},
	}
	for _, c := range cases {
		if got := stripFences(c.in); got != c.want {
			t.Errorf("stripFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
