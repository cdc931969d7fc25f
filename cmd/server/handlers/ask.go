package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mvaidya/cricstats/nlsql"
	"github.com/mvaidya/cricstats/sqlguard"
)

const maxQuestionLen = 500

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Question string   `json:"question"`
	SQL      string   `json:"sql"`
	Columns  []string `json:"columns"`
	Rows     [][]any  `json:"rows"`
}

// AskHandler is the natural-language query path: question → model → guard →
// store. The guard sits between the model and the database; SQL that fails
// validation is never executed, whatever the model produced.
func AskHandler(env Env, client nlsql.Client, guard *sqlguard.Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		req.Question = strings.TrimSpace(req.Question)
		if req.Question == "" {
			writeJSONError(w, "question is required", http.StatusBadRequest)
			return
		}
		if len(req.Question) > maxQuestionLen {
			writeJSONError(w, "question is too long", http.StatusBadRequest)
			return
		}

		sql, err := client.GenerateSQL(r.Context(), req.Question)
		if err != nil {
			env.Logger.Error("SQL generation failed", "error", err)
			writeJSONError(w, "could not generate a query for that question", http.StatusBadGateway)
			return
		}

		if err := guard.Validate(sql); err != nil {
			writeError(w, env.Logger, err)
			return
		}

		res, err := env.Store.Query(r.Context(), sql)
		if err != nil {
			writeError(w, env.Logger, err)
			return
		}

		env.Logger.Info("answered question", "question", req.Question, "rows", len(res.Rows))
		respondJSON(w, env.Logger, AskResponse{
			Question: req.Question,
			SQL:      sql,
			Columns:  res.Columns,
			Rows:     res.Rows,
		})
	}
}
