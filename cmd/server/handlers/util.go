package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mvaidya/cricstats/cache"
	"github.com/mvaidya/cricstats/cricket"
	"github.com/mvaidya/cricstats/sqlguard"
	"github.com/mvaidya/cricstats/store"
)

// Env carries the shared dependencies every handler factory receives.
type Env struct {
	Store  store.Store
	Cache  cache.Cache
	TTL    time.Duration
	Logger *slog.Logger
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// writeError maps the error taxonomy onto HTTP statuses: a bad filter is the
// caller's fault, unsafe generated SQL is unprocessable, a store failure is a
// bad gateway. A store failure must never look like an empty result.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case cricket.IsValidation(err):
		writeJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, sqlguard.ErrUnsafeSQL):
		logger.Warn("rejected generated SQL", "error", err)
		writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	case cricket.IsStore(err):
		logger.Error("store failure", "error", err)
		writeJSONError(w, "backing store unavailable", http.StatusBadGateway)
	default:
		logger.Error("request failed", "error", err)
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// parseFilter reads the common query parameters into a validated filter. A
// {team} path segment takes precedence over a team query parameter so that
// validation sees the team the route addresses.
func parseFilter(r *http.Request) (cricket.Filter, error) {
	f := cricket.Filter{
		Team:     r.URL.Query().Get("team"),
		Opponent: r.URL.Query().Get("opponent"),
		Player:   r.URL.Query().Get("player"),
	}
	if team := r.PathValue("team"); team != "" {
		f.Team = team
	}
	var err error
	if f.Season, err = intParam(r, "season"); err != nil {
		return f, err
	}
	if f.MinMatches, err = intParam(r, "min_matches"); err != nil {
		return f, err
	}
	if f.Limit, err = intParam(r, "limit"); err != nil {
		return f, err
	}
	f = f.WithDefaults()
	return f, f.Validate()
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &cricket.ValidationError{Field: name, Reason: "must be an integer"}
	}
	return n, nil
}

// fetchCached returns the cached value for key, or computes, caches and
// returns it. Cache failures are logged and treated as misses: the cache is
// an optimization, never a source of truth.
func fetchCached[T any](ctx context.Context, env Env, key string, compute func(context.Context) (T, error)) (T, error) {
	var zero T
	if raw, err := env.Cache.Get(ctx, key); err == nil {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		env.Logger.Warn("discarding undecodable cache entry", "key", key)
	} else if !errors.Is(err, cache.ErrMiss) {
		env.Logger.Warn("cache read failed", "key", key, "error", err)
	}

	v, err := compute(ctx)
	if err != nil {
		return zero, err
	}
	if raw, err := json.Marshal(v); err == nil {
		if err := env.Cache.Set(ctx, key, raw, env.TTL); err != nil {
			env.Logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return v, nil
}
