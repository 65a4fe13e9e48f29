// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// UpdateScore applies a signed delta and returns the new score.
	UpdateScore(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error)

	// Read operations expose leaderboard data.
	Leaderboard(ctx context.Context, start, end int) ([]Entry, error)
	Neighbors(ctx context.Context, id int64, high, low int) ([]Entry, error)

	// Reset wipes all leaderboard state. Only routed in development.
	Reset(ctx context.Context)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	scoreHandler       *ScoreHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers. development enables
// the destructive clear route and verbose error bodies.
func NewServer(deps Dependencies, statsProvider StatsProvider, development bool) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		scoreHandler:       NewScoreHandler(deps, development),
		leaderboardHandler: NewLeaderboardHandler(deps, development),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/customer/", MetricsMiddleware(RequestIDMiddleware(s.scoreHandler.HandlePostScore), "score"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(RequestIDMiddleware(s.leaderboardHandler.HandleGetLeaderboard), "leaderboard"))
	mux.HandleFunc("/leaderboard/", MetricsMiddleware(RequestIDMiddleware(s.leaderboardHandler.HandleLeaderboardSubtree), "leaderboard_id"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates core error kinds to HTTP statuses:
// invalid-argument -> 400, not-found -> 404, anything else -> 500 with an
// opaque body unless running in development.
func writeDomainError(w http.ResponseWriter, err error, development bool) {
	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		if development {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", errServiceBusy)
	}
}
