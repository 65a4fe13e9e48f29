// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// LeaderboardDependencies defines the interface for leaderboard queries.
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, start, end int) ([]Entry, error)
	Neighbors(ctx context.Context, id int64, high, low int) ([]Entry, error)
	Reset(ctx context.Context)
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps        LeaderboardDependencies
	development bool
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, development bool) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps, development: development}
}

// HandleGetLeaderboard handles GET /leaderboard?start=N&end=M requests.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	start, err := queryInt(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	end, err := queryInt(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	entries, err := h.deps.Leaderboard(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err, h.development)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleLeaderboardSubtree dispatches requests below /leaderboard/:
// DELETE /leaderboard/clear wipes all state (development only; 404
// otherwise) and GET /leaderboard/{id}?high=N&low=M returns the window
// around a customer.
func (h *LeaderboardHandler) HandleLeaderboardSubtree(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/leaderboard/")
	if path == "" || strings.Contains(path, "/") {
		http.NotFound(w, r)
		return
	}

	if path == "clear" {
		h.handleClear(w, r)
		return
	}
	h.handleNeighbors(w, r, path)
}

func (h *LeaderboardHandler) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete || !h.development {
		http.NotFound(w, r)
		return
	}
	h.deps.Reset(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *LeaderboardHandler) handleNeighbors(w http.ResponseWriter, r *http.Request, rawID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid customer id %q", ErrBadRequest, rawID))
		return
	}
	high, err := queryIntDefault(r, "high", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	low, err := queryIntDefault(r, "low", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	entries, err := h.deps.Neighbors(r.Context(), id, high, low)
	if err != nil {
		writeDomainError(w, err, h.development)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// queryInt parses a required integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing %s", ErrBadRequest, name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, name, raw)
	}
	return n, nil
}

// queryIntDefault parses an optional integer query parameter.
func queryIntDefault(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, name, raw)
	}
	return n, nil
}
