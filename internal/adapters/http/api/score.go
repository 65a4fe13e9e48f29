// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ScoreDependencies defines the interface for score update operations.
type ScoreDependencies interface {
	UpdateScore(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error)
}

// ScoreHandler handles score update requests.
type ScoreHandler struct {
	deps        ScoreDependencies
	development bool
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies, development bool) *ScoreHandler {
	return &ScoreHandler{deps: deps, development: development}
}

// HandlePostScore handles POST /customer/{id}/score/{delta} requests.
// The response body is the new score as plain decimal text.
func (h *ScoreHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	// Extract path parameters after /customer/
	rest := strings.TrimPrefix(r.URL.Path, "/customer/")
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[1] != "score" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid customer id %q", ErrBadRequest, parts[0]))
		return
	}
	delta, err := decimal.NewFromString(parts[2])
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid delta %q", ErrBadRequest, parts[2]))
		return
	}

	newScore, err := h.deps.UpdateScore(r.Context(), id, delta)
	if err != nil {
		writeDomainError(w, err, h.development)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(newScore.String()))
}
