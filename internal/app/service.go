// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	repository "github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultMaxWindow = 100
)

// Service implements the API dependencies for the leaderboard system. It
// owns the id map (every customer ever touched, including those whose score
// has dropped to zero or below) and the ranking board (only customers with
// a strictly positive score).
type Service struct {
	mu sync.RWMutex

	// Core components
	board     repository.Store
	customers sync.Map // int64 -> *model.Customer

	// Configuration
	maxWindow int
	storeOpts []repository.Option

	// State
	started       bool
	customerCount atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMaxWindow caps the number of entries a single query may return.
func WithMaxWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxWindow = n
		}
	}
}

// WithStoreOptions forwards options to the ranking store built on Start.
func WithStoreOptions(opts ...repository.Option) Option {
	return func(s *Service) {
		s.storeOpts = opts
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxWindow: defaultMaxWindow,
		logger:    nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting leaderboard service...")

	s.board = repository.NewSkipStore(ctx, s.storeOpts...)

	s.started = true
	s.logger.Info(ctx, "leaderboard service started",
		logger.Int("maxWindow", s.maxWindow),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping leaderboard service...")

	if s.board != nil {
		if closer, ok := s.board.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "leaderboard service stopped")
}

// UpdateScore applies a signed delta to a customer's score and returns the
// new score. The customer is created at score zero on first touch. The
// unlink/mutate/relink composite is atomic on the board, so concurrent
// updates of the same id serialize and readers never see a positive-score
// customer missing from the ranking.
func (s *Service) UpdateScore(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	if err := model.ValidateID(id); err != nil {
		metrics.RecordScoreRejection()
		return decimal.Zero, err
	}
	if err := model.ValidateDelta(delta); err != nil {
		metrics.RecordScoreRejection()
		return decimal.Zero, err
	}

	actual, loaded := s.customers.LoadOrStore(id, model.NewCustomer(id))
	if !loaded {
		metrics.UpdateCustomersTotal(int(s.customerCount.Add(1)))
	}
	c, ok := actual.(*model.Customer)
	if !ok {
		return decimal.Zero, fmt.Errorf("unexpected customer type %T", actual)
	}

	var newScore decimal.Decimal
	if err := s.board.Update(ctx, c, func() bool {
		c.Score = c.Score.Add(delta)
		newScore = c.Score
		return c.Ranked()
	}); err != nil {
		metrics.RecordErrorByComponent("service", "update_failed")
		return decimal.Zero, err
	}

	metrics.RecordScoreUpdate()
	s.logger.Debug(ctx, "score updated",
		logger.Int64("customerID", id),
		logger.String("delta", delta.String()),
		logger.String("score", newScore.String()),
	)
	return newScore, nil
}

// Leaderboard returns the dense rank window [start, end], 1-based and
// inclusive. A start beyond the board yields an empty list; a window
// reaching past the end is truncated.
func (s *Service) Leaderboard(ctx context.Context, start, end int) ([]types.Entry, error) {
	if err := model.ValidateWindow(start, end); err != nil {
		return nil, err
	}
	if window := end - start + 1; window > s.maxWindow {
		return nil, fmt.Errorf("%w: window %d exceeds limit %d",
			model.ErrInvalidArgument, window, s.maxWindow)
	}

	metrics.RecordRangeQuery()
	return toAPI(s.board.RangeByRank(ctx, start-1, end-start+1)), nil
}

// Neighbors returns the window around a customer's rank r:
// [max(1, r-high) .. min(boardSize, r+low)]. high expands toward better
// ranks, low toward worse ones.
func (s *Service) Neighbors(ctx context.Context, id int64, high, low int) ([]types.Entry, error) {
	if err := model.ValidateID(id); err != nil {
		return nil, err
	}
	if err := model.ValidateNeighbors(high, low); err != nil {
		return nil, err
	}
	if window := high + low + 1; window > s.maxWindow {
		return nil, fmt.Errorf("%w: window %d exceeds limit %d",
			model.ErrInvalidArgument, window, s.maxWindow)
	}

	v, ok := s.customers.Load(id)
	if !ok {
		return nil, fmt.Errorf("%w: customer %d", ErrNotFound, id)
	}
	c, ok := v.(*model.Customer)
	if !ok {
		return nil, fmt.Errorf("unexpected customer type %T", v)
	}

	entry, err := s.board.Rank(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// known customer whose score is not positive
			return nil, fmt.Errorf("%w: customer %d is not ranked", ErrNotFound, id)
		}
		metrics.RecordErrorByComponent("service", "rank_failed")
		return nil, err
	}

	metrics.RecordRankQuery()
	first := entry.Rank - high
	if first < 1 {
		first = 1
	}
	last := entry.Rank + low
	return toAPI(s.board.RangeByRank(ctx, first-1, last-first+1)), nil
}

// Reset empties both the board and the id map. Exposed over HTTP only in
// the development profile.
func (s *Service) Reset(ctx context.Context) {
	s.board.Clear(ctx)
	s.customers.Range(func(key, _ any) bool {
		s.customers.Delete(key)
		return true
	})
	s.customerCount.Store(0)
	metrics.UpdateCustomersTotal(0)
	s.logger.Info(ctx, "leaderboard reset")
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":   s.started,
		"maxWindow": s.maxWindow,
	}

	if s.started {
		ctx := context.Background()
		boardSize := s.board.Len(ctx)
		customers := int(s.customerCount.Load())

		stats["boardSize"] = boardSize
		stats["customers"] = customers

		// Update metrics
		metrics.UpdateBoardSize(boardSize)
		metrics.UpdateCustomersTotal(customers)
	}

	return stats
}

// toAPI converts store snapshots to the wire shape.
func toAPI(entries []repository.Entry) []types.Entry {
	out := make([]types.Entry, len(entries))
	for i, e := range entries {
		out[i] = types.Entry{
			CustomerID: e.CustomerID,
			Score:      e.Score,
			Rank:       int32(e.Rank),
		}
	}
	return out
}
