// Package repository defines the ranking store interface and errors.
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/okian/podium/internal/domain/model"
)

// Entry is a point-in-time snapshot of a ranked customer. Snapshots are
// taken under the store's read lock so callers never touch live customer
// state after the lock is released.
type Entry struct {
	Rank       int
	CustomerID int64
	Score      decimal.Decimal
}

// Store provides read/write access to the ranking state. The element order
// is total: higher score first, ties broken by ascending customer id.
type Store interface {
	// Add links a customer into the ranking index. The caller must ensure
	// the customer is not already linked and that its score does not change
	// while linked.
	Add(ctx context.Context, c *model.Customer) error

	// Remove unlinks a customer. Returns false if no element with an equal
	// ranking key is linked.
	Remove(ctx context.Context, c *model.Customer) (bool, error)

	// Update atomically relinks a customer around a key mutation: the
	// customer is unlinked (if linked), mutate runs, and the customer is
	// linked again iff mutate returns true. The whole composite holds the
	// write lock, so no reader can observe the intermediate state.
	Update(ctx context.Context, c *model.Customer, mutate func() bool) error

	// Rank returns the customer's 1-based rank and score snapshot.
	// Returns ErrNotFound if the customer is not linked.
	Rank(ctx context.Context, c *model.Customer) (Entry, error)

	// RangeByRank returns up to count entries starting at the 0-based rank
	// index start, in rank order. Invalid bounds yield an empty slice.
	RangeByRank(ctx context.Context, start, count int) []Entry

	// Contains reports whether the customer is linked.
	Contains(ctx context.Context, c *model.Customer) bool

	// Len returns the number of linked customers.
	Len(ctx context.Context) int

	// Clear unlinks everything.
	Clear(ctx context.Context)

	// Ascend calls fn for each entry in rank order until fn returns false.
	// The read lock is held for the whole iteration.
	Ascend(ctx context.Context, fn func(Entry) bool)

	// CopyTo fills dst with all entries in rank order. Returns ErrShortDst
	// if dst cannot hold them.
	CopyTo(ctx context.Context, dst []Entry) error
}
