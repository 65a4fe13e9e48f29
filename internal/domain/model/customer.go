// Package model contains domain models passed between layers.
package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Delta bounds accepted by a single score update, inclusive.
var (
	MaxDelta = decimal.NewFromInt(1000)
	MinDelta = decimal.NewFromInt(-1000)
)

// Customer is a ranked participant. ID is immutable and unique; Score is
// mutated only by the service while the customer is unlinked from the
// ranking index.
type Customer struct {
	ID    int64
	Score decimal.Decimal
}

// NewCustomer returns a customer with a zero score. A fresh customer is not
// ranked until its score goes positive.
func NewCustomer(id int64) *Customer {
	return &Customer{ID: id, Score: decimal.Zero}
}

// Ranked reports whether the customer belongs on the board.
func (c *Customer) Ranked() bool {
	return c.Score.IsPositive()
}

// Precedes returns true if a ranks earlier than b: higher score first,
// ties broken by ascending id.
func Precedes(a, b *Customer) bool {
	if cmp := a.Score.Cmp(b.Score); cmp != 0 {
		return cmp > 0
	}
	return a.ID < b.ID
}

// ValidateID rejects non-positive customer ids.
func ValidateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: customer id %d must be positive", ErrInvalidArgument, id)
	}
	return nil
}

// ValidateDelta rejects deltas outside [-1000, 1000].
func ValidateDelta(delta decimal.Decimal) error {
	if delta.GreaterThan(MaxDelta) || delta.LessThan(MinDelta) {
		return fmt.Errorf("%w: delta %s out of range [%s, %s]",
			ErrInvalidArgument, delta, MinDelta, MaxDelta)
	}
	return nil
}

// ValidateWindow rejects inverted or non-positive rank windows.
func ValidateWindow(start, end int) error {
	if start < 1 {
		return fmt.Errorf("%w: start %d must be >= 1", ErrInvalidArgument, start)
	}
	if end < start {
		return fmt.Errorf("%w: end %d must be >= start %d", ErrInvalidArgument, end, start)
	}
	return nil
}

// ValidateNeighbors rejects negative neighbor counts.
func ValidateNeighbors(high, low int) error {
	if high < 0 {
		return fmt.Errorf("%w: high %d must be >= 0", ErrInvalidArgument, high)
	}
	if low < 0 {
		return fmt.Errorf("%w: low %d must be >= 0", ErrInvalidArgument, low)
	}
	return nil
}
