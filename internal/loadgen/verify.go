package loadgen

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/okian/podium/pkg/logger"
)

// verifyEntries checks the fetched leaderboard against the local model:
// every entry's score must equal the sum of its accepted deltas, only
// positive-score customers may appear, and entries must be ordered by score
// descending with ties broken by ascending id and densely ranked from 1.
func verifyEntries(ctx context.Context, entries []Entry, expected map[int64]decimal.Decimal, stats *Stats) error {
	logger.Get().Info(ctx, "verifying leaderboard", logger.Int("entries", len(entries)))

	for i, e := range entries {
		want, ok := expected[e.CustomerID]
		if !ok {
			return fmt.Errorf("entry %d: customer %d was never updated", i, e.CustomerID)
		}
		if !e.Score.Equal(want) {
			return fmt.Errorf("customer %d: score %s, want %s", e.CustomerID, e.Score, want)
		}
		if !e.Score.IsPositive() {
			return fmt.Errorf("customer %d: non-positive score %s on the board", e.CustomerID, e.Score)
		}
		if int(e.Rank) != i+1 {
			return fmt.Errorf("entry %d: rank %d, want %d", i, e.Rank, i+1)
		}
		if i > 0 {
			prev := entries[i-1]
			if cmp := prev.Score.Cmp(e.Score); cmp < 0 || (cmp == 0 && prev.CustomerID >= e.CustomerID) {
				return fmt.Errorf("entries %d and %d out of order", i-1, i)
			}
		}
	}

	stats.EntriesVerified = len(entries)
	return nil
}
