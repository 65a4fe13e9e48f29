package loadgen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okian/podium/pkg/logger"
)

// Run executes the complete load run: health check, concurrent submission,
// leaderboard fetch, verification.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting podium load run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("updates", cfg.Updates),
		logger.Int("customers", cfg.Customers),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()),
	)

	client := newClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: check service health
	if err := client.Health(ctx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: generate updates
	updates := generateUpdates(ctx, cfg, stats)

	// Step 3: submit updates concurrently and accumulate the expected
	// per-customer sums of the deltas that were actually accepted
	expected := submitUpdates(ctx, cfg, client, updates, stats)

	// Step 4: fetch the leaderboard
	entries, err := client.Leaderboard(ctx, 1, cfg.TopN)
	if err != nil {
		return fmt.Errorf("leaderboard retrieval failed: %w", err)
	}

	// Step 5: verify results
	if err := verifyEntries(ctx, entries, expected, stats); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "load run completed successfully")
	return nil
}

// submitUpdates drains the update list through a bounded worker pool.
// Returns the per-customer sum of every delta the service accepted.
func submitUpdates(ctx context.Context, cfg *Config, client *Client, updates []Update, stats *Stats) map[int64]decimal.Decimal {
	jobs := make(chan Update, cfg.Workers)

	var mu sync.Mutex
	expected := make(map[int64]decimal.Decimal, cfg.Customers)
	submitted, failed := 0, 0

	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				_, err := client.PostScore(ctx, u.CustomerID, u.Delta)

				mu.Lock()
				submitted++
				if err != nil {
					failed++
					if cfg.Verbose {
						logger.Get().Warn(ctx, "update failed",
							logger.Int64("customerID", u.CustomerID),
							logger.Error(err),
						)
					}
				} else {
					expected[u.CustomerID] = expected[u.CustomerID].Add(u.Delta)
				}
				mu.Unlock()
			}
		}()
	}

	for _, u := range updates {
		select {
		case jobs <- u:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return expected
		}
	}
	close(jobs)
	wg.Wait()

	stats.UpdatesSubmitted = submitted
	stats.UpdatesFailed = failed
	return expected
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var updatesPerSecond float64
	if stats.Duration > 0 {
		updatesPerSecond = float64(stats.UpdatesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("updatesGenerated", stats.UpdatesGenerated),
		logger.Int("updatesSubmitted", stats.UpdatesSubmitted),
		logger.Int("updatesFailed", stats.UpdatesFailed),
		logger.Int("entriesVerified", stats.EntriesVerified),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("updatesPerSecond", updatesPerSecond),
	)
}
