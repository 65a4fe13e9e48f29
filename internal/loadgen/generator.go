package loadgen

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okian/podium/pkg/logger"
)

// Delta generation constants.
const (
	deltaMax      = 1000 // inclusive bound accepted by the service
	deltaScale    = 2    // decimal places per generated delta
	deltaScaleDiv = 100
)

// generateUpdates draws random signed decimal deltas over the configured
// customer id set. Deltas stay within the service's accepted range.
func generateUpdates(ctx context.Context, cfg *Config, stats *Stats) []Update {
	logger.Get().Info(ctx, "generating updates",
		logger.Int("updates", cfg.Updates),
		logger.Int("customers", cfg.Customers),
	)

	rnd := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // load generation needs no cryptographic strength
	updates := make([]Update, cfg.Updates)
	for i := range updates {
		// cents in [-1000.00, 1000.00]
		cents := rnd.Int63n(2*deltaMax*deltaScaleDiv+1) - deltaMax*deltaScaleDiv
		updates[i] = Update{
			CustomerID: int64(rnd.Intn(cfg.Customers)) + 1,
			Delta:      decimal.New(cents, -deltaScale),
		}
	}

	stats.UpdatesGenerated = len(updates)
	return updates
}
