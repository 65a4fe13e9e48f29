// Package repository defines the ranking store interface and errors.
package repository

import "time"

// Option applies a configuration option to the SkipStore.
type Option func(*SkipStore)

// WithGaugeRefreshInterval sets the interval for background gauge updates.
func WithGaugeRefreshInterval(interval time.Duration) Option {
	return func(s *SkipStore) {
		if interval > 0 {
			s.refreshInterval = interval
		}
	}
}

// WithSeed fixes the level-draw seed. Useful for reproducible tests and
// benchmarks; production stores keep the default time-based seed.
func WithSeed(seed int64) Option {
	return func(s *SkipStore) {
		s.seed = seed
	}
}
