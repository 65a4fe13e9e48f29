// Package loadgen drives the leaderboard HTTP API with random score
// updates and verifies the resulting ranking against a local model.
package loadgen

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config holds configuration for a load run.
type Config struct {
	BaseURL   string        // Base URL of the service
	Customers int           // Size of the customer id set to draw from
	Updates   int           // Total number of score updates to submit
	Workers   int           // Number of concurrent submission workers
	TopN      int           // Number of leaderboard entries to fetch for verification
	Timeout   time.Duration // HTTP request timeout
	Verbose   bool          // Enable verbose logging
}

// Update is a single score mutation to submit.
type Update struct {
	CustomerID int64
	Delta      decimal.Decimal
}

// Entry mirrors the leaderboard read shape.
type Entry struct {
	CustomerID int64           `json:"customerId"`
	Score      decimal.Decimal `json:"score"`
	Rank       int32           `json:"rank"`
}

// Stats holds run statistics.
type Stats struct {
	UpdatesGenerated int
	UpdatesSubmitted int
	UpdatesFailed    int
	EntriesVerified  int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
