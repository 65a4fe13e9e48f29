package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okian/podium/internal/loadgen"
	"github.com/okian/podium/pkg/logger"
)

// Default configuration constants.
const (
	defaultUpdates    = 10000
	defaultCustomers  = 100
	defaultTopN       = 50
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		updates   = flag.Int("updates", defaultUpdates, "Number of score updates to submit")
		customers = flag.Int("customers", defaultCustomers, "Size of the customer id set")
		topN      = flag.Int("top", defaultTopN, "Number of leaderboard entries to verify")
		workers   = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Deltas round-trip through URL paths and JSON as plain numbers
	decimal.MarshalJSONWithoutQuotes = true

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &loadgen.Config{
		BaseURL:   *baseURL,
		Customers: *customers,
		Updates:   *updates,
		Workers:   *workers,
		TopN:      *topN,
		Timeout:   *timeout,
		Verbose:   *verbose,
	}

	if err := loadgen.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("load run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
