// Package types contains common types used across the application
package types

import "github.com/shopspring/decimal"

// Entry represents a leaderboard entry. Ranks are 1-based and dense.
type Entry struct {
	CustomerID int64           `json:"customerId"`
	Score      decimal.Decimal `json:"score"`
	Rank       int32           `json:"rank"`
}
