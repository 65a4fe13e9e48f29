package repository

import (
	"context"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/okian/podium/internal/domain/model"
)

func benchStore(b *testing.B, n int) (*SkipStore, []*model.Customer) {
	b.Helper()
	ctx := context.Background()
	store := NewSkipStore(ctx, WithSeed(42))
	b.Cleanup(func() { _ = store.Close() })

	rnd := rand.New(rand.NewSource(1))
	customers := make([]*model.Customer, n)
	for i := range customers {
		customers[i] = &model.Customer{
			ID:    int64(i) + 1,
			Score: decimal.NewFromInt(int64(rnd.Intn(1_000_000)) + 1),
		}
		if err := store.Add(ctx, customers[i]); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
	return store, customers
}

func BenchmarkSkipStore_Add(b *testing.B) {
	ctx := context.Background()
	store := NewSkipStore(ctx, WithSeed(42))
	b.Cleanup(func() { _ = store.Close() })

	rnd := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := &model.Customer{
			ID:    int64(i) + 1,
			Score: decimal.NewFromInt(int64(rnd.Intn(1_000_000)) + 1),
		}
		if err := store.Add(ctx, c); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkSkipStore_Rank(b *testing.B) {
	ctx := context.Background()
	store, customers := benchStore(b, 100_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := customers[i%len(customers)]
		if _, err := store.Rank(ctx, c); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkSkipStore_RangeByRank(b *testing.B) {
	ctx := context.Background()
	store, _ := benchStore(b, 100_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		start := i % 99_900
		if got := store.RangeByRank(ctx, start, 100); len(got) != 100 {
			b.Fatalf("expected 100 entries, got %d", len(got))
		}
	}
}

func BenchmarkSkipStore_Update(b *testing.B) {
	ctx := context.Background()
	store, customers := benchStore(b, 100_000)

	rnd := rand.New(rand.NewSource(2))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := customers[i%len(customers)]
		delta := decimal.NewFromInt(int64(rnd.Intn(2000)) - 1000)
		if err := store.Update(ctx, c, func() bool {
			c.Score = c.Score.Add(delta)
			return c.Score.IsPositive()
		}); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
