package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/repositories/cache"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*cache.RedisBudgetActualsCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisBudgetActualsCache(client, time.Minute), srv
}

func sampleActuals() domain.BudgetActuals {
	return domain.BudgetActuals{
		Budget: domain.Budget{BudgetID: "b-1", Name: "FY2026", Status: domain.BudgetActive},
		Items: []domain.BudgetItem{{
			BudgetItemID: "i-1",
			CategoryID:   "c-1",
			BudgetAmount: decimal.NewFromInt(1000000),
			ActualAmount: decimal.NewFromInt(500000),
			Variance:     decimal.NewFromInt(-500000),
			Percentage:   decimal.NewFromInt(50),
		}},
		TotalBudgeted: decimal.NewFromInt(1000000),
		TotalActual:   decimal.NewFromInt(500000),
		CalculatedAt:  time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC),
	}
}

func TestRedisBudgetActualsCache_SetThenGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newCache(t)

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Zero(t, gen)

	_, ok, err := c.Get(ctx, gen, "b-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, gen, sampleActuals()))

	got, ok, err := c.Get(ctx, gen, "b-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "FY2026", got.Budget.Name)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Percentage.Equal(decimal.NewFromInt(50)))
	assert.True(t, got.TotalActual.Equal(decimal.NewFromInt(500000)))
}

func TestRedisBudgetActualsCache_InvalidateAll(t *testing.T) {
	ctx := context.Background()
	c, _ := newCache(t)
	require.NoError(t, c.Set(ctx, 0, sampleActuals()))

	require.NoError(t, c.InvalidateAll(ctx))

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	_, ok, err := c.Get(ctx, gen, "b-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisBudgetActualsCache_SetAfterInvalidationIsNotServed(t *testing.T) {
	ctx := context.Background()
	c, _ := newCache(t)

	// Snapshot taken before computing; an invalidation lands before the write.
	before, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.InvalidateAll(ctx))
	require.NoError(t, c.Set(ctx, before, sampleActuals()))

	current, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, before, current)
	_, ok, err := c.Get(ctx, current, "b-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisBudgetActualsCache_EntriesExpire(t *testing.T) {
	ctx := context.Background()
	c, srv := newCache(t)
	require.NoError(t, c.Set(ctx, 0, sampleActuals()))

	srv.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, 0, "b-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisBudgetActualsCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	c, srv := newCache(t)
	srv.Close()

	_, err := c.Generation(ctx)
	assert.Error(t, err)
	_, _, err = c.Get(ctx, 0, "b-1")
	assert.Error(t, err)
	assert.Error(t, c.Set(ctx, 0, sampleActuals()))
	assert.Error(t, c.InvalidateAll(ctx))
}
