package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "ledger:budget_actuals"
	generationKey = keyPrefix + ":gen"
)

// RedisBudgetActualsCache stores computed budget actuals as JSON under a generation
// number. Bumping the generation invalidates every cached budget at once; stale keys
// expire with their TTL.
type RedisBudgetActualsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ portsrepo.BudgetActualsCache = (*RedisBudgetActualsCache)(nil)

func NewRedisBudgetActualsCache(client redis.Cmdable, ttl time.Duration) *RedisBudgetActualsCache {
	return &RedisBudgetActualsCache{client: client, ttl: ttl}
}

// Generation returns the current cache generation. Callers read it before computing and
// pass it to Get and Set, so a value computed before an invalidation is never served after it.
func (c *RedisBudgetActualsCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

func key(gen int64, budgetID string) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, gen, budgetID)
}

// Get returns the actuals of a budget cached under gen, reporting false on a miss.
func (c *RedisBudgetActualsCache) Get(ctx context.Context, gen int64, budgetID string) (*domain.BudgetActuals, bool, error) {
	raw, err := c.client.Get(ctx, key(gen, budgetID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached actuals of budget %s: %w", budgetID, err)
	}

	var actuals domain.BudgetActuals
	if err := json.Unmarshal(raw, &actuals); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached actuals of budget %s: %w", budgetID, err)
	}
	return &actuals, true, nil
}

// Set stores actuals under gen. A gen that has since been invalidated is written but never read.
func (c *RedisBudgetActualsCache) Set(ctx context.Context, gen int64, actuals domain.BudgetActuals) error {
	raw, err := json.Marshal(actuals)
	if err != nil {
		return fmt.Errorf("failed to encode actuals of budget %s: %w", actuals.Budget.BudgetID, err)
	}
	if err := c.client.Set(ctx, key(gen, actuals.Budget.BudgetID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache actuals of budget %s: %w", actuals.Budget.BudgetID, err)
	}
	return nil
}

// InvalidateAll moves to a new generation so no previously cached entry is served again.
func (c *RedisBudgetActualsCache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate budget actuals cache: %w", err)
	}
	return nil
}
