package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

const balanceTTL = 5 * time.Minute

// BalanceCache caches wallet balances for read endpoints. Settlement
// code never consults it for preconditions.
type BalanceCache struct {
	client *redis.Client
	prefix string
}

func NewBalanceCache(client *redis.Client) *BalanceCache {
	return &BalanceCache{
		client: client,
		prefix: "wallet:",
	}
}

func (c *BalanceCache) SetBalance(ctx context.Context, userID string, balance decimal.Decimal) error {
	if err := c.client.Set(ctx, c.balanceKey(userID), balance.String(), balanceTTL).Err(); err != nil {
		return fmt.Errorf("failed to set balance in redis: %w", err)
	}
	return nil
}

func (c *BalanceCache) GetBalance(ctx context.Context, userID string) (decimal.Decimal, bool, error) {
	raw, err := c.client.Get(ctx, c.balanceKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to get balance from redis: %w", err)
	}

	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to parse balance from redis: %w", err)
	}
	return balance, true, nil
}

func (c *BalanceCache) balanceKey(userID string) string {
	return c.prefix + userID + ":balance"
}
