package cache

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Puntoventa-api/internal/application/capital"
)

var _ capital.BalanceCache = (*RedisBalanceCache)(nil)

// RedisBalanceCache cachea el balance de capital derivado por outlet.
// El valor cacheado es descartable: la fuente de verdad es siempre el
// replay de los asientos, y cada escritura invalida la clave.
type RedisBalanceCache struct {
	client *redis.Client
}

// NewRedisBalanceCache construye el cache sobre un cliente redis propio.
func NewRedisBalanceCache(addr, password string, db int) *RedisBalanceCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisBalanceCache{client: client}
}

func (c *RedisBalanceCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisBalanceCache) Close() error {
	return c.client.Close()
}

func balanceKey(outletID string) string {
	return "capital:balance:" + outletID
}

// Get devuelve el balance cacheado del outlet; found=false en cache miss.
func (c *RedisBalanceCache) Get(ctx context.Context, outletID string) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, balanceKey(outletID)).Result()
	if err == redis.Nil {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("cache get balance: %w", err)
	}
	balance, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("cache parse balance: %w", err)
	}
	return balance, true, nil
}

// Set guarda el balance con TTL.
func (c *RedisBalanceCache) Set(ctx context.Context, outletID string, balance decimal.Decimal, ttl time.Duration) error {
	return c.client.Set(ctx, balanceKey(outletID), balance.String(), ttl).Err()
}

// Invalidate borra la clave del outlet. Se llama después de cada asiento.
func (c *RedisBalanceCache) Invalidate(ctx context.Context, outletID string) error {
	return c.client.Del(ctx, balanceKey(outletID)).Err()
}
