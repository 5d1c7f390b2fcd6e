package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisBatchCooldown struct {
	client redisCooldownClient
	window time.Duration
	prefix string
}

// redisCooldownClient es la interfaz minima del cliente redis que necesita el
// guard, para simplificar testing.
type redisCooldownClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	PTTL(ctx context.Context, key string) *redis.DurationCmd
}

// NewRedisBatchCooldown crea el guard respaldado en redis. El check-and-set es
// un unico SET NX PX: atomico en el storage, seguro con multiples instancias
// del server.
func NewRedisBatchCooldown(client *redis.Client, window time.Duration) BatchCooldown {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = DefaultBatchWindow
	}
	return &redisBatchCooldown{
		client: client,
		window: window,
		prefix: "match:batch:cd:",
	}
}

func (c *redisBatchCooldown) Acquire(ctx context.Context, userID string) (bool, time.Time, error) {
	key := strings.ToLower(strings.TrimSpace(userID))
	if key == "" {
		return false, time.Time{}, nil
	}

	now := time.Now().UTC()
	redisKey := c.prefix + key

	acquired, err := c.client.SetNX(ctx, redisKey, now.Format(time.RFC3339Nano), c.window).Result()
	if err != nil {
		return false, time.Time{}, err
	}
	if acquired {
		return true, now.Add(c.window), nil
	}

	// Ventana ocupada: el TTL restante da el proximo instante elegible.
	remaining, err := c.client.PTTL(ctx, redisKey).Result()
	if err != nil || remaining < 0 {
		return false, now.Add(c.window), err
	}
	return false, now.Add(remaining), nil
}
