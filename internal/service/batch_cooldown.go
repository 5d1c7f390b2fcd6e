package service

import (
	"context"
	"strings"
	"sync"
	"time"
)

// BatchCooldown es el guard idempotente que limita el recalculo batch de
// matches a una corrida por usuario por ventana. El check-and-set debe ser
// atomico en el storage: requests concurrentes dentro de la ventana se
// rechazan deterministicamente, no por carrera.
type BatchCooldown interface {
	// Acquire intenta tomar la ventana para el usuario. Devuelve si la corrida
	// esta permitida y el proximo instante elegible.
	Acquire(ctx context.Context, userID string) (bool, time.Time, error)
}

// DefaultBatchWindow es la ventana observada en los callers: 24 horas.
const DefaultBatchWindow = 24 * time.Hour

type memoryBatchCooldown struct {
	mu     sync.Mutex
	window time.Duration
	nextAt map[string]time.Time
	now    func() time.Time
}

// NewMemoryBatchCooldown crea el guard en memoria para despliegues sin redis
// y para tests. Misma semantica que la variante redis.
func NewMemoryBatchCooldown(window time.Duration) BatchCooldown {
	if window <= 0 {
		window = DefaultBatchWindow
	}
	return &memoryBatchCooldown{
		window: window,
		nextAt: make(map[string]time.Time),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (c *memoryBatchCooldown) Acquire(_ context.Context, userID string) (bool, time.Time, error) {
	key := strings.ToLower(strings.TrimSpace(userID))
	if key == "" {
		return false, time.Time{}, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if next, ok := c.nextAt[key]; ok && now.Before(next) {
		return false, next, nil
	}
	next := now.Add(c.window)
	c.nextAt[key] = next
	return true, next, nil
}
