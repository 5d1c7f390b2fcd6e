package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// MatchEvent notifica a otros servicios que se formo un match nuevo.
type MatchEvent struct {
	ProjectID   string    `json:"project_id"`
	CandidateID string    `json:"candidate_id"`
	Score       float64   `json:"score"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher es el borde hacia el bus de eventos. El motor solo conoce esta
// interfaz; el transporte concreto es intercambiable.
type Publisher interface {
	PublishMatch(ctx context.Context, event MatchEvent) error
}

type disabledPublisher struct {
	reason string
}

// NewDisabledPublisher devuelve un publisher no-op para ambientes sin bus
// configurado. Camino de primera clase, no un efecto de carga condicional.
func NewDisabledPublisher(reason string) Publisher {
	return &disabledPublisher{reason: reason}
}

func (p *disabledPublisher) PublishMatch(context.Context, MatchEvent) error {
	return nil
}

type redisPublisher struct {
	client  redisPublishClient
	channel string
	logger  *zap.Logger
}

type redisPublishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// NewRedisPublisher publica eventos de match por redis pub/sub.
func NewRedisPublisher(client *redis.Client, channel string, logger *zap.Logger) Publisher {
	if client == nil {
		return NewDisabledPublisher("redis client not configured")
	}
	if channel == "" {
		channel = "matches.created"
	}
	return &redisPublisher{client: client, channel: channel, logger: logger}
}

func (p *redisPublisher) PublishMatch(ctx context.Context, event MatchEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		if p.logger != nil {
			p.logger.Warn("publish match event failed", zap.Error(err))
		}
		return err
	}
	return nil
}
