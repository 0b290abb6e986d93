package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultChangeChannel is the redis channel content changes are published on.
const DefaultChangeChannel = "site:changes"

// ChangeEvent describes one successful write.
type ChangeEvent struct {
	Entity  string    `json:"entity"`
	Op      string    `json:"op"`
	ID      string    `json:"id"`
	Version uint64    `json:"version"`
	At      time.Time `json:"at"`
}

// Publisher forwards change events to other processes.
type Publisher interface {
	Publish(ctx context.Context, ev ChangeEvent) error
}

// RedisPublisher publishes change events as JSON on a pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChangeChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev ChangeEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}
	return nil
}
