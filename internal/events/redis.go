package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// streamClient captures the subset of go-redis commands the publisher relies on
type streamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Close() error
}

// RedisConfig describes the Redis Streams target
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Stream   string
	MaxLen   int64
}

// RedisPublisher appends auction events to a Redis stream
type RedisPublisher struct {
	client streamClient
	stream string
	maxLen int64
}

// NewRedisPublisher connects a publisher to the configured stream
func NewRedisPublisher(cfg RedisConfig) *RedisPublisher {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	return newRedisPublisher(client, cfg.Stream, cfg.MaxLen)
}

func newRedisPublisher(client streamClient, stream string, maxLen int64) *RedisPublisher {
	if stream == "" {
		stream = "marketplace:auctions"
	}
	return &RedisPublisher{client: client, stream: stream, maxLen: maxLen}
}

// Publish XADDs the event; the stream is trimmed approximately when MaxLen is set
func (p *RedisPublisher) Publish(ctx context.Context, event AuctionEvent) error {
	payload, err := encode(event)
	if err != nil {
		return fmt.Errorf("redis publish %s: encode: %w", event.Type, err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"id":         event.ID,
			"type":       event.Type,
			"auction_id": event.AuctionID,
			"payload":    string(payload),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", event.Type, err)
	}
	return nil
}

// Close closes the underlying redis client
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
