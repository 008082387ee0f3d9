package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
)

// RedisSink publishes events as JSON on a pub/sub channel for the
// push/email workers.
type RedisSink struct {
	client  *redis.Client
	channel string
}

func NewRedisSink(client *redis.Client, channel string) *RedisSink {
	return &RedisSink{client: client, channel: channel}
}

// ConnectRedisSink pings the server once and returns the sink whatever the
// answer. Every event is its own PUBLISH, so delivery resumes as soon as
// redis is reachable again.
func ConnectRedisSink(ctx context.Context, client *redis.Client, channel string, logger *slog.Logger) *RedisSink {
	if err := client.Ping(ctx).Err(); err != nil {
		logger.WarnContext(ctx, "redis ping failed, events are published once it is reachable",
			"addr", client.Options().Addr,
			"channel", channel,
			"error", err,
		)
	}
	return NewRedisSink(client, channel)
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Deliver(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ev.Type, err)
	}
	return s.client.Publish(ctx, s.channel, body).Err()
}
