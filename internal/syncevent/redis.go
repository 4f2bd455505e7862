package syncevent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel events are published on.
const DefaultChannel = "itinerary-sync"

// RedisPublisher publishes events as JSON on a Redis pub/sub channel.
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
}

func NewRedisPublisher(client redis.UniversalClient, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal sync event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish sync event to %s: %w", p.channel, err)
	}
	return nil
}

// Subscriber consumes events from a Redis channel.
type Subscriber struct {
	client  redis.UniversalClient
	channel string
	log     *slog.Logger
}

func NewSubscriber(client redis.UniversalClient, channel string, logger *slog.Logger) *Subscriber {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Subscriber{
		client:  client,
		channel: channel,
		log:     logger.With("component", "sync_subscriber", "channel", channel),
	}
}

// Run dispatches every received event to h until ctx is cancelled.
// Undecodable payloads and handler errors are logged and skipped.
func (s *Subscriber) Run(ctx context.Context, h Handler) error {
	sub := s.client.Subscribe(ctx, s.channel)
	defer sub.Close()

	// Wait for the subscription to be confirmed so no event published
	// after Run starts is missed.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", s.channel, err)
	}
	s.log.InfoContext(ctx, "listening for sync events")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var e Event
			if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
				s.log.WarnContext(ctx, "skip undecodable sync event", slog.String("error", err.Error()))
				continue
			}
			if err := h(ctx, e); err != nil {
				s.log.WarnContext(ctx, "sync handler failed",
					slog.String("operation", string(e.Operation)),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
