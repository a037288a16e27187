package ws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dhbw-mensa/backend/pkg/logger"
	"github.com/dhbw-mensa/backend/services"

	"github.com/redis/go-redis/v9"
)

type RedisBus struct {
	log     *logger.Logger
	rdb     *redis.Client
	channel string
}

func NewRedisBus(rdb *redis.Client, channel string, log *logger.Logger) *RedisBus {
	if channel == "" {
		channel = "mensa:ratings"
	}
	return &RedisBus{log: log.With("service", "RedisBus"), rdb: rdb, channel: channel}
}

func (b *RedisBus) Publish(ctx context.Context, ev services.RatingEvent) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

// StartForwarder subscribes and calls onEvent for every message until ctx ends.
func (b *RedisBus) StartForwarder(ctx context.Context, onEvent func(services.RatingEvent)) error {
	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				var ev services.RatingEvent
				if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
					b.log.Warn("bad redis rating payload", "error", err)
					continue
				}
				onEvent(ev)
			}
		}
	}()
	return nil
}

func (b *RedisBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
