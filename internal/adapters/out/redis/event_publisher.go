// Package redis publishes order lifecycle events to Redis pub/sub channels.
// Events are a best-effort notification feed for downstream consumers such as
// customer messaging and dashboards; business state never depends on them.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"laundry/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const channelPrefix = "laundry:events:"

// Channel returns the pub/sub channel carrying one tenant's events.
// Channels are per tenant, so a consumer subscribed to one tenant's feed can
// never observe another tenant's activity.
func Channel(tenant string) string {
	return channelPrefix + tenant
}

// EventPublisher sends order events to the owning tenant's channel. Publish
// failures are logged and swallowed; callers treat the feed as fire-and-forget.
type EventPublisher struct {
	client *goredis.Client
	logger *slog.Logger
}

// NewEventPublisher creates a publisher on top of an existing Redis client.
func NewEventPublisher(client *goredis.Client, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		client: client,
		logger: logger.With("component", "event-publisher"),
	}
}

// Publish serializes the event and sends it to the tenant's channel.
func (p *EventPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "event serialization failed",
			"kind", event.Kind, "order_id", event.OrderID, "error", err)
		return nil
	}

	if err := p.client.Publish(ctx, Channel(event.Tenant), payload).Err(); err != nil {
		p.logger.ErrorContext(ctx, "event publish failed",
			"kind", event.Kind, "order_id", event.OrderID, "error", err)
	}
	return nil
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}
