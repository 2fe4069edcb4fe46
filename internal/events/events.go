package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderSyncedEvent is published after a reconciliation pass has been applied
// remotely and the session's last known order updated.
type OrderSyncedEvent struct {
	SessionID uuid.UUID `json:"sessionId"`
	SiteID    int64     `json:"siteId"`
	OrderID   int64     `json:"orderId"`
	Created   bool      `json:"created"`
	LineItems int       `json:"lineItems"`
	SyncedAt  time.Time `json:"syncedAt"`
}

// Publisher defines the interface for publishing sync events. Publishing is
// best effort: a failed publish never fails the sync that produced it.
type Publisher interface {
	// OrderSynced publishes an order-synced event.
	OrderSynced(ctx context.Context, event OrderSyncedEvent) error

	// Close releases resources held by the publisher.
	Close() error
}

// nopPublisher discards events. Used when event publication is disabled.
type nopPublisher struct{}

// NewNopPublisher creates a publisher that discards all events.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) OrderSynced(context.Context, OrderSyncedEvent) error { return nil }

func (nopPublisher) Close() error { return nil }
