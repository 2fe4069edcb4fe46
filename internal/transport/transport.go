package transport

import (
	"context"
	"fmt"

	"pos-sync/internal/model"
)

// OrderTransport defines the order write operations the sync service needs
// from the commerce backend. Both operations take an explicit field list
// naming exactly which attributes of the submitted order the backend should
// apply; everything else in the payload is ignored rather than overwriting
// remote state. That field list is the concurrency-safety mechanism: an
// update scoped to items can never clobber a status or address changed by
// another client between syncs.
type OrderTransport interface {
	// CreateOrder creates a new order for the site, applying only the named
	// fields, and returns the backend's canonical order.
	CreateOrder(ctx context.Context, siteID int64, order *model.RemoteOrder, fields []string) (*model.RemoteOrder, error)

	// UpdateOrder applies the named fields of the submitted order to an
	// existing order and returns the backend's canonical order.
	UpdateOrder(ctx context.Context, siteID, orderID int64, order *model.RemoteOrder, fields []string) (*model.RemoteOrder, error)
}

// TransportError represents a failure reported by the backend. It is
// surfaced to callers unmodified; no retry happens at this layer.
type TransportError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *TransportError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend rejected request (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("backend rejected request (%d): %s", e.StatusCode, e.Message)
}
