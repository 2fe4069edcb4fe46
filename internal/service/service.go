package service

import (
	"context"

	"github.com/google/uuid"

	"pos-sync/internal/model"
)

// SyncService defines operations for cart session management and
// cart-to-order reconciliation.
type SyncService interface {
	// CreateSession opens a new cart session for a site.
	CreateSession(ctx context.Context, siteID int64) (*model.CartSession, error)

	// GetSession retrieves a session with its cart and last known remote
	// order. Returns nil when the session does not exist.
	GetSession(ctx context.Context, id uuid.UUID) (*model.CartSession, error)

	// SyncCart runs one reconciliation pass for the session against the
	// submitted cart state and returns the backend's canonical order.
	// Passes for the same session are serialised; transport failures are
	// propagated without touching the session's last known order.
	SyncCart(ctx context.Context, sessionID uuid.UUID, items []model.CartItem) (*model.RemoteOrder, error)
}

// ProductService defines operations for the product catalog cache.
type ProductService interface {
	// GetAll retrieves catalog products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.CatalogProduct, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.CatalogProduct, error)
}
