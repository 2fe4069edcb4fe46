package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pos-sync/internal/model"
)

// SessionRepository defines the interface for cart session persistence.
// A session row carries the cart as last submitted plus the last known
// remote order (the snapshot every reconciliation pass diffs against).
type SessionRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new cart session.
	Create(ctx context.Context, session *model.CartSession) error

	// GetByID retrieves a session with its items and last known remote
	// order. Returns nil when the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.CartSession, error)

	// ReplaceItems replaces the session's cart items within the provided
	// transaction, preserving submission order.
	ReplaceItems(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, items []model.CartItem) error

	// SetLastOrder stores the canonical remote order returned by the last
	// successful sync within the provided transaction.
	SetLastOrder(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, order *model.RemoteOrder) error
}

// ProductRepository defines the interface for the product catalog cache.
type ProductRepository interface {
	// GetAll retrieves catalog products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.CatalogProduct, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id int64) (*model.CatalogProduct, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []int64) ([]model.CatalogProduct, error)

	// ReplaceAll swaps the cached catalog for a fresh snapshot.
	ReplaceAll(ctx context.Context, products []model.CatalogProduct) error
}
