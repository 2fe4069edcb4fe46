package model

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem represents a single entry in a point-of-sale cart.
// The same product may appear in multiple entries (repeated "tap to add"
// actions); aggregation collapses duplicates before syncing.
type CartItem struct {
	// RemoteItemID is the backend line item ID once the entry has been
	// synced at least once. Nil for entries never yet synced.
	RemoteItemID *int64          `json:"remoteItemId,omitempty"`
	ProductID    int64           `json:"productId" validate:"required,gt=0"`
	Quantity     decimal.Decimal `json:"quantity" validate:"required"`
}

// CartSession represents one POS transaction in progress: the cart as the
// client last submitted it, plus the last known remote order for the session.
type CartSession struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	SiteID    int64        `json:"siteId" db:"site_id"`
	Items     []CartItem   `json:"items"`
	LastOrder *RemoteOrder `json:"lastOrder,omitempty"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" db:"updated_at"`
}

// CreateSessionRequest represents the request payload for opening a session.
type CreateSessionRequest struct {
	SiteID int64 `json:"siteId" validate:"required,gt=0"`
}

// SubmitCartRequest represents the request payload for submitting the full
// cart state of a session.
type SubmitCartRequest struct {
	Items []CartItem `json:"items" validate:"dive"`
}

var validate = validator.New()

// Validate checks the request against its validate tags.
func (r *CreateSessionRequest) Validate() error {
	return validate.Struct(r)
}

// Validate checks the request against its validate tags. Quantity positivity
// is checked separately by the sync service since validator tags cannot
// inspect decimal values.
func (r *SubmitCartRequest) Validate() error {
	return validate.Struct(r)
}
