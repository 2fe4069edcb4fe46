package model

import "github.com/shopspring/decimal"

// OrderStatus identifies the backend order status.
type OrderStatus string

// Statuses this service touches. A fresh order is created as a draft; every
// other status transition belongs to the backend and other clients.
const (
	OrderStatusDraft   OrderStatus = "draft"
	OrderStatusPending OrderStatus = "pending"
)

// Order field names accepted by the backend's field-scoped writes.
const (
	OrderFieldItems  = "items"
	OrderFieldStatus = "status"
)

// OrderLineItem represents one line of a remote order. Fields other than
// ID, ProductID and Quantity are owned by the backend; this service carries
// them through unmodified and never fabricates them.
type OrderLineItem struct {
	ID        int64           `json:"id,omitempty"`
	ProductID int64           `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	Name      string          `json:"name,omitempty"`
	Price     string          `json:"price,omitempty"`
	Total     string          `json:"total,omitempty"`
	TotalTax  string          `json:"totalTax,omitempty"`
}

// RemoteOrder represents the backend's view of an order. All non-item
// fields are opaque to the reconciliation engine; they are never written
// implicitly.
type RemoteOrder struct {
	ID       int64           `json:"id,omitempty"`
	SiteID   int64           `json:"siteId"`
	Status   OrderStatus     `json:"status,omitempty"`
	Currency string          `json:"currency,omitempty"`
	Total    string          `json:"total,omitempty"`
	TotalTax string          `json:"totalTax,omitempty"`
	Items    []OrderLineItem `json:"lineItems"`
}

// UpdateInstruction tells the transport what quantity a product's line item
// should end up with. A zero quantity removes the line item entirely.
type UpdateInstruction struct {
	ProductID int64
	Quantity  decimal.Decimal
}

// IsRemoval reports whether the instruction deletes the product's line item.
func (i UpdateInstruction) IsRemoval() bool {
	return i.Quantity.IsZero()
}
