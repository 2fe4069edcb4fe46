// Package reconcile computes the line-item changes needed to bring a remote
// order into agreement with a point-of-sale cart. It is pure: no I/O, no
// logging, no retained state.
package reconcile

import (
	"github.com/shopspring/decimal"

	"pos-sync/internal/model"
)

// Aggregation is the deduplicated view of an ordered cart: total quantity
// per product plus the order in which each product first appeared.
type Aggregation struct {
	// Quantities maps product ID to the summed quantity across all cart
	// entries referencing that product.
	Quantities map[int64]decimal.Decimal

	// Order lists each distinct product ID at the position of its first
	// occurrence in the cart. Line items are displayed in add-order, so
	// this ordering must survive aggregation.
	Order []int64
}

// Contains reports whether the product appears in the aggregated cart.
func (a Aggregation) Contains(productID int64) bool {
	_, ok := a.Quantities[productID]
	return ok
}

// Aggregate reduces an ordered cart, which may contain multiple entries for
// the same product, into per-product quantity totals. An empty cart yields
// an empty aggregation. Zero and negative quantities are the caller's
// precondition to reject; they are summed as-is here.
func Aggregate(cart []model.CartItem) Aggregation {
	agg := Aggregation{
		Quantities: make(map[int64]decimal.Decimal, len(cart)),
		Order:      make([]int64, 0, len(cart)),
	}

	for _, item := range cart {
		if total, seen := agg.Quantities[item.ProductID]; seen {
			agg.Quantities[item.ProductID] = total.Add(item.Quantity)
			continue
		}
		agg.Quantities[item.ProductID] = item.Quantity
		agg.Order = append(agg.Order, item.ProductID)
	}

	return agg
}
