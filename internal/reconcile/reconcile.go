package reconcile

import (
	"github.com/shopspring/decimal"

	"pos-sync/internal/model"
)

// Instructions computes the ordered list of line-item updates that bring
// lastOrder into agreement with cart. lastOrder may be nil for a session
// that has never synced.
//
// Removal instructions come first: one quantity-zero instruction for every
// remote line item whose product is no longer in the cart, in remote item
// order. Upsert instructions follow in first-seen cart order, re-asserting
// the full desired quantity for every cart product rather than a delta
// against previous quantities — applying the result twice is a no-op.
// The two passes target disjoint product sets, so a sequential-apply
// transport deletes before it inserts and never holds a transient
// duplicate line.
//
// Cart products missing from catalog are skipped silently: a product
// deleted server-side mid-session cannot be synced without its price and
// type metadata, and the cart UI reconciles its own product list against
// the catalog independently.
func Instructions(cart []model.CartItem, lastOrder *model.RemoteOrder, catalog []model.ProductInfo) []model.UpdateInstruction {
	agg := Aggregate(cart)

	known := make(map[int64]model.ProductInfo, len(catalog))
	for _, p := range catalog {
		known[p.ProductID()] = p
	}

	var instructions []model.UpdateInstruction

	if lastOrder != nil {
		// removed guards against duplicate remote lines for one product,
		// keeping at most one instruction per product ID.
		removed := make(map[int64]struct{})
		for _, line := range lastOrder.Items {
			if agg.Contains(line.ProductID) {
				continue
			}
			if _, done := removed[line.ProductID]; done {
				continue
			}
			removed[line.ProductID] = struct{}{}
			instructions = append(instructions, model.UpdateInstruction{
				ProductID: line.ProductID,
				Quantity:  decimal.Zero,
			})
		}
	}

	for _, productID := range agg.Order {
		if _, ok := known[productID]; !ok {
			continue
		}
		instructions = append(instructions, model.UpdateInstruction{
			ProductID: productID,
			Quantity:  agg.Quantities[productID],
		})
	}

	return instructions
}
