package model

import "time"

// ProductType identifies the shape of a catalog product.
type ProductType string

// Known product types.
const (
	ProductTypeSimple   ProductType = "simple"
	ProductTypeVariable ProductType = "variable"
	ProductTypeBundle   ProductType = "bundle"
)

// ProductInfo is the capability interface the reconciliation engine needs
// from any product-like value. Concrete catalog types (simple products,
// variations, bundle components) adapt to it at the boundary so the engine
// never branches on product subtype.
type ProductInfo interface {
	// ProductID returns the backend product identifier.
	ProductID() int64

	// Price returns the unit price as a decimal string.
	Price() string

	// Type returns the product type.
	Type() ProductType

	// BundledItemIDs returns the product IDs bundled into this product,
	// empty for non-bundle products.
	BundledItemIDs() []int64
}

// CatalogProduct represents a product in the catalog cache.
type CatalogProduct struct {
	ID           int64       `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	UnitPrice    string      `json:"price" db:"price"`
	ProductType  ProductType `json:"type" db:"product_type"`
	BundledItems []int64     `json:"bundledItems,omitempty" db:"bundled_items"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
}

// ProductID implements ProductInfo.
func (p CatalogProduct) ProductID() int64 { return p.ID }

// Price implements ProductInfo.
func (p CatalogProduct) Price() string { return p.UnitPrice }

// Type implements ProductInfo.
func (p CatalogProduct) Type() ProductType { return p.ProductType }

// BundledItemIDs implements ProductInfo.
func (p CatalogProduct) BundledItemIDs() []int64 { return p.BundledItems }

// CatalogInfos adapts a slice of catalog products to the capability
// interface consumed by the reconciler.
func CatalogInfos(products []CatalogProduct) []ProductInfo {
	infos := make([]ProductInfo, len(products))
	for i, p := range products {
		infos[i] = p
	}
	return infos
}
