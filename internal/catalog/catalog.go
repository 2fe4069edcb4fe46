package catalog

import (
	"context"

	"pos-sync/internal/model"
)

// Provider supplies the product catalog consumed by a reconciliation pass.
// The sync service asks for a fresh catalog on every pass; providers decide
// how fresh their answer is.
type Provider interface {
	// Products returns the current catalog.
	Products(ctx context.Context) ([]model.CatalogProduct, error)
}

// Loader defines the interface for loading catalog snapshot files. A
// snapshot is a gzipped NDJSON file with one product record per line.
type Loader interface {
	// Load reads a snapshot file and returns its product records.
	Load(ctx context.Context, path string) ([]model.CatalogProduct, error)
}
