package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"pos-sync/internal/model"
	"pos-sync/internal/repository"
)

// repositoryProvider serves the catalog from the Postgres product cache.
type repositoryProvider struct {
	products repository.ProductRepository
	logger   zerolog.Logger
	pageSize int
}

// NewRepositoryProvider creates a Provider backed by the product repository.
func NewRepositoryProvider(products repository.ProductRepository, logger zerolog.Logger) Provider {
	return &repositoryProvider{
		products: products,
		logger:   logger.With().Str("component", "catalog-provider").Logger(),
		pageSize: 500,
	}
}

// Products returns the full cached catalog, paging through the repository.
func (p *repositoryProvider) Products(ctx context.Context) ([]model.CatalogProduct, error) {
	var all []model.CatalogProduct
	offset := 0

	for {
		page, err := p.products.GetAll(ctx, p.pageSize, offset)
		if err != nil {
			p.logger.Error().Err(err).Int("offset", offset).Msg("failed to page catalog")
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		all = append(all, page...)
		if len(page) < p.pageSize {
			break
		}
		offset += p.pageSize
	}

	return all, nil
}

// Refresh loads a snapshot and replaces the cached catalog with it.
func Refresh(ctx context.Context, loader Loader, products repository.ProductRepository, path string, logger zerolog.Logger) error {
	snapshot, err := loader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	if err := products.ReplaceAll(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to store catalog snapshot: %w", err)
	}

	logger.Info().
		Str("snapshot", path).
		Int("products", len(snapshot)).
		Msg("catalog refreshed from snapshot")

	return nil
}
