package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"pos-sync/internal/model"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// GetAll retrieves catalog products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.CatalogProduct, error) {
	query := `
		SELECT id, name, price, product_type, bundled_items, updated_at
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return r.scanProducts(rows)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.CatalogProduct, error) {
	query := `
		SELECT id, name, price, product_type, bundled_items, updated_at
		FROM products
		WHERE id = $1
	`

	var p model.CatalogProduct
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.UnitPrice, &p.ProductType, &p.BundledItems, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.CatalogProduct, error) {
	if len(ids) == 0 {
		return []model.CatalogProduct{}, nil
	}

	query := `
		SELECT id, name, price, product_type, bundled_items, updated_at
		FROM products
		WHERE id = ANY($1)
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	return r.scanProducts(rows)
}

// ReplaceAll swaps the cached catalog for a fresh snapshot.
func (r *productRepository) ReplaceAll(ctx context.Context, products []model.CatalogProduct) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		r.logger.Error().Err(err).Msg("failed to clear product catalog")
		return fmt.Errorf("failed to clear product catalog: %w", err)
	}

	query := `
		INSERT INTO products (id, name, price, product_type, bundled_items, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(query, p.ID, p.Name, p.UnitPrice, p.ProductType, p.BundledItems, p.UpdatedAt)
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < len(products); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			r.logger.Error().Err(err).Int64("product_id", products[i].ID).Msg("failed to insert product")
			return fmt.Errorf("failed to insert product: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to flush product batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit catalog snapshot")
		return fmt.Errorf("failed to commit catalog snapshot: %w", err)
	}

	r.logger.Info().Int("count", len(products)).Msg("product catalog replaced")

	return nil
}

// scanProducts reads catalog product rows.
func (r *productRepository) scanProducts(rows pgx.Rows) ([]model.CatalogProduct, error) {
	var products []model.CatalogProduct
	for rows.Next() {
		var p model.CatalogProduct
		err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.ProductType, &p.BundledItems, &p.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
