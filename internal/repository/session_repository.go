package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"pos-sync/internal/model"
)

// sessionRepository implements the SessionRepository interface using PostgreSQL.
type sessionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSessionRepository creates a new PostgreSQL-backed session repository.
func NewSessionRepository(pool *pgxpool.Pool, logger zerolog.Logger) SessionRepository {
	return &sessionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "session").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *sessionRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new cart session.
func (r *sessionRepository) Create(ctx context.Context, session *model.CartSession) error {
	query := `
		INSERT INTO cart_sessions (id, site_id, last_order, created_at, updated_at)
		VALUES ($1, $2, NULL, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, session.ID, session.SiteID, session.CreatedAt, session.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("session_id", session.ID.String()).
			Msg("failed to create session")
		return fmt.Errorf("failed to create session: %w", err)
	}

	r.logger.Debug().
		Str("session_id", session.ID.String()).
		Int64("site_id", session.SiteID).
		Msg("session created")

	return nil
}

// GetByID retrieves a session with its items and last known remote order.
func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CartSession, error) {
	sessionQuery := `
		SELECT id, site_id, last_order, created_at, updated_at
		FROM cart_sessions
		WHERE id = $1
	`

	var session model.CartSession
	var lastOrder []byte
	err := r.pool.QueryRow(ctx, sessionQuery, id).Scan(
		&session.ID,
		&session.SiteID,
		&lastOrder,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("session_id", id.String()).Msg("session not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to query session")
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	if len(lastOrder) > 0 {
		var order model.RemoteOrder
		if err := json.Unmarshal(lastOrder, &order); err != nil {
			r.logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to decode last order")
			return nil, fmt.Errorf("failed to decode last order: %w", err)
		}
		session.LastOrder = &order
	}

	itemsQuery := `
		SELECT remote_item_id, product_id, quantity::text
		FROM cart_items
		WHERE session_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.CartItem
		var quantity string
		if err := rows.Scan(&item.RemoteItemID, &item.ProductID, &quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		item.Quantity, err = decimal.NewFromString(quantity)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for product %d: %w", item.ProductID, err)
		}
		session.Items = append(session.Items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return &session, nil
}

// ReplaceItems replaces the session's cart items within the provided transaction.
func (r *sessionRepository) ReplaceItems(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, items []model.CartItem) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID); err != nil {
		r.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to clear cart items")
		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO cart_items (id, session_id, position, remote_item_id, product_id, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for position, item := range items {
		batch.Queue(query, uuid.New(), sessionID, position, item.RemoteItemID, item.ProductID, item.Quantity.String())
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("session_id", sessionID.String()).
				Int64("product_id", items[i].ProductID).
				Msg("failed to insert cart item")
			return fmt.Errorf("failed to insert cart item: %w", err)
		}
	}

	r.logger.Debug().
		Str("session_id", sessionID.String()).
		Int("count", len(items)).
		Msg("cart items replaced")

	return nil
}

// SetLastOrder stores the canonical remote order within the provided transaction.
func (r *sessionRepository) SetLastOrder(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, order *model.RemoteOrder) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode last order: %w", err)
	}

	query := `
		UPDATE cart_sessions
		SET last_order = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, sessionID, payload)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to store last order")
		return fmt.Errorf("failed to store last order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSessionNotFound
	}

	r.logger.Debug().
		Str("session_id", sessionID.String()).
		Int64("order_id", order.ID).
		Msg("last order stored")

	return nil
}
