package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pos-sync/internal/catalog"
	"pos-sync/internal/events"
	"pos-sync/internal/model"
	"pos-sync/internal/reconcile"
	"pos-sync/internal/repository"
	"pos-sync/internal/transport"
)

// syncService implements SyncService.
type syncService struct {
	sessions  repository.SessionRepository
	catalog   catalog.Provider
	orders    transport.OrderTransport
	publisher events.Publisher
	logger    zerolog.Logger

	// locks serialises reconciliation passes per session: a pass is
	// computed against a specific last-order snapshot, so a second pass
	// launched before the first completes could revert remote state.
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewSyncService creates a new sync service.
func NewSyncService(
	sessions repository.SessionRepository,
	catalogProvider catalog.Provider,
	orders transport.OrderTransport,
	publisher events.Publisher,
	logger zerolog.Logger,
) SyncService {
	return &syncService{
		sessions:  sessions,
		catalog:   catalogProvider,
		orders:    orders,
		publisher: publisher,
		logger:    logger.With().Str("service", "sync").Logger(),
		locks:     make(map[uuid.UUID]*sync.Mutex),
	}
}

// CreateSession opens a new cart session for a site.
func (s *syncService) CreateSession(ctx context.Context, siteID int64) (*model.CartSession, error) {
	now := time.Now()
	session := &model.CartSession{
		ID:        uuid.New(),
		SiteID:    siteID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Error().Err(err).Int64("site_id", siteID).Msg("failed to create session")
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info().
		Str("session_id", session.ID.String()).
		Int64("site_id", siteID).
		Msg("cart session created")

	return session, nil
}

// GetSession retrieves a session with its cart and last known remote order.
func (s *syncService) GetSession(ctx context.Context, id uuid.UUID) (*model.CartSession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to get session")
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// SyncCart runs one reconciliation pass for the session.
func (s *syncService) SyncCart(ctx context.Context, sessionID uuid.UUID, items []model.CartItem) (*model.RemoteOrder, error) {
	if err := validateCart(items); err != nil {
		return nil, err
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to load session")
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, model.ErrSessionNotFound
	}

	if len(items) == 0 && session.LastOrder == nil {
		return nil, model.ErrEmptyCart
	}

	// Catalog is fetched fresh on every pass; the engine never caches it.
	products, err := s.catalog.Products(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to load catalog")
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	remote, created, err := s.syncOrder(ctx, session, items, model.CatalogInfos(products))
	if err != nil {
		// Transport failures propagate unmodified and leave the session's
		// last known order untouched, so a retried pass computes identical
		// instructions.
		s.logger.Warn().
			Err(err).
			Str("session_id", sessionID.String()).
			Msg("reconciliation pass failed")
		return nil, err
	}

	if err := s.persistResult(ctx, sessionID, items, remote); err != nil {
		return nil, err
	}

	s.publishSynced(ctx, session, remote, created)

	s.logger.Info().
		Str("session_id", sessionID.String()).
		Int64("order_id", remote.ID).
		Bool("created", created).
		Int("line_items", len(remote.Items)).
		Msg("cart synced")

	return remote, nil
}

// syncOrder composes aggregation, diffing and dispatch: it computes update
// instructions against the session's last known order and applies them
// through the order transport, returning the canonical remote order and
// whether it was newly created.
func (s *syncService) syncOrder(ctx context.Context, session *model.CartSession, items []model.CartItem, infos []model.ProductInfo) (*model.RemoteOrder, bool, error) {
	instructions := reconcile.Instructions(items, session.LastOrder, infos)
	payload := buildOrderPayload(session, instructions)

	if session.LastOrder == nil {
		// First sync: the order is created with its first items and an
		// explicit draft status, atomically.
		payload.Status = model.OrderStatusDraft
		remote, err := s.orders.CreateOrder(ctx, session.SiteID, payload, []string{model.OrderFieldItems, model.OrderFieldStatus})
		if err != nil {
			return nil, false, err
		}
		return remote, true, nil
	}

	// Subsequent syncs are scoped to items only: status, addresses and every
	// other field may have been changed by another client between passes.
	remote, err := s.orders.UpdateOrder(ctx, session.SiteID, session.LastOrder.ID, payload, []string{model.OrderFieldItems})
	if err != nil {
		return nil, false, err
	}
	return remote, false, nil
}

// buildOrderPayload maps update instructions onto wire line items. Removals
// address the existing remote line by ID with quantity zero; upserts reuse
// the existing line ID when the product already has one and omit it for new
// lines.
func buildOrderPayload(session *model.CartSession, instructions []model.UpdateInstruction) *model.RemoteOrder {
	existing := make(map[int64]int64)
	if session.LastOrder != nil {
		for _, line := range session.LastOrder.Items {
			if _, ok := existing[line.ProductID]; !ok {
				existing[line.ProductID] = line.ID
			}
		}
	}

	payload := &model.RemoteOrder{SiteID: session.SiteID}
	for _, instruction := range instructions {
		line := model.OrderLineItem{
			ProductID: instruction.ProductID,
			Quantity:  instruction.Quantity,
		}
		if id, ok := existing[instruction.ProductID]; ok {
			line.ID = id
		}
		payload.Items = append(payload.Items, line)
	}

	return payload
}

// persistResult stores the submitted cart and the canonical remote order
// atomically, tagging cart items with their remote line IDs.
func (s *syncService) persistResult(ctx context.Context, sessionID uuid.UUID, items []model.CartItem, remote *model.RemoteOrder) error {
	lineByProduct := make(map[int64]int64, len(remote.Items))
	for _, line := range remote.Items {
		lineByProduct[line.ProductID] = line.ID
	}
	for i := range items {
		if id, ok := lineByProduct[items[i].ProductID]; ok {
			remoteID := id
			items[i].RemoteItemID = &remoteID
		}
	}

	tx, err := s.sessions.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to persist sync result: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.sessions.ReplaceItems(ctx, tx, sessionID, items); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to store cart items")
		return fmt.Errorf("failed to persist sync result: %w", err)
	}

	if err = s.sessions.SetLastOrder(ctx, tx, sessionID, remote); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to store last order")
		return fmt.Errorf("failed to persist sync result: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to commit sync result")
		return fmt.Errorf("failed to persist sync result: %w", err)
	}

	return nil
}

// publishSynced emits an order-synced event. Best effort: failures are
// logged and never fail the sync.
func (s *syncService) publishSynced(ctx context.Context, session *model.CartSession, remote *model.RemoteOrder, created bool) {
	event := events.OrderSyncedEvent{
		SessionID: session.ID,
		SiteID:    session.SiteID,
		OrderID:   remote.ID,
		Created:   created,
		LineItems: len(remote.Items),
		SyncedAt:  time.Now().UTC(),
	}

	if err := s.publisher.OrderSynced(ctx, event); err != nil {
		s.logger.Warn().
			Err(err).
			Str("session_id", session.ID.String()).
			Int64("order_id", remote.ID).
			Msg("failed to publish order-synced event")
	}
}

// lockSession acquires the per-session mutex, creating it on first use.
func (s *syncService) lockSession(sessionID uuid.UUID) func() {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// validateCart rejects non-positive quantities before they reach the
// aggregator, which sums quantities as-is.
func validateCart(items []model.CartItem) error {
	for _, item := range items {
		if item.ProductID <= 0 {
			return model.NewDomainError(model.ErrCodeMissingField, "Product ID is required")
		}
		if item.Quantity.Sign() <= 0 {
			return model.ErrInvalidQuantity
		}
	}
	return nil
}
