package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pos-sync/internal/events"
	"pos-sync/internal/model"
	"pos-sync/internal/transport"
)

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.CartSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CartSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartSession), args.Error(1)
}

func (m *MockSessionRepository) ReplaceItems(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, items []model.CartItem) error {
	args := m.Called(ctx, tx, sessionID, items)
	return args.Error(0)
}

func (m *MockSessionRepository) SetLastOrder(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, order *model.RemoteOrder) error {
	args := m.Called(ctx, tx, sessionID, order)
	return args.Error(0)
}

// MockCatalogProvider is a mock implementation of catalog.Provider.
type MockCatalogProvider struct {
	mock.Mock
}

func (m *MockCatalogProvider) Products(ctx context.Context) ([]model.CatalogProduct, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CatalogProduct), args.Error(1)
}

// MockOrderTransport is a mock implementation of transport.OrderTransport.
type MockOrderTransport struct {
	mock.Mock
}

func (m *MockOrderTransport) CreateOrder(ctx context.Context, siteID int64, order *model.RemoteOrder, fields []string) (*model.RemoteOrder, error) {
	args := m.Called(ctx, siteID, order, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RemoteOrder), args.Error(1)
}

func (m *MockOrderTransport) UpdateOrder(ctx context.Context, siteID, orderID int64, order *model.RemoteOrder, fields []string) (*model.RemoteOrder, error) {
	args := m.Called(ctx, siteID, orderID, order, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RemoteOrder), args.Error(1)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) OrderSynced(ctx context.Context, event events.OrderSyncedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

func qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCatalog(ids ...int64) []model.CatalogProduct {
	products := make([]model.CatalogProduct, len(ids))
	for i, id := range ids {
		products[i] = model.CatalogProduct{
			ID:          id,
			Name:        "Product",
			UnitPrice:   "10.00",
			ProductType: model.ProductTypeSimple,
			UpdatedAt:   time.Now(),
		}
	}
	return products
}

func newTestService(t *testing.T) (*syncService, *MockSessionRepository, *MockCatalogProvider, *MockOrderTransport, *MockPublisher) {
	t.Helper()

	sessions := new(MockSessionRepository)
	provider := new(MockCatalogProvider)
	orders := new(MockOrderTransport)
	publisher := new(MockPublisher)

	svc := NewSyncService(sessions, provider, orders, publisher, zerolog.Nop()).(*syncService)
	return svc, sessions, provider, orders, publisher
}

func TestSyncCart_FirstSyncCreatesDraftOrder(t *testing.T) {
	ctx := context.Background()
	svc, sessions, provider, orders, publisher := newTestService(t)

	sessionID := uuid.New()
	session := &model.CartSession{ID: sessionID, SiteID: 7}
	cart := []model.CartItem{
		{ProductID: 1, Quantity: qty("2")},
		{ProductID: 2, Quantity: qty("1")},
		{ProductID: 1, Quantity: qty("1")},
	}

	remote := &model.RemoteOrder{
		ID:     101,
		SiteID: 7,
		Status: model.OrderStatusDraft,
		Items: []model.OrderLineItem{
			{ID: 55, ProductID: 1, Quantity: qty("3")},
			{ID: 56, ProductID: 2, Quantity: qty("1")},
		},
	}

	mockTx := new(MockTx)
	sessions.On("GetByID", ctx, sessionID).Return(session, nil)
	provider.On("Products", ctx).Return(testCatalog(1, 2), nil)
	orders.On("CreateOrder", ctx, int64(7), mock.AnythingOfType("*model.RemoteOrder"), []string{"items", "status"}).
		Return(remote, nil)
	sessions.On("BeginTx", ctx).Return(mockTx, nil)
	sessions.On("ReplaceItems", ctx, mockTx, sessionID, mock.AnythingOfType("[]model.CartItem")).Return(nil)
	sessions.On("SetLastOrder", ctx, mockTx, sessionID, remote).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	publisher.On("OrderSynced", ctx, mock.AnythingOfType("events.OrderSyncedEvent")).Return(nil)

	result, err := svc.SyncCart(ctx, sessionID, cart)

	require.NoError(t, err)
	assert.Equal(t, remote, result)

	// The create payload carries the draft status and the aggregated,
	// first-seen-ordered line items.
	payload := orders.Calls[0].Arguments.Get(2).(*model.RemoteOrder)
	assert.Equal(t, model.OrderStatusDraft, payload.Status)
	require.Len(t, payload.Items, 2)
	assert.Equal(t, int64(1), payload.Items[0].ProductID)
	assert.True(t, payload.Items[0].Quantity.Equal(qty("3")))
	assert.Equal(t, int64(2), payload.Items[1].ProductID)

	// The published event marks the order as newly created.
	event := publisher.Calls[0].Arguments.Get(1).(events.OrderSyncedEvent)
	assert.True(t, event.Created)
	assert.Equal(t, int64(101), event.OrderID)

	sessions.AssertExpectations(t)
	orders.AssertExpectations(t)
	publisher.AssertExpectations(t)
	orders.AssertNotCalled(t, "UpdateOrder")
}

func TestSyncCart_UpdateScopedToItemsOnly(t *testing.T) {
	ctx := context.Background()
	svc, sessions, provider, orders, publisher := newTestService(t)

	sessionID := uuid.New()
	lastOrder := &model.RemoteOrder{
		ID:     101,
		SiteID: 7,
		Status: model.OrderStatusPending,
		Items: []model.OrderLineItem{
			{ID: 55, ProductID: 1, Quantity: qty("2")},
			{ID: 56, ProductID: 2, Quantity: qty("1")},
		},
	}
	session := &model.CartSession{ID: sessionID, SiteID: 7, LastOrder: lastOrder}

	// Product 2 dropped, product 1 now quantity 4.
	cart := []model.CartItem{
		{ProductID: 1, Quantity: qty("4")},
	}

	remote := &model.RemoteOrder{
		ID:     101,
		SiteID: 7,
		Status: model.OrderStatusPending,
		Items: []model.OrderLineItem{
			{ID: 55, ProductID: 1, Quantity: qty("4")},
		},
	}

	mockTx := new(MockTx)
	sessions.On("GetByID", ctx, sessionID).Return(session, nil)
	provider.On("Products", ctx).Return(testCatalog(1, 2), nil)
	orders.On("UpdateOrder", ctx, int64(7), int64(101), mock.AnythingOfType("*model.RemoteOrder"), []string{"items"}).
		Return(remote, nil)
	sessions.On("BeginTx", ctx).Return(mockTx, nil)
	sessions.On("ReplaceItems", ctx, mockTx, sessionID, mock.AnythingOfType("[]model.CartItem")).Return(nil)
	sessions.On("SetLastOrder", ctx, mockTx, sessionID, remote).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	publisher.On("OrderSynced", ctx, mock.AnythingOfType("events.OrderSyncedEvent")).Return(nil)

	result, err := svc.SyncCart(ctx, sessionID, cart)

	require.NoError(t, err)
	assert.Equal(t, remote, result)

	// Update payload: removal of product 2 addressed by its remote line ID
	// with quantity zero, then the upsert of product 1 reusing its line ID.
	// Status is never part of the payload field scope.
	payload := orders.Calls[0].Arguments.Get(3).(*model.RemoteOrder)
	require.Len(t, payload.Items, 2)
	assert.Equal(t, int64(56), payload.Items[0].ID)
	assert.Equal(t, int64(2), payload.Items[0].ProductID)
	assert.True(t, payload.Items[0].Quantity.IsZero())
	assert.Equal(t, int64(55), payload.Items[1].ID)
	assert.Equal(t, int64(1), payload.Items[1].ProductID)
	assert.True(t, payload.Items[1].Quantity.Equal(qty("4")))

	sessions.AssertExpectations(t)
	orders.AssertExpectations(t)
	orders.AssertNotCalled(t, "CreateOrder")
}

func TestSyncCart_TransportFailureLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	svc, sessions, provider, orders, publisher := newTestService(t)

	sessionID := uuid.New()
	lastOrder := &model.RemoteOrder{
		ID:     101,
		SiteID: 7,
		Items: []model.OrderLineItem{
			{ID: 55, ProductID: 1, Quantity: qty("2")},
		},
	}
	session := &model.CartSession{ID: sessionID, SiteID: 7, LastOrder: lastOrder}
	cart := []model.CartItem{
		{ProductID: 1, Quantity: qty("3")},
	}

	transportErr := &transport.TransportError{StatusCode: 500, Message: "backend down"}

	sessions.On("GetByID", ctx, sessionID).Return(session, nil)
	provider.On("Products", ctx).Return(testCatalog(1), nil)
	orders.On("UpdateOrder", ctx, int64(7), int64(101), mock.AnythingOfType("*model.RemoteOrder"), []string{"items"}).
		Return(nil, transportErr)

	result, err := svc.SyncCart(ctx, sessionID, cart)

	require.Error(t, err)
	assert.Nil(t, result)

	// The transport error surfaces unmodified.
	var gotErr *transport.TransportError
	require.ErrorAs(t, err, &gotErr)
	assert.Equal(t, transportErr, gotErr)

	// Nothing persisted, nothing published: the next pass diffs against the
	// same snapshot and produces identical instructions.
	sessions.AssertNotCalled(t, "BeginTx")
	sessions.AssertNotCalled(t, "SetLastOrder")
	publisher.AssertNotCalled(t, "OrderSynced")
}

func TestSyncCart_ValidationErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		items       []model.CartItem
		expectedErr error
	}{
		{
			name: "Zero quantity",
			items: []model.CartItem{
				{ProductID: 1, Quantity: decimal.Zero},
			},
			expectedErr: model.ErrInvalidQuantity,
		},
		{
			name: "Negative quantity",
			items: []model.CartItem{
				{ProductID: 1, Quantity: qty("-2")},
			},
			expectedErr: model.ErrInvalidQuantity,
		},
		{
			name: "Missing product ID",
			items: []model.CartItem{
				{ProductID: 0, Quantity: qty("1")},
			},
			expectedErr: nil, // domain error with MISSING_FIELD code
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, sessions, _, orders, _ := newTestService(t)

			result, err := svc.SyncCart(ctx, uuid.New(), tt.items)

			require.Error(t, err)
			assert.Nil(t, result)
			if tt.expectedErr != nil {
				assert.Equal(t, tt.expectedErr, err)
			}

			sessions.AssertNotCalled(t, "GetByID")
			orders.AssertNotCalled(t, "CreateOrder")
			orders.AssertNotCalled(t, "UpdateOrder")
		})
	}
}

func TestSyncCart_SessionNotFound(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _, orders, _ := newTestService(t)

	sessionID := uuid.New()
	sessions.On("GetByID", ctx, sessionID).Return(nil, nil)

	result, err := svc.SyncCart(ctx, sessionID, []model.CartItem{{ProductID: 1, Quantity: qty("1")}})

	require.Error(t, err)
	assert.Equal(t, model.ErrSessionNotFound, err)
	assert.Nil(t, result)
	orders.AssertNotCalled(t, "CreateOrder")
}

func TestSyncCart_EmptyCartWithoutOrder(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _, orders, _ := newTestService(t)

	sessionID := uuid.New()
	session := &model.CartSession{ID: sessionID, SiteID: 7}
	sessions.On("GetByID", ctx, sessionID).Return(session, nil)

	result, err := svc.SyncCart(ctx, sessionID, nil)

	require.Error(t, err)
	assert.Equal(t, model.ErrEmptyCart, err)
	assert.Nil(t, result)
	orders.AssertNotCalled(t, "CreateOrder")
}

func TestSyncCart_EmptyCartRemovesAllLines(t *testing.T) {
	ctx := context.Background()
	svc, sessions, provider, orders, publisher := newTestService(t)

	sessionID := uuid.New()
	lastOrder := &model.RemoteOrder{
		ID:     101,
		SiteID: 7,
		Items: []model.OrderLineItem{
			{ID: 55, ProductID: 1, Quantity: qty("2")},
		},
	}
	session := &model.CartSession{ID: sessionID, SiteID: 7, LastOrder: lastOrder}

	remote := &model.RemoteOrder{ID: 101, SiteID: 7}

	mockTx := new(MockTx)
	sessions.On("GetByID", ctx, sessionID).Return(session, nil)
	provider.On("Products", ctx).Return(testCatalog(1), nil)
	orders.On("UpdateOrder", ctx, int64(7), int64(101), mock.AnythingOfType("*model.RemoteOrder"), []string{"items"}).
		Return(remote, nil)
	sessions.On("BeginTx", ctx).Return(mockTx, nil)
	sessions.On("ReplaceItems", ctx, mockTx, sessionID, mock.AnythingOfType("[]model.CartItem")).Return(nil)
	sessions.On("SetLastOrder", ctx, mockTx, sessionID, remote).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	publisher.On("OrderSynced", ctx, mock.AnythingOfType("events.OrderSyncedEvent")).Return(nil)

	result, err := svc.SyncCart(ctx, sessionID, nil)

	require.NoError(t, err)
	assert.Equal(t, remote, result)

	payload := orders.Calls[0].Arguments.Get(3).(*model.RemoteOrder)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, int64(55), payload.Items[0].ID)
	assert.True(t, payload.Items[0].Quantity.IsZero())
}

func TestSyncCart_UnresolvableProductOmitted(t *testing.T) {
	ctx := context.Background()
	svc, sessions, provider, orders, publisher := newTestService(t)

	sessionID := uuid.New()
	session := &model.CartSession{ID: sessionID, SiteID: 7}
	cart := []model.CartItem{
		{ProductID: 1, Quantity: qty("1")},
		{ProductID: 99, Quantity: qty("2")}, // deleted server-side
	}

	remote := &model.RemoteOrder{
		ID:     101,
		SiteID: 7,
		Items: []model.OrderLineItem{
			{ID: 55, ProductID: 1, Quantity: qty("1")},
		},
	}

	mockTx := new(MockTx)
	sessions.On("GetByID", ctx, sessionID).Return(session, nil)
	provider.On("Products", ctx).Return(testCatalog(1), nil)
	orders.On("CreateOrder", ctx, int64(7), mock.AnythingOfType("*model.RemoteOrder"), []string{"items", "status"}).
		Return(remote, nil)
	sessions.On("BeginTx", ctx).Return(mockTx, nil)
	sessions.On("ReplaceItems", ctx, mockTx, sessionID, mock.AnythingOfType("[]model.CartItem")).Return(nil)
	sessions.On("SetLastOrder", ctx, mockTx, sessionID, remote).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	publisher.On("OrderSynced", ctx, mock.AnythingOfType("events.OrderSyncedEvent")).Return(nil)

	result, err := svc.SyncCart(ctx, sessionID, cart)

	require.NoError(t, err)
	require.NotNil(t, result)

	// No instruction of any kind for the unknown product, and no error.
	payload := orders.Calls[0].Arguments.Get(2).(*model.RemoteOrder)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, int64(1), payload.Items[0].ProductID)
}

func TestSyncCart_CatalogFailure(t *testing.T) {
	ctx := context.Background()
	svc, sessions, provider, orders, _ := newTestService(t)

	sessionID := uuid.New()
	session := &model.CartSession{ID: sessionID, SiteID: 7}
	sessions.On("GetByID", ctx, sessionID).Return(session, nil)
	provider.On("Products", ctx).Return(nil, errors.New("database error"))

	result, err := svc.SyncCart(ctx, sessionID, []model.CartItem{{ProductID: 1, Quantity: qty("1")}})

	require.Error(t, err)
	assert.Nil(t, result)
	orders.AssertNotCalled(t, "CreateOrder")
}

func TestSyncCart_PublishFailureDoesNotFailSync(t *testing.T) {
	ctx := context.Background()
	svc, sessions, provider, orders, publisher := newTestService(t)

	sessionID := uuid.New()
	session := &model.CartSession{ID: sessionID, SiteID: 7}
	cart := []model.CartItem{{ProductID: 1, Quantity: qty("1")}}

	remote := &model.RemoteOrder{
		ID:     101,
		SiteID: 7,
		Items:  []model.OrderLineItem{{ID: 55, ProductID: 1, Quantity: qty("1")}},
	}

	mockTx := new(MockTx)
	sessions.On("GetByID", ctx, sessionID).Return(session, nil)
	provider.On("Products", ctx).Return(testCatalog(1), nil)
	orders.On("CreateOrder", ctx, int64(7), mock.AnythingOfType("*model.RemoteOrder"), []string{"items", "status"}).
		Return(remote, nil)
	sessions.On("BeginTx", ctx).Return(mockTx, nil)
	sessions.On("ReplaceItems", ctx, mockTx, sessionID, mock.AnythingOfType("[]model.CartItem")).Return(nil)
	sessions.On("SetLastOrder", ctx, mockTx, sessionID, remote).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	publisher.On("OrderSynced", ctx, mock.AnythingOfType("events.OrderSyncedEvent")).
		Return(errors.New("broker unreachable"))

	result, err := svc.SyncCart(ctx, sessionID, cart)

	require.NoError(t, err)
	assert.Equal(t, remote, result)
	publisher.AssertExpectations(t)
}

func TestSyncCart_TagsItemsWithRemoteLineIDs(t *testing.T) {
	ctx := context.Background()
	svc, sessions, provider, orders, publisher := newTestService(t)

	sessionID := uuid.New()
	session := &model.CartSession{ID: sessionID, SiteID: 7}
	cart := []model.CartItem{{ProductID: 1, Quantity: qty("2")}}

	remote := &model.RemoteOrder{
		ID:     101,
		SiteID: 7,
		Items:  []model.OrderLineItem{{ID: 55, ProductID: 1, Quantity: qty("2")}},
	}

	mockTx := new(MockTx)
	sessions.On("GetByID", ctx, sessionID).Return(session, nil)
	provider.On("Products", ctx).Return(testCatalog(1), nil)
	orders.On("CreateOrder", ctx, int64(7), mock.AnythingOfType("*model.RemoteOrder"), []string{"items", "status"}).
		Return(remote, nil)
	sessions.On("BeginTx", ctx).Return(mockTx, nil)
	sessions.On("ReplaceItems", ctx, mockTx, sessionID, mock.AnythingOfType("[]model.CartItem")).Return(nil)
	sessions.On("SetLastOrder", ctx, mockTx, sessionID, remote).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	publisher.On("OrderSynced", ctx, mock.AnythingOfType("events.OrderSyncedEvent")).Return(nil)

	_, err := svc.SyncCart(ctx, sessionID, cart)
	require.NoError(t, err)

	var persisted []model.CartItem
	for _, call := range sessions.Calls {
		if call.Method == "ReplaceItems" {
			persisted = call.Arguments.Get(3).([]model.CartItem)
		}
	}
	require.Len(t, persisted, 1)
	require.NotNil(t, persisted[0].RemoteItemID)
	assert.Equal(t, int64(55), *persisted[0].RemoteItemID)
}

func TestSyncCart_PersistFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	svc, sessions, provider, orders, publisher := newTestService(t)

	sessionID := uuid.New()
	session := &model.CartSession{ID: sessionID, SiteID: 7}
	cart := []model.CartItem{{ProductID: 1, Quantity: qty("1")}}

	remote := &model.RemoteOrder{
		ID:     101,
		SiteID: 7,
		Items:  []model.OrderLineItem{{ID: 55, ProductID: 1, Quantity: qty("1")}},
	}

	mockTx := new(MockTx)
	sessions.On("GetByID", ctx, sessionID).Return(session, nil)
	provider.On("Products", ctx).Return(testCatalog(1), nil)
	orders.On("CreateOrder", ctx, int64(7), mock.AnythingOfType("*model.RemoteOrder"), []string{"items", "status"}).
		Return(remote, nil)
	sessions.On("BeginTx", ctx).Return(mockTx, nil)
	sessions.On("ReplaceItems", ctx, mockTx, sessionID, mock.AnythingOfType("[]model.CartItem")).
		Return(errors.New("database error"))
	mockTx.On("Rollback", ctx).Return(nil)

	result, err := svc.SyncCart(ctx, sessionID, cart)

	require.Error(t, err)
	assert.Nil(t, result)
	mockTx.AssertExpectations(t)
	publisher.AssertNotCalled(t, "OrderSynced")
}

func TestCreateSession(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _, _, _ := newTestService(t)

	sessions.On("Create", ctx, mock.AnythingOfType("*model.CartSession")).Return(nil)

	session, err := svc.CreateSession(ctx, 7)

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.Equal(t, int64(7), session.SiteID)
	sessions.AssertExpectations(t)
}

func TestGetSession(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _, _, _ := newTestService(t)

	sessionID := uuid.New()
	expected := &model.CartSession{ID: sessionID, SiteID: 7}
	sessions.On("GetByID", ctx, sessionID).Return(expected, nil)

	session, err := svc.GetSession(ctx, sessionID)

	require.NoError(t, err)
	assert.Equal(t, expected, session)
}

func TestGetSession_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _, _, _ := newTestService(t)

	sessionID := uuid.New()
	sessions.On("GetByID", ctx, sessionID).Return(nil, nil)

	session, err := svc.GetSession(ctx, sessionID)

	require.NoError(t, err)
	assert.Nil(t, session)
}
