package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"pos-sync/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS products (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			price TEXT NOT NULL,
			product_type TEXT NOT NULL,
			bundled_items BIGINT[],
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS cart_sessions (
			id UUID PRIMARY KEY,
			site_id BIGINT NOT NULL,
			last_order JSONB,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS cart_items (
			id UUID PRIMARY KEY,
			session_id UUID NOT NULL REFERENCES cart_sessions(id) ON DELETE CASCADE,
			position INT NOT NULL,
			remote_item_id BIGINT,
			product_id BIGINT NOT NULL,
			quantity NUMERIC(12,4) NOT NULL,
			UNIQUE (session_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_cart_items_session_id ON cart_items(session_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedProducts inserts test product data into the database.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id          int64
		name        string
		price       string
		productType string
	}{
		{1, "Espresso", "2.50", "simple"},
		{2, "Americano", "2.80", "simple"},
		{3, "Croissant", "3.20", "simple"},
		{4, "Flat White", "3.60", "variable"},
		{5, "Morning Set", "5.50", "bundle"},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			"INSERT INTO products (id, name, price, product_type) VALUES ($1, $2, $3, $4)",
			p.id, p.name, p.price, p.productType,
		)
		if err != nil {
			t.Fatalf("failed to seed product %d: %v", p.id, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"cart_items", "cart_sessions", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// FakeBackend is an in-memory stand-in for the commerce backend's order
// API. It applies field-scoped order writes the way the real backend does:
// zero-quantity line items are removed, line items with a known ID are
// updated, and new line items are assigned fresh IDs.
type FakeBackend struct {
	Server *httptest.Server

	mu         sync.Mutex
	nextOrder  int64
	nextLine   int64
	orders     map[int64]*model.RemoteOrder
	LastFields []string
}

// NewFakeBackend starts the fake backend server. The caller owns shutdown
// via t.Cleanup.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	b := &FakeBackend{
		nextOrder: 100,
		nextLine:  500,
		orders:    make(map[int64]*model.RemoteOrder),
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.Server.Close)
	return b
}

func (b *FakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Paths: /sites/{siteID}/orders and /sites/{siteID}/orders/{orderID}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "sites" || parts[2] != "orders" {
		http.Error(w, `{"code":"not_found","message":"unknown path"}`, http.StatusNotFound)
		return
	}

	b.LastFields = strings.Split(r.URL.Query().Get("fields"), ",")

	var payload model.RemoteOrder
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"code":"bad_request","message":"invalid body"}`, http.StatusBadRequest)
		return
	}

	switch {
	case r.Method == http.MethodPost && len(parts) == 3:
		siteID, _ := strconv.ParseInt(parts[1], 10, 64)
		b.nextOrder++
		order := &model.RemoteOrder{
			ID:       b.nextOrder,
			SiteID:   siteID,
			Status:   payload.Status,
			Currency: "GBP",
		}
		b.applyItems(order, payload.Items)
		b.orders[order.ID] = order
		writeOrder(w, http.StatusCreated, order)

	case r.Method == http.MethodPut && len(parts) == 4:
		orderID, _ := strconv.ParseInt(parts[3], 10, 64)
		order, ok := b.orders[orderID]
		if !ok {
			http.Error(w, `{"code":"not_found","message":"order not found"}`, http.StatusNotFound)
			return
		}
		b.applyItems(order, payload.Items)
		writeOrder(w, http.StatusOK, order)

	default:
		http.Error(w, `{"code":"method_not_allowed","message":"unsupported method"}`, http.StatusMethodNotAllowed)
	}
}

// applyItems applies submitted line items to the order in submission order.
func (b *FakeBackend) applyItems(order *model.RemoteOrder, items []model.OrderLineItem) {
	for _, item := range items {
		if item.Quantity.IsZero() {
			for i, existing := range order.Items {
				if existing.ID == item.ID {
					order.Items = append(order.Items[:i], order.Items[i+1:]...)
					break
				}
			}
			continue
		}

		if item.ID != 0 {
			updated := false
			for i := range order.Items {
				if order.Items[i].ID == item.ID {
					order.Items[i].Quantity = item.Quantity
					updated = true
					break
				}
			}
			if updated {
				continue
			}
		}

		b.nextLine++
		order.Items = append(order.Items, model.OrderLineItem{
			ID:        b.nextLine,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
}

// Order returns a copy of the backend's current state for an order.
func (b *FakeBackend) Order(orderID int64) *model.RemoteOrder {
	b.mu.Lock()
	defer b.mu.Unlock()

	order, ok := b.orders[orderID]
	if !ok {
		return nil
	}
	clone := *order
	clone.Items = append([]model.OrderLineItem(nil), order.Items...)
	return &clone
}

func writeOrder(w http.ResponseWriter, status int, order *model.RemoteOrder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(order)
}
