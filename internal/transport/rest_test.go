package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-sync/internal/model"
)

func testOrder() *model.RemoteOrder {
	return &model.RemoteOrder{
		SiteID: 7,
		Status: model.OrderStatusDraft,
		Items: []model.OrderLineItem{
			{ProductID: 1, Quantity: decimal.NewFromInt(2)},
		},
	}
}

func TestRESTTransport_CreateOrder(t *testing.T) {
	var gotMethod, gotPath, gotFields, gotAuth string
	var gotBody model.RemoteOrder

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotFields = r.URL.Query().Get("fields")
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.RemoteOrder{
			ID:     101,
			SiteID: 7,
			Status: model.OrderStatusDraft,
			Items: []model.OrderLineItem{
				{ID: 55, ProductID: 1, Quantity: decimal.NewFromInt(2)},
			},
		})
	}))
	defer server.Close()

	transport := NewRESTTransport(server.URL, "secret-token", 5*time.Second, zerolog.Nop())

	remote, err := transport.CreateOrder(context.Background(), 7, testOrder(), []string{model.OrderFieldItems, model.OrderFieldStatus})

	require.NoError(t, err)
	require.NotNil(t, remote)
	assert.Equal(t, int64(101), remote.ID)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/sites/7/orders", gotPath)
	assert.Equal(t, "items,status", gotFields)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Len(t, gotBody.Items, 1)
}

func TestRESTTransport_UpdateOrder(t *testing.T) {
	var gotMethod, gotPath, gotFields string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotFields = r.URL.Query().Get("fields")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.RemoteOrder{ID: 101, SiteID: 7})
	}))
	defer server.Close()

	transport := NewRESTTransport(server.URL, "secret-token", 5*time.Second, zerolog.Nop())

	remote, err := transport.UpdateOrder(context.Background(), 7, 101, testOrder(), []string{model.OrderFieldItems})

	require.NoError(t, err)
	assert.Equal(t, int64(101), remote.ID)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/sites/7/orders/101", gotPath)

	// Update must be scoped to items only, never status.
	assert.Equal(t, "items", gotFields)
}

func TestRESTTransport_BackendError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "Structured validation error",
			status:      http.StatusBadRequest,
			body:        `{"code": "invalid_line_item", "message": "Product 99 does not exist"}`,
			wantCode:    "invalid_line_item",
			wantMessage: "Product 99 does not exist",
		},
		{
			name:        "Plain text error",
			status:      http.StatusInternalServerError,
			body:        "upstream exploded",
			wantMessage: "upstream exploded",
		},
		{
			name:        "Empty body",
			status:      http.StatusForbidden,
			body:        "",
			wantMessage: "Forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			transport := NewRESTTransport(server.URL, "secret-token", 5*time.Second, zerolog.Nop())

			remote, err := transport.CreateOrder(context.Background(), 7, testOrder(), []string{model.OrderFieldItems, model.OrderFieldStatus})

			require.Error(t, err)
			assert.Nil(t, remote)

			var transportErr *TransportError
			require.ErrorAs(t, err, &transportErr)
			assert.Equal(t, tt.status, transportErr.StatusCode)
			assert.Equal(t, tt.wantCode, transportErr.Code)
			assert.Equal(t, tt.wantMessage, transportErr.Message)
		})
	}
}

func TestRESTTransport_NetworkError(t *testing.T) {
	// Point at a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	transport := NewRESTTransport(server.URL, "secret-token", time.Second, zerolog.Nop())

	remote, err := transport.CreateOrder(context.Background(), 7, testOrder(), []string{model.OrderFieldItems, model.OrderFieldStatus})

	require.Error(t, err)
	assert.Nil(t, remote)
	assert.Contains(t, err.Error(), "order request failed")
}
