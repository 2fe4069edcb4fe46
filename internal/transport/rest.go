package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pos-sync/internal/model"
)

// restTransport implements OrderTransport against the commerce backend's
// REST API.
type restTransport struct {
	baseURL string
	token   string
	client  *http.Client
	logger  zerolog.Logger
}

// NewRESTTransport creates an order transport talking to the backend at
// baseURL, authenticating with a bearer token.
func NewRESTTransport(baseURL, token string, timeout time.Duration, logger zerolog.Logger) OrderTransport {
	return &restTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "order-transport").Logger(),
	}
}

// CreateOrder creates a new order for the site, applying only the named fields.
func (t *restTransport) CreateOrder(ctx context.Context, siteID int64, order *model.RemoteOrder, fields []string) (*model.RemoteOrder, error) {
	path := fmt.Sprintf("/sites/%d/orders", siteID)
	return t.send(ctx, http.MethodPost, path, order, fields)
}

// UpdateOrder applies the named fields of the submitted order to an existing order.
func (t *restTransport) UpdateOrder(ctx context.Context, siteID, orderID int64, order *model.RemoteOrder, fields []string) (*model.RemoteOrder, error) {
	path := fmt.Sprintf("/sites/%d/orders/%d", siteID, orderID)
	return t.send(ctx, http.MethodPut, path, order, fields)
}

// send submits the full order payload with an explicit fields query
// parameter. The backend applies only the listed attributes; the parameter
// is always sent, never inferred from which payload fields are set.
func (t *restTransport) send(ctx context.Context, method, path string, order *model.RemoteOrder, fields []string) (*model.RemoteOrder, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order payload: %w", err)
	}

	query := url.Values{}
	query.Set("fields", strings.Join(fields, ","))

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path+"?"+query.Encode(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.token)

	t.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("fields", strings.Join(fields, ",")).
		Msg("sending order request")

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("order request failed")
		return nil, fmt.Errorf("order request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, t.decodeError(resp)
	}

	var remote model.RemoteOrder
	if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil {
		t.logger.Error().Err(err).Str("path", path).Msg("failed to decode order response")
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	t.logger.Debug().
		Int64("order_id", remote.ID).
		Int("line_items", len(remote.Items)).
		Msg("order request applied")

	return &remote, nil
}

// decodeError maps an HTTP error response to a TransportError. Bodies that
// are not the backend's error shape still produce a usable error.
func (t *restTransport) decodeError(resp *http.Response) error {
	transportErr := &TransportError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil && len(body) > 0 {
		var payload struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			transportErr.Code = payload.Code
			transportErr.Message = payload.Message
		} else {
			transportErr.Message = strings.TrimSpace(string(body))
		}
	}
	if transportErr.Message == "" {
		transportErr.Message = http.StatusText(resp.StatusCode)
	}

	t.logger.Warn().
		Int("status", transportErr.StatusCode).
		Str("code", transportErr.Code).
		Msg("backend rejected order request")

	return transportErr
}
