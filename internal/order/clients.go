package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TokenSource supplies the bearer token attached to every persistence call.
type TokenSource interface {
	Bearer() (string, error)
}

// CreateOrderResult is the persistence API's answer to an order creation.
type CreateOrderResult struct {
	Status          string      `json:"status"`
	ExternalOrderID json.Number `json:"externals_order_id"`
}

// Success reports whether the API accepted the order.
func (r CreateOrderResult) Success() bool { return r.Status == "success" }

// Ext wraps the external persistence API.
type Ext struct {
	HTTP    *http.Client
	BaseURL string
	Tokens  TokenSource
}

func NewExt(baseURL string, tokens TokenSource) *Ext {
	return &Ext{
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		BaseURL: baseURL,
		Tokens:  tokens,
	}
}

func (e *Ext) do(ctx context.Context, op, method, path string, payload, out any) error {
	token, err := e.Tokens.Bearer()
	if err != nil {
		// Token failures are terminal before any network I/O.
		return err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, method, e.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := e.HTTP.Do(req)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &UpstreamError{Op: op, Status: res.StatusCode, Err: fmt.Errorf("unexpected status %s", res.Status)}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &UpstreamError{Op: op, Status: res.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// CreateOrder submits a normalized order. A non-success status in the body is
// returned in the result, not as an error; the caller decides what a refusal
// means.
func (e *Ext) CreateOrder(ctx context.Context, o Order) (CreateOrderResult, error) {
	var out CreateOrderResult
	payload := map[string]Order{"order": o}
	if err := e.do(ctx, "create_order", http.MethodPost, "/api/restaurants/create_order", payload, &out); err != nil {
		return CreateOrderResult{}, err
	}
	return out, nil
}

// UpdateCustomer updates a customer's name. The API signals success by
// including a "success" key in the body.
func (e *Ext) UpdateCustomer(ctx context.Context, customerID int, firstName, lastName string) error {
	payload := map[string]any{
		"customer_id": customerID,
		"first_name":  firstName,
		"last_name":   lastName,
	}
	return e.putCustomer(ctx, "update_customer", payload)
}

// UpdateCustomerLanguage updates a customer's preferred language code.
func (e *Ext) UpdateCustomerLanguage(ctx context.Context, customerID int, language string) error {
	payload := map[string]any{
		"customer_id": customerID,
		"language":    language,
	}
	return e.putCustomer(ctx, "update_customer_language", payload)
}

func (e *Ext) putCustomer(ctx context.Context, op string, payload map[string]any) error {
	var out map[string]json.RawMessage
	if err := e.do(ctx, op, http.MethodPut, "/api/customers", payload, &out); err != nil {
		return err
	}
	if _, ok := out["success"]; !ok {
		return &UpstreamError{Op: op, Err: fmt.Errorf("response missing success key")}
	}
	return nil
}
