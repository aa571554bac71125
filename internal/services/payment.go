package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"poetry-share-backend/internal/config"
)

// ErrPaymentNotConfigured means the server-side Razorpay credentials are
// missing. The bridge refuses before making any outbound call.
var ErrPaymentNotConfigured = errors.New("razorpay credentials are not configured")

// PaymentService is a stateless bridge to the Razorpay API. It forwards
// order and subscription creation requests with the server-held key pair
// and relays the processor's response; nothing is persisted locally.
type PaymentService struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

// NewPaymentService creates a new payment service
func NewPaymentService(cfg config.RazorpayConfig) *PaymentService {
	return &PaymentService{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   cfg.BaseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// OrderRequest represents an order creation request from the client
type OrderRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency"`
	Plan     string  `json:"plan"`
}

// ProcessorResult is the processor's response, relayed as-is to the
// caller. OK mirrors the processor's HTTP status class.
type ProcessorResult struct {
	StatusCode int
	Body       json.RawMessage
	OK         bool
}

// ErrorDescription extracts the processor's error.description from a
// failed result, falling back to the given message.
func (r *ProcessorResult) ErrorDescription(fallback string) string {
	var payload struct {
		Error struct {
			Description string `json:"description"`
		} `json:"error"`
	}
	if err := json.Unmarshal(r.Body, &payload); err == nil && payload.Error.Description != "" {
		return payload.Error.Description
	}
	return fallback
}

// CreateOrder creates a one-time payment order. The amount arrives in
// currency units and is forwarded in paise, Razorpay's smallest unit.
func (s *PaymentService) CreateOrder(ctx context.Context, req OrderRequest) (*ProcessorResult, error) {
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	payload := map[string]interface{}{
		"amount":          int64(math.Round(req.Amount * 100)),
		"currency":        currency,
		"receipt":         fmt.Sprintf("rcpt_%d", time.Now().UnixMilli()),
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"plan":            req.Plan,
			"platform":        "web",
			"original_amount": req.Amount,
		},
	}

	return s.post(ctx, "/v1/orders", payload)
}

// CreateSubscription creates a recurring subscription for the given plan.
func (s *PaymentService) CreateSubscription(ctx context.Context, planID string) (*ProcessorResult, error) {
	payload := map[string]interface{}{
		"plan_id":         planID,
		"customer_notify": 1,
		"total_count":     12,
		"quantity":        1,
	}

	return s.post(ctx, "/v1/subscriptions", payload)
}

func (s *PaymentService) post(ctx context.Context, path string, payload interface{}) (*ProcessorResult, error) {
	if s.keyID == "" || s.keySecret == "" {
		return nil, ErrPaymentNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.keyID, s.keySecret)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read razorpay response: %w", err)
	}
	if !json.Valid(respBody) {
		return nil, fmt.Errorf("malformed razorpay response (status %d)", resp.StatusCode)
	}

	return &ProcessorResult{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 300,
	}, nil
}
