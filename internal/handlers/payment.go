package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"poetry-share-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// PaymentHandler exposes the stateless payment bridge endpoints. Routes
// keep the paths the checkout frontend already calls.
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateOrder handles POST /create-razorpay-order
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req services.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		respondError(w, "amount is required", http.StatusBadRequest)
		return
	}

	result, err := h.paymentService.CreateOrder(r.Context(), req)
	if err != nil {
		h.relayFailure(w, err, "Failed to create payment order")
		return
	}

	if !result.OK {
		log.Error().Int("status", result.StatusCode).Msg("Razorpay order creation rejected")
		respondError(w, result.ErrorDescription("Failed to create order"), result.StatusCode)
		return
	}

	relayBody(w, result.Body)
}

// subscriptionRequest accepts the plan identifier under every field name
// the checkout frontend has historically sent.
type subscriptionRequest struct {
	PlanID    string `json:"planId"`
	PlanIDAlt string `json:"plan_id"`
	Plan      string `json:"plan"`
}

func (r *subscriptionRequest) plan() string {
	if r.PlanID != "" {
		return r.PlanID
	}
	if r.PlanIDAlt != "" {
		return r.PlanIDAlt
	}
	return r.Plan
}

// CreateSubscription handles POST /create-razorpay-subscription
func (h *PaymentHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	planID := req.plan()
	if planID == "" {
		respondError(w, "Plan ID is required", http.StatusBadRequest)
		return
	}

	result, err := h.paymentService.CreateSubscription(r.Context(), planID)
	if err != nil {
		h.relayFailure(w, err, "Subscription request failed")
		return
	}

	if !result.OK {
		log.Error().Int("status", result.StatusCode).Str("plan_id", planID).Msg("Razorpay subscription creation rejected")
		respondError(w, result.ErrorDescription("Subscription creation failed"), result.StatusCode)
		return
	}

	log.Info().Str("plan_id", planID).Msg("Razorpay subscription created")

	relayBody(w, result.Body)
}

// relayFailure maps bridge-side failures: missing credentials and
// unreachable/malformed processor responses are both 500s, with distinct
// messages.
func (h *PaymentHandler) relayFailure(w http.ResponseWriter, err error, fallback string) {
	log.Error().Err(err).Msg("Payment bridge call failed")
	if errors.Is(err, services.ErrPaymentNotConfigured) {
		respondError(w, "Server configuration error", http.StatusInternalServerError)
		return
	}
	respondError(w, fallback, http.StatusInternalServerError)
}

// relayBody forwards the processor's JSON response unchanged
func relayBody(w http.ResponseWriter, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
