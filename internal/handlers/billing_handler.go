package handlers

import (
	"encoding/json"
	"net/http"

	"aquaBack/internal/models"
	"aquaBack/internal/services"
)

type BillingHandler struct {
	Service *services.BillingService
}

func (h *BillingHandler) Plans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Service.ListPlans(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(plans)
}

func (h *BillingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payment, err := h.Service.Checkout(r.Context(), actor, req)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payment)
}

// PaymentSuccess is the gateway's success callback.
func (h *BillingHandler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentSuccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	biz, err := h.Service.ConfirmPayment(r.Context(), req)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(biz)
}

func (h *BillingHandler) PaymentFailed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GatewayOrderID string `json:"gateway_order_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GatewayOrderID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.FailPayment(r.Context(), req.GatewayOrderID); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BillingHandler) RequestCOD(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		PlanID int `json:"plan_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payment, err := h.Service.RequestCOD(r.Context(), actor, req.PlanID)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payment)
}

func (h *BillingHandler) ApproveCOD(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		GatewayOrderID string `json:"gateway_order_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GatewayOrderID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	biz, err := h.Service.ApproveCOD(r.Context(), actor, req.GatewayOrderID)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(biz)
}

func (h *BillingHandler) History(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	payments, err := h.Service.PaymentHistory(r.Context(), actor)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payments)
}
