package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"aquaBack/internal/services"
)

type InvoiceHandler struct {
	Service *services.InvoiceService
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid invoice ID", http.StatusBadRequest)
		return
	}

	inv, err := h.Service.Get(r.Context(), actor, id)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(inv)
}

func (h *InvoiceHandler) ListForBusiness(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	limit, _ := getIntParam(r, "limit")
	offset, _ := getIntParam(r, "offset")

	invoices, err := h.Service.ListForBusiness(r.Context(), actor, limit, offset)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoices)
}

// GenerateMonthly raises a statement invoice for one customer and month.
func (h *InvoiceHandler) GenerateMonthly(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		CustomerID int `json:"customer_id"`
		Year       int `json:"year"`
		Month      int `json:"month"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Month < 1 || req.Month > 12 || req.Year < 2000 {
		http.Error(w, "Invalid month or year", http.StatusBadRequest)
		return
	}

	inv, err := h.Service.GenerateMonthly(r.Context(), actor, req.CustomerID, req.Year, time.Month(req.Month))
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(inv)
}
