package handlers

import (
	"encoding/json"
	"net/http"

	"aquaBack/internal/models"
	"aquaBack/internal/services"
)

type BookingHandler struct {
	Service *services.BookingService
}

// CreateByCustomer books an event for the authenticated customer.
func (h *BookingHandler) CreateByCustomer(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	b, err := h.Service.CreateByCustomer(r.Context(), actor.ID, req)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(b)
}

// CreateByStaff books on a walk-in customer's behalf.
func (h *BookingHandler) CreateByStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	b, err := h.Service.CreateByStaff(r.Context(), actor, req)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(b)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid booking ID", http.StatusBadRequest)
		return
	}

	b, err := h.Service.Get(r.Context(), actor, id)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

func (h *BookingHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	bookings, err := h.Service.ListPending(r.Context(), actor)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookings)
}

func (h *BookingHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	status := getParam(r, "status")
	if status == "" {
		http.Error(w, "Missing status", http.StatusBadRequest)
		return
	}

	bookings, err := h.Service.ListByStatus(r.Context(), actor, status)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookings)
}

// DeliveriesForToday powers the staff screen of confirmed bookings due today.
func (h *BookingHandler) DeliveriesForToday(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	bookings, err := h.Service.DeliveriesForToday(r.Context(), actor)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookings)
}

// MyBookings lists the authenticated customer's bookings.
func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	bookings, err := h.Service.ListForCustomer(r.Context(), actor.ID)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookings)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid booking ID", http.StatusBadRequest)
		return
	}
	var req models.ConfirmBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	b, err := h.Service.Confirm(r.Context(), actor, id, req)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

func (h *BookingHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid booking ID", http.StatusBadRequest)
		return
	}

	b, err := h.Service.Deliver(r.Context(), actor, id)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

func (h *BookingHandler) Collect(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid booking ID", http.StatusBadRequest)
		return
	}
	var req models.CollectBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	b, settlement, err := h.Service.Collect(r.Context(), actor, id, req)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"booking": b, "settlement": settlement})
}
