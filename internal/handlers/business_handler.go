package handlers

import (
	"encoding/json"
	"net/http"

	"aquaBack/internal/models"
	"aquaBack/internal/services"
)

type BusinessHandler struct {
	Service *services.BusinessService
}

func (h *BusinessHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var b models.Business
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.Create(r.Context(), actor, b)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *BusinessHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	businesses, err := h.Service.List(r.Context(), actor)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(businesses)
}

func (h *BusinessHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid business ID", http.StatusBadRequest)
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

// Mine returns the actor's own business, the manager dashboard's first call.
func (h *BusinessHandler) Mine(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	b, err := h.Service.Get(r.Context(), actor, actor.BusinessID)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

func (h *BusinessHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req models.BusinessSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.UpdateSettings(r.Context(), actor, req); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BusinessHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req models.AddStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	b, err := h.Service.AddStock(r.Context(), actor, req)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}
