package handlers

import (
	"encoding/json"
	"net/http"

	"aquaBack/internal/models"
	"aquaBack/internal/services"
)

type AuthHandler struct {
	Users     *services.UserService
	Customers *services.CustomerService
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, tokens, err := h.Users.SignIn(r.Context(), req)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"user": user, "tokens": tokens})
}

func (h *AuthHandler) CustomerSignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	customer, tokens, err := h.Customers.SignIn(r.Context(), req)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"customer": customer, "tokens": tokens})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tokens, err := h.Users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tokens)
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Users.SignOut(r.Context(), req.RefreshToken); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Users.ChangePassword(r.Context(), actor.ID, req); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RegisterDeviceToken saves a push token for the authenticated principal,
// user or customer.
func (h *AuthHandler) RegisterDeviceToken(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	t := models.DeviceToken{Token: req.Token}
	if actor.Role.IsCustomer() {
		t.CustomerID = actor.ID
	} else {
		t.UserID = actor.ID
	}
	if err := h.Users.RegisterDeviceToken(r.Context(), t); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *AuthHandler) DeleteDeviceToken(w http.ResponseWriter, r *http.Request) {
	token := getParam(r, "token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusBadRequest)
		return
	}
	if err := h.Users.RemoveDeviceToken(r.Context(), token); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
