package handlers

import (
	"encoding/json"
	"net/http"

	"aquaBack/internal/models"
	"aquaBack/internal/services"
)

type CustomerHandler struct {
	Service  *services.CustomerService
	Invoices *services.InvoiceService
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var c models.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.Create(r.Context(), actor, c)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	c, err := h.Service.Get(r.Context(), actor, id)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	customers, err := h.Service.List(r.Context(), actor)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customers)
}

func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	customers, err := h.Service.Search(r.Context(), actor, r.URL.Query().Get("q"))
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customers)
}

func (h *CustomerHandler) WithDues(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	customers, err := h.Service.WithDues(r.Context(), actor)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customers)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}
	var c models.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	c.ID = id

	if err := h.Service.Update(r.Context(), actor, c); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.Delete(r.Context(), actor, id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// History returns the authenticated customer's own delivery log.
func (h *CustomerHandler) History(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	logs, err := h.Service.History(r.Context(), actor.ID)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}

// CustomerHistory lets managers inspect any customer's log.
func (h *CustomerHandler) CustomerHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}
	if _, err := h.Service.Get(r.Context(), actor, id); err != nil {
		serviceError(w, err)
		return
	}

	logs, err := h.Service.History(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}

// PaymentQR returns the UPI deep link for the customer's outstanding dues.
func (h *CustomerHandler) PaymentQR(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	qr, err := h.Service.PaymentQR(r.Context(), actor.ID)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"upi_string": qr})
}

// MyInvoices lists the authenticated customer's invoices.
func (h *CustomerHandler) MyInvoices(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	limit, _ := getIntParam(r, "limit")
	offset, _ := getIntParam(r, "offset")

	invoices, err := h.Invoices.ListForCustomer(r.Context(), actor.ID, limit, offset)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoices)
}
