package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"aquaBack/internal/services"
)

type ReportHandler struct {
	Service  *services.ReportService
	Location *time.Location
}

// Daily returns the dashboard report for one day; defaults to today.
func (h *ReportHandler) Daily(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	day := time.Now().In(h.Location)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, h.Location)
		if err != nil {
			http.Error(w, "Invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		day = parsed
	}

	report, err := h.Service.ForDay(r.Context(), actor, day, h.Location)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// Range aggregates an arbitrary window for the reports screen.
func (h *ReportHandler) Range(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	from, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("from"), h.Location)
	if err != nil {
		http.Error(w, "Invalid from date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	to, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("to"), h.Location)
	if err != nil {
		http.Error(w, "Invalid to date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	to = to.AddDate(0, 0, 1).Add(-time.Second)

	report, err := h.Service.ForRange(r.Context(), actor, from, to)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// StaffOverview lists staff with delivered-jar tallies for the window;
// defaults to the current month.
func (h *ReportHandler) StaffOverview(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	now := time.Now().In(h.Location)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.Location)
	to := now
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, h.Location)
		if err != nil {
			http.Error(w, "Invalid from date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, h.Location)
		if err != nil {
			http.Error(w, "Invalid to date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		to = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}

	summaries, err := h.Service.StaffOverview(r.Context(), actor, from, to)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}
