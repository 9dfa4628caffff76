package services

import (
	"errors"
	"testing"
	"time"

	"aquaBack/internal/models"
)

func TestParseEventDateUsesBusinessDay(t *testing.T) {
	ist := time.FixedZone("IST", int(5.5*60*60))

	// 20:00 UTC is already 01:30 the next day in IST.
	earliest := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	if _, err := parseEventDate("2026-03-01", earliest, ist); !errors.Is(err, models.ErrEventDateTooEarly) {
		t.Fatalf("expected ErrEventDateTooEarly for a past business day, got %v", err)
	}

	got, err := parseEventDate("2026-03-02", earliest, ist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 2 {
		t.Fatalf("expected 2026-03-02, got %v", got)
	}
	if got.Location() != ist {
		t.Fatalf("expected event date in business location, got %v", got.Location())
	}
}

func TestParseEventDateRejectsBadFormat(t *testing.T) {
	ist := time.FixedZone("IST", int(5.5*60*60))
	if _, err := parseEventDate("03/02/2026", time.Now(), ist); err == nil {
		t.Fatal("expected parse error for non-ISO date")
	}
}
