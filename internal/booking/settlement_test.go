package booking

import (
	"errors"
	"testing"

	"aquaBack/internal/models"
)

func TestSettleShortfall(t *testing.T) {
	b := models.EventBooking{Quantity: 5, DispensersBooked: 1, Amount: 500}

	s, err := Settle(b, Return{Jars: 4, Dispensers: 1}, 150, 1500)
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if s.MissingJars != 1 || s.MissingDispensers != 0 {
		t.Fatalf("expected 1 missing jar and 0 missing dispensers, got %d and %d", s.MissingJars, s.MissingDispensers)
	}
	if s.ShortfallCharge != 150 {
		t.Fatalf("expected shortfall charge 150, got %.2f", s.ShortfallCharge)
	}
	if s.FinalAmount != 650 {
		t.Fatalf("expected final amount 650, got %.2f", s.FinalAmount)
	}
}

func TestSettleFullReturn(t *testing.T) {
	b := models.EventBooking{Quantity: 10, DispensersBooked: 2, Amount: 800}

	s, err := Settle(b, Return{Jars: 10, Dispensers: 2}, 150, 1500)
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if s.ShortfallCharge != 0 {
		t.Fatalf("expected no shortfall charge, got %.2f", s.ShortfallCharge)
	}
	if s.FinalAmount != b.Amount {
		t.Fatalf("expected final amount to equal booking amount, got %.2f", s.FinalAmount)
	}
	// Stock conservation: decrement at confirm minus release at collect must
	// net to the missing quantity.
	if b.Quantity-s.JarsReturned != s.MissingJars {
		t.Fatal("jar conservation violated")
	}
}

func TestSettleRejectsOutOfRangeReturns(t *testing.T) {
	b := models.EventBooking{Quantity: 5, DispensersBooked: 1, Amount: 500}

	cases := []Return{
		{Jars: 6, Dispensers: 0},
		{Jars: -1, Dispensers: 0},
		{Jars: 5, Dispensers: 2},
		{Jars: 5, Dispensers: -1},
	}
	for _, ret := range cases {
		if _, err := Settle(b, ret, 150, 1500); !errors.Is(err, models.ErrReturnOutOfRange) {
			t.Fatalf("expected ErrReturnOutOfRange for %+v, got %v", ret, err)
		}
	}
}

func TestInvoiceLines(t *testing.T) {
	b := models.EventBooking{Quantity: 5, DispensersBooked: 2, Amount: 500}
	s, err := Settle(b, Return{Jars: 3, Dispensers: 1}, 150, 1500)
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}

	lines := InvoiceLines(b, s, 150, 1500)
	if len(lines) != 3 {
		t.Fatalf("expected base line plus two shortfall lines, got %d", len(lines))
	}
	if lines[0].Total != 500 {
		t.Fatalf("expected base line total 500, got %.2f", lines[0].Total)
	}
	var sum float64
	for _, l := range lines {
		sum += l.Total
	}
	if sum != s.FinalAmount {
		t.Fatalf("line totals %.2f do not add up to final amount %.2f", sum, s.FinalAmount)
	}
}
