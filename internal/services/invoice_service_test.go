package services

import (
	"errors"
	"testing"
	"time"

	"aquaBack/internal/models"
)

func TestAssembleInvoiceCarriesStatus(t *testing.T) {
	now := time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)
	lines := []models.LineItem{
		{Description: "Event Booking #7", Quantity: 1, UnitPrice: 500, Total: 500},
		{Description: "Missing Jars (2)", Quantity: 2, UnitPrice: 150, Total: 300},
	}

	inv, err := assembleInvoice(4, 2, lines, models.InvoiceStatusPaid, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Status != models.InvoiceStatusPaid {
		t.Fatalf("settled charge should open Paid, got %q", inv.Status)
	}
	if inv.TotalAmount != 800 {
		t.Fatalf("expected total 800, got %v", inv.TotalAmount)
	}
	if !inv.DueDate.Equal(now.AddDate(0, 0, invoiceDueDays)) {
		t.Fatalf("expected due date %d days after issue, got %v", invoiceDueDays, inv.DueDate)
	}
	if len(inv.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(inv.Items))
	}

	inv, err = assembleInvoice(4, 2, lines, models.InvoiceStatusUnpaid, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Status != models.InvoiceStatusUnpaid {
		t.Fatalf("statement should open Unpaid, got %q", inv.Status)
	}
}

func TestAssembleInvoiceSkipsZeroTotals(t *testing.T) {
	now := time.Now()

	_, err := assembleInvoice(1, 1, nil, models.InvoiceStatusPaid, now)
	if !errors.Is(err, models.ErrNoBillableActivity) {
		t.Fatalf("expected ErrNoBillableActivity for no lines, got %v", err)
	}

	free := []models.LineItem{{Description: "Water Jar Delivery (3 jars)", Quantity: 3}}
	_, err = assembleInvoice(1, 1, free, models.InvoiceStatusPaid, now)
	if !errors.Is(err, models.ErrNoBillableActivity) {
		t.Fatalf("expected ErrNoBillableActivity for zero total, got %v", err)
	}
}
