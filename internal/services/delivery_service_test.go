package services

import (
	"testing"

	"aquaBack/internal/models"
)

func TestDeliveryInvoiceStatus(t *testing.T) {
	c := models.Customer{ID: 3, BusinessID: 1, PricePerJar: 30}

	cash := models.DailyLog{JarsDelivered: 4, AmountCollected: 120,
		PaymentStatus: models.PaymentStatusPaid, PaymentMethod: models.PaymentMethodCash}
	lines, status := deliveryInvoice(c, cash)
	if status != models.InvoiceStatusPaid {
		t.Fatalf("cash delivery should invoice Paid, got %q", status)
	}
	if len(lines) != 1 || lines[0].Quantity != 4 || lines[0].Total != 120 {
		t.Fatalf("unexpected line: %+v", lines)
	}
	if lines[0].UnitPrice != 30 {
		t.Fatalf("expected unit price 30, got %v", lines[0].UnitPrice)
	}

	online := models.DailyLog{JarsDelivered: 2, AmountCollected: 60,
		PaymentStatus: models.PaymentStatusPaid, PaymentMethod: models.PaymentMethodOnline}
	if _, status := deliveryInvoice(c, online); status != models.InvoiceStatusPaid {
		t.Fatalf("online delivery should invoice Paid, got %q", status)
	}

	due := models.DailyLog{JarsDelivered: 2, AmountCollected: 60,
		PaymentStatus: models.PaymentStatusDue, PaymentMethod: models.PaymentMethodDue}
	if _, status := deliveryInvoice(c, due); status != models.InvoiceStatusUnpaid {
		t.Fatalf("due delivery should invoice Unpaid, got %q", status)
	}
}
