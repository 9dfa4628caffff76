package models

import "time"

const (
	InvoiceStatusPaid   = "Paid"
	InvoiceStatusUnpaid = "Unpaid"
)

type Invoice struct {
	ID            int           `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	IssueDate     time.Time     `json:"issue_date"`
	DueDate       time.Time     `json:"due_date"`
	TotalAmount   float64       `json:"total_amount"`
	Status        string        `json:"status"`
	CustomerID    int           `json:"customer_id"`
	BusinessID    int           `json:"business_id"`
	Items         []InvoiceItem `json:"items,omitempty"`
}

type InvoiceItem struct {
	ID          int     `json:"id"`
	InvoiceID   int     `json:"invoice_id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// LineItem is a billable line computed by a workflow before it is persisted
// as part of an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}
