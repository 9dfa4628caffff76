package models

import "time"

const (
	PaymentStatusPaid = "Paid"
	PaymentStatusDue  = "Due"

	PaymentMethodCash   = "Cash"
	PaymentMethodOnline = "Online"
	PaymentMethodDue    = "Due"

	LogOriginStaff   = "staff_log"
	LogOriginRequest = "customer_request"
)

type DailyLog struct {
	ID              int       `json:"id"`
	JarsDelivered   int       `json:"jars_delivered"`
	AmountCollected float64   `json:"amount_collected"`
	PaymentStatus   string    `json:"payment_status"`
	PaymentMethod   string    `json:"payment_method"`
	Origin          string    `json:"origin"`
	CustomerID      int       `json:"customer_id"`
	UserID          int       `json:"user_id"`
	Timestamp       time.Time `json:"timestamp"`
}

type LogDeliveryRequest struct {
	JarsDelivered         int  `json:"jars_delivered"`
	IsDue                 bool `json:"is_due"`
	PaymentReceivedOnline bool `json:"payment_received_online"`
}

type JarRequest struct {
	ID                int        `json:"id"`
	Quantity          int        `json:"quantity"`
	Status            string     `json:"status"`
	CustomerID        int        `json:"customer_id"`
	CustomerName      string     `json:"customer_name,omitempty"`
	DeliveredBy       int        `json:"delivered_by,omitempty"`
	RequestTimestamp  time.Time  `json:"request_timestamp"`
	DeliveryTimestamp *time.Time `json:"delivery_timestamp,omitempty"`
}

type Expense struct {
	ID          int       `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	WageDate    string    `json:"wage_date,omitempty"` // YYYY-MM-DD, set only for wage postings
	UserID      int       `json:"user_id"`
	Timestamp   time.Time `json:"timestamp"`
}

type AddExpenseRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}
