package models

import "time"

type EventBooking struct {
	ID                  int        `json:"id"`
	CustomerID          int        `json:"customer_id"`
	CustomerName        string     `json:"customer_name,omitempty"`
	BusinessID          int        `json:"business_id,omitempty"`
	Quantity            int        `json:"quantity"`
	DispensersBooked    int        `json:"dispensers_booked"`
	EventDate           time.Time  `json:"event_date"`
	Amount              float64    `json:"amount"`
	PaidToManager       bool       `json:"paid_to_manager"`
	Status              string     `json:"status"`
	JarsReturned        int        `json:"jars_returned"`
	DispensersReturned  int        `json:"dispensers_returned"`
	FinalAmount         float64    `json:"final_amount"`
	RequestTimestamp    time.Time  `json:"request_timestamp"`
	DeliveryTimestamp   *time.Time `json:"delivery_timestamp,omitempty"`
	CollectionTimestamp *time.Time `json:"collection_timestamp,omitempty"`
	ConfirmedBy         int        `json:"confirmed_by,omitempty"`
	DeliveredBy         int        `json:"delivered_by,omitempty"`
	CollectedBy         int        `json:"collected_by,omitempty"`
}

type CreateBookingRequest struct {
	CustomerID       int    `json:"customer_id"`
	Quantity         int    `json:"quantity"`
	DispensersBooked int    `json:"dispensers_booked"`
	EventDate        string `json:"event_date"` // YYYY-MM-DD
}

type ConfirmBookingRequest struct {
	Quantity         int     `json:"quantity"`
	DispensersBooked int     `json:"dispensers_booked"`
	Amount           float64 `json:"amount"`
	PaidToManager    bool    `json:"paid_to_manager"`
}

type CollectBookingRequest struct {
	JarsReturned       int `json:"jars_returned"`
	DispensersReturned int `json:"dispensers_returned"`
}
