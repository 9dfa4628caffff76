package models

import "time"

type SubscriptionPlan struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	DurationDays int     `json:"duration_days"`
	RegularPrice float64 `json:"regular_price"`
	SalePrice    float64 `json:"sale_price"`
}

type Coupon struct {
	ID                 int        `json:"id"`
	Code               string     `json:"code"`
	DiscountPercentage float64    `json:"discount_percentage"`
	IsActive           bool       `json:"is_active"`
	ExpiryDate         *time.Time `json:"expiry_date,omitempty"`
}

const (
	PaymentCreated    = "created"
	PaymentSuccessful = "successful"
	PaymentFailed     = "failed"
	PaymentCOD        = "cod"
)

type Payment struct {
	ID                 int       `json:"id"`
	BusinessID         int       `json:"business_id"`
	GatewayOrderID     string    `json:"gateway_order_id,omitempty"`
	GatewayPaymentID   string    `json:"gateway_payment_id,omitempty"`
	GatewaySignature   string    `json:"gateway_signature,omitempty"`
	Amount             float64   `json:"amount"`
	Status             string    `json:"status"`
	SubscriptionPlanID int       `json:"subscription_plan_id"`
	CreatedAt          time.Time `json:"created_at"`
}

type CheckoutRequest struct {
	PlanID     int    `json:"plan_id"`
	CouponCode string `json:"coupon_code,omitempty"`
}

type PaymentSuccessRequest struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	GatewaySignature string `json:"gateway_signature"`
}
