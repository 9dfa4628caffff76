package models

import "time"

type SubscriptionStatus string

const (
	SubscriptionTrial   SubscriptionStatus = "trial"
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionExpired SubscriptionStatus = "expired"
)

type Business struct {
	ID                 int                `json:"id"`
	Name               string             `json:"name"`
	UPIID              string             `json:"upi_id,omitempty"`
	NewJarPrice        float64            `json:"new_jar_price"`
	NewDispenserPrice  float64            `json:"new_dispenser_price"`
	JarStock           int                `json:"jar_stock"`
	DispenserStock     int                `json:"dispenser_stock"`
	FullDayJarCount    int                `json:"full_day_jar_count"`
	HalfDayJarCount    int                `json:"half_day_jar_count"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	TrialEndsAt        *time.Time         `json:"trial_ends_at,omitempty"`
	SubscriptionEndsAt *time.Time         `json:"subscription_ends_at,omitempty"`
	SubscriptionPlanID int                `json:"subscription_plan_id,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

// SubscriptionActiveAt reports whether the business may use manager features
// at the given instant, either on a paid plan or within its trial window.
func (b Business) SubscriptionActiveAt(now time.Time) bool {
	switch b.SubscriptionStatus {
	case SubscriptionActive:
		return b.SubscriptionEndsAt != nil && b.SubscriptionEndsAt.After(now)
	case SubscriptionTrial:
		return b.TrialEndsAt != nil && b.TrialEndsAt.After(now)
	default:
		return false
	}
}

type BusinessSettingsRequest struct {
	NewJarPrice       float64 `json:"new_jar_price"`
	NewDispenserPrice float64 `json:"new_dispenser_price"`
	FullDayJarCount   int     `json:"full_day_jar_count"`
	HalfDayJarCount   int     `json:"half_day_jar_count"`
	UPIID             string  `json:"upi_id"`
}

type AddStockRequest struct {
	JarsAdded       int `json:"jars_added"`
	DispensersAdded int `json:"dispensers_added"`
}
