package models

import "time"

type Customer struct {
	ID           int       `json:"id"`
	Username     string    `json:"username,omitempty"`
	Name         string    `json:"name"`
	MobileNumber string    `json:"mobile_number"`
	Password     string    `json:"password,omitempty"`
	Email        string    `json:"email,omitempty"`
	Village      string    `json:"village,omitempty"`
	Area         string    `json:"area,omitempty"`
	Landmark     string    `json:"landmark,omitempty"`
	DailyJars    int       `json:"daily_jars"`
	PricePerJar  float64   `json:"price_per_jar"`
	DueAmount    float64   `json:"due_amount"`
	BusinessID   int       `json:"business_id"`
	CreatedAt    time.Time `json:"created_at"`
}
