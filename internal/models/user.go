package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Role is the closed set of account roles. Handlers and services check
// capabilities through the methods below instead of comparing raw strings.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleStaff    Role = "staff"
	RoleSupplier Role = "supplier"
	RoleCustomer Role = "customer"
)

// CanManageBusiness reports whether the role may edit business settings,
// stock and staff, and confirm event bookings.
func (r Role) CanManageBusiness() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanDeliver reports whether the role may log deliveries, collect bookings
// and record field expenses.
func (r Role) CanDeliver() bool {
	return r == RoleStaff || r == RoleManager
}

func (r Role) IsCustomer() bool { return r == RoleCustomer }
func (r Role) IsSupplier() bool { return r == RoleSupplier }

type WageType string

const (
	WageTypeDaily   WageType = "daily"
	WageTypeMonthly WageType = "monthly"
)

type User struct {
	ID            int        `json:"id"`
	Username      string     `json:"username"`
	Password      string     `json:"password,omitempty"`
	Role          Role       `json:"role"`
	WageType      WageType   `json:"wage_type,omitempty"`
	DailyWage     float64    `json:"daily_wage,omitempty"`
	MonthlySalary float64    `json:"monthly_salary,omitempty"`
	CashBalance   float64    `json:"cash_balance"`
	MobileNumber  string     `json:"mobile_number,omitempty"`
	Email         string     `json:"email,omitempty"`
	Address       string     `json:"address,omitempty"`
	IDProofURL    string     `json:"id_proof_url,omitempty"`
	BusinessID    int        `json:"business_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// Actor is the authenticated principal attached to every request.
type Actor struct {
	ID         int
	Role       Role
	BusinessID int
}

type Claims struct {
	UserID     int    `json:"user_id"`
	Role       string `json:"role"`
	BusinessID int    `json:"business_id"`
	jwt.StandardClaims
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Session struct {
	UserID       int       `json:"user_id"`
	Role         string    `json:"role"`
	BusinessID   int       `json:"business_id"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type SignInRequest struct {
	Username string `json:"username"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type DeviceToken struct {
	UserID     int    `json:"user_id"`
	CustomerID int    `json:"customer_id"`
	Token      string `json:"token"`
}

type CashHandover struct {
	ID        int       `json:"id"`
	Amount    float64   `json:"amount"`
	UserID    int       `json:"user_id"`
	ManagerID int       `json:"manager_id"`
	Timestamp time.Time `json:"timestamp"`
}
