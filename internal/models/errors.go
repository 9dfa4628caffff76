package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateUsername  = errors.New("models: duplicate username")
	ErrDuplicateMobile    = errors.New("models: duplicate mobile number")
	ErrForbidden          = errors.New("models: operation not allowed for this role")
	ErrWrongBusiness      = errors.New("models: entity belongs to another business")

	ErrUserNotFound     = errors.New("models: user not found")
	ErrCustomerNotFound = errors.New("models: customer not found")
	ErrBusinessNotFound = errors.New("models: business not found")
	ErrBookingNotFound  = errors.New("models: event booking not found")
	ErrRequestNotFound  = errors.New("models: jar request not found")
	ErrInvoiceNotFound  = errors.New("models: invoice not found")
	ErrPlanNotFound     = errors.New("models: subscription plan not found")
	ErrProductNotFound  = errors.New("models: supplier product not found")
	ErrPaymentNotFound  = errors.New("models: payment not found")

	ErrInsufficientStock   = errors.New("models: not enough stock to cover the reservation")
	ErrNegativeStock       = errors.New("models: stock additions must be non-negative")
	ErrInvalidTransition   = errors.New("models: invalid booking status transition")
	ErrBookingConflict     = errors.New("models: booking was changed by another request, retry")
	ErrEmptyBooking        = errors.New("models: booking must include at least one jar or dispenser")
	ErrEventDateTooEarly   = errors.New("models: event date is too early")
	ErrReturnOutOfRange    = errors.New("models: returned quantity outside the booked range")
	ErrInvalidQuantity     = errors.New("models: quantity must be positive")
	ErrInvalidAmount       = errors.New("models: amount must be positive")
	ErrNothingDue          = errors.New("models: customer has no outstanding dues")
	ErrNoCashToHandOver    = errors.New("models: staff member has no cash balance to hand over")
	ErrCouponInvalid       = errors.New("models: invalid or expired coupon code")
	ErrSubscriptionExpired = errors.New("models: business subscription has expired")
	ErrSignatureMismatch   = errors.New("models: payment signature verification failed")
	ErrCartEmpty           = errors.New("models: cart is empty")
	ErrNoBillableActivity  = errors.New("models: no billable activity in the selected period")
)
