package handlers

import (
	"errors"
	"net/http"

	"github.com/go-sql-driver/mysql"

	"aquaBack/internal/models"
)

// isForeignKeyConstraintError checks if the error corresponds to a MySQL/MariaDB
// foreign key constraint failure. This helps translate DB failures into clear
// client-facing validation responses instead of generic 500 errors.
func isForeignKeyConstraintError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1452
}

// statusFor maps domain errors to HTTP status codes. Anything unknown is a
// server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden),
		errors.Is(err, models.ErrWrongBusiness),
		errors.Is(err, models.ErrSubscriptionExpired):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNoRecord),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrCustomerNotFound),
		errors.Is(err, models.ErrBusinessNotFound),
		errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrRequestNotFound),
		errors.Is(err, models.ErrInvoiceNotFound),
		errors.Is(err, models.ErrPlanNotFound),
		errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrPaymentNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateUsername),
		errors.Is(err, models.ErrDuplicateMobile),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrBookingConflict),
		errors.Is(err, models.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, models.ErrEmptyBooking),
		errors.Is(err, models.ErrEventDateTooEarly),
		errors.Is(err, models.ErrReturnOutOfRange),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrNegativeStock),
		errors.Is(err, models.ErrNothingDue),
		errors.Is(err, models.ErrNoCashToHandOver),
		errors.Is(err, models.ErrCouponInvalid),
		errors.Is(err, models.ErrCartEmpty),
		errors.Is(err, models.ErrNoBillableActivity),
		errors.Is(err, models.ErrSignatureMismatch):
		return http.StatusBadRequest
	}
	if isForeignKeyConstraintError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func serviceError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFor(err))
}
