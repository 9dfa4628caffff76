package booking

import (
	"context"
	"database/sql"

	"aquaBack/internal/models"
)

// Status constants for the event booking lifecycle.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusDelivered = "Delivered"
	StatusCompleted = "Completed"
)

// The lifecycle is strictly forward: no transition skips a state and no
// backward transition exists. There is deliberately no way out of Confirmed
// other than Delivered.
var transitions = map[string]map[string]struct{}{
	StatusPending:   {StatusConfirmed: {}},
	StatusConfirmed: {StatusDelivered: {}},
	StatusDelivered: {StatusCompleted: {}},
	StatusCompleted: {},
}

// CanTransition returns whether a booking can move from the current status
// to the target status.
func CanTransition(from, to string) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// Apply updates a booking status inside tx using an optimistic guard on the
// current status. Returns models.ErrInvalidTransition when the transition is
// not allowed and models.ErrBookingConflict when another writer got there
// first; the caller can retry on the latter.
func Apply(ctx context.Context, tx *sql.Tx, bookingID int, fromStatus, toStatus string) error {
	if !CanTransition(fromStatus, toStatus) {
		return models.ErrInvalidTransition
	}
	res, err := tx.ExecContext(ctx, `UPDATE event_bookings SET status = ? WHERE id = ? AND status = ?`, toStatus, bookingID, fromStatus)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrBookingConflict
	}
	return nil
}
