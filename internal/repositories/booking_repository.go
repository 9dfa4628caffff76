package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"aquaBack/internal/booking"
	"aquaBack/internal/models"
)

type BookingRepository struct {
	DB       *sql.DB
	Business *BusinessRepository
}

const bookingColumns = `b.id, b.customer_id, c.name, c.business_id, b.quantity, b.dispensers_booked,
       b.event_date, COALESCE(b.amount, 0), b.paid_to_manager, b.status,
       COALESCE(b.jars_returned, 0), COALESCE(b.dispensers_returned, 0), COALESCE(b.final_amount, 0),
       b.request_timestamp, b.delivery_timestamp, b.collection_timestamp,
       COALESCE(b.confirmed_by, 0), COALESCE(b.delivered_by, 0), COALESCE(b.collected_by, 0)`

func scanBooking(row interface{ Scan(...any) error }) (models.EventBooking, error) {
	var b models.EventBooking
	err := row.Scan(
		&b.ID, &b.CustomerID, &b.CustomerName, &b.BusinessID, &b.Quantity, &b.DispensersBooked,
		&b.EventDate, &b.Amount, &b.PaidToManager, &b.Status,
		&b.JarsReturned, &b.DispensersReturned, &b.FinalAmount,
		&b.RequestTimestamp, &b.DeliveryTimestamp, &b.CollectionTimestamp,
		&b.ConfirmedBy, &b.DeliveredBy, &b.CollectedBy,
	)
	return b, err
}

func (r *BookingRepository) Create(ctx context.Context, customerID, quantity, dispensers int, eventDate time.Time) (models.EventBooking, error) {
	res, err := r.DB.ExecContext(ctx, `
                INSERT INTO event_bookings (customer_id, quantity, dispensers_booked, event_date, status)
                VALUES (?, ?, ?, ?, ?)
        `, customerID, quantity, dispensers, eventDate, booking.StatusPending)
	if err != nil {
		return models.EventBooking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.EventBooking{}, err
	}
	return r.GetByID(ctx, int(id), 0)
}

// GetByID fetches a booking joined to its customer. A non-zero businessID
// scopes the lookup to that tenant.
func (r *BookingRepository) GetByID(ctx context.Context, id, businessID int) (models.EventBooking, error) {
	query := `SELECT ` + bookingColumns + ` FROM event_bookings b JOIN customers c ON c.id = b.customer_id WHERE b.id = ?`
	args := []any{id}
	if businessID != 0 {
		query += ` AND c.business_id = ?`
		args = append(args, businessID)
	}
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EventBooking{}, models.ErrBookingNotFound
		}
		return models.EventBooking{}, err
	}
	return b, nil
}

func (r *BookingRepository) ListByStatus(ctx context.Context, businessID int, status string) ([]models.EventBooking, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT `+bookingColumns+` FROM event_bookings b
                JOIN customers c ON c.id = b.customer_id
                WHERE c.business_id = ? AND b.status = ?
                ORDER BY b.event_date, b.request_timestamp
        `, businessID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ConfirmedForDate lists bookings due for delivery on a given day.
func (r *BookingRepository) ConfirmedForDate(ctx context.Context, businessID int, day time.Time) ([]models.EventBooking, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT `+bookingColumns+` FROM event_bookings b
                JOIN customers c ON c.id = b.customer_id
                WHERE c.business_id = ? AND b.status = ? AND b.event_date = ?
                ORDER BY b.request_timestamp
        `, businessID, booking.StatusConfirmed, day.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int) ([]models.EventBooking, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT `+bookingColumns+` FROM event_bookings b
                JOIN customers c ON c.id = b.customer_id
                WHERE b.customer_id = ?
                ORDER BY b.request_timestamp DESC
        `, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// CompletedBetween lists completed bookings collected within a period; the
// monthly invoice generator bills their final amounts.
func (r *BookingRepository) CompletedBetween(ctx context.Context, customerID int, from, to time.Time) ([]models.EventBooking, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT `+bookingColumns+` FROM event_bookings b
                JOIN customers c ON c.id = b.customer_id
                WHERE b.customer_id = ? AND b.status = ? AND b.collection_timestamp BETWEEN ? AND ?
                ORDER BY b.collection_timestamp
        `, customerID, booking.StatusCompleted, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]models.EventBooking, error) {
	var bookings []models.EventBooking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// Confirm reserves stock and moves the booking to Confirmed as one
// transaction. The confirmed quantity may differ from the requested one; the
// reservation uses the confirmed figures. On ErrInsufficientStock nothing is
// written and the booking stays Pending.
func (r *BookingRepository) Confirm(ctx context.Context, b models.EventBooking, req models.ConfirmBookingRequest, managerID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := r.Business.ReserveStockTx(ctx, tx, b.BusinessID, req.Quantity, req.DispensersBooked); err != nil {
		return err
	}
	if err := booking.Apply(ctx, tx, b.ID, booking.StatusPending, booking.StatusConfirmed); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
                UPDATE event_bookings
                SET quantity = ?, dispensers_booked = ?, amount = ?, paid_to_manager = ?, confirmed_by = ?
                WHERE id = ?
        `, req.Quantity, req.DispensersBooked, req.Amount, req.PaidToManager, managerID, b.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// Deliver marks a confirmed booking handed over. Stock is untouched; when the
// customer pays the staff member on the spot, the amount lands on that staff
// member's cash balance in the same transaction.
func (r *BookingRepository) Deliver(ctx context.Context, b models.EventBooking, staffID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := booking.Apply(ctx, tx, b.ID, booking.StatusConfirmed, booking.StatusDelivered); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
                UPDATE event_bookings SET delivered_by = ?, delivery_timestamp = ? WHERE id = ?
        `, staffID, time.Now().UTC(), b.ID); err != nil {
		return err
	}
	if !b.PaidToManager {
		if _, err := tx.ExecContext(ctx, `UPDATE users SET cash_balance = cash_balance + ? WHERE id = ?`, b.Amount, staffID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Collect settles a delivered booking: returned items go back to stock, the
// shortfall charge lands on the collecting staff member's cash balance, and
// the booking is completed. All or nothing.
func (r *BookingRepository) Collect(ctx context.Context, b models.EventBooking, s booking.Settlement, staffID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := booking.Apply(ctx, tx, b.ID, booking.StatusDelivered, booking.StatusCompleted); err != nil {
		return err
	}
	if err := r.Business.ReleaseStockTx(ctx, tx, b.BusinessID, s.JarsReturned, s.DispensersReturned); err != nil {
		return err
	}
	if s.ShortfallCharge > 0 {
		if _, err := tx.ExecContext(ctx, `UPDATE users SET cash_balance = cash_balance + ? WHERE id = ?`, s.ShortfallCharge, staffID); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `
                UPDATE event_bookings
                SET jars_returned = ?, dispensers_returned = ?, final_amount = ?, collected_by = ?, collection_timestamp = ?
                WHERE id = ?
        `, s.JarsReturned, s.DispensersReturned, s.FinalAmount, staffID, time.Now().UTC(), b.ID); err != nil {
		return err
	}
	return tx.Commit()
}
