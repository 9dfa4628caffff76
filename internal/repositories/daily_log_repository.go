package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"aquaBack/internal/models"
)

type DailyLogRepository struct {
	DB *sql.DB
}

// InsertWithCash writes the delivery log and, for cash payments, credits the
// delivering staff member's balance; for dues it debits the customer's due
// amount instead. One transaction either way.
func (r *DailyLogRepository) InsertWithCash(ctx context.Context, l models.DailyLog) (models.DailyLog, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.DailyLog{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	l, err = r.InsertWithCashTx(ctx, tx, l)
	if err != nil {
		return models.DailyLog{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.DailyLog{}, err
	}
	return l, nil
}

// InsertWithCashTx is InsertWithCash inside a caller-owned transaction, for
// flows that pair the log with another write.
func (r *DailyLogRepository) InsertWithCashTx(ctx context.Context, tx *sql.Tx, l models.DailyLog) (models.DailyLog, error) {
	res, err := tx.ExecContext(ctx, `
                INSERT INTO daily_logs (jars_delivered, amount_collected, payment_status, payment_method, origin, customer_id, user_id)
                VALUES (?, ?, ?, ?, ?, ?, ?)
        `, l.JarsDelivered, l.AmountCollected, l.PaymentStatus, l.PaymentMethod, l.Origin, l.CustomerID, l.UserID)
	if err != nil {
		return models.DailyLog{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.DailyLog{}, err
	}

	switch {
	case l.PaymentStatus == models.PaymentStatusPaid && l.PaymentMethod == models.PaymentMethodCash:
		if _, err := tx.ExecContext(ctx, `UPDATE users SET cash_balance = cash_balance + ? WHERE id = ?`, l.AmountCollected, l.UserID); err != nil {
			return models.DailyLog{}, err
		}
	case l.PaymentStatus == models.PaymentStatusDue:
		if _, err := tx.ExecContext(ctx, `UPDATE customers SET due_amount = due_amount + ? WHERE id = ?`, l.AmountCollected, l.CustomerID); err != nil {
			return models.DailyLog{}, err
		}
	}

	l.ID = int(id)
	l.Timestamp = time.Now().UTC()
	return l, nil
}

func (r *DailyLogRepository) ListForCustomer(ctx context.Context, customerID int) ([]models.DailyLog, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT id, jars_delivered, amount_collected, payment_status, payment_method, origin, customer_id, user_id, timestamp
                FROM daily_logs WHERE customer_id = ? ORDER BY timestamp DESC
        `, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogs(rows)
}

func (r *DailyLogRepository) ListForBusinessBetween(ctx context.Context, businessID int, from, to time.Time) ([]models.DailyLog, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT l.id, l.jars_delivered, l.amount_collected, l.payment_status, l.payment_method, l.origin, l.customer_id, l.user_id, l.timestamp
                FROM daily_logs l
                JOIN customers c ON c.id = l.customer_id
                WHERE c.business_id = ? AND l.timestamp BETWEEN ? AND ?
                ORDER BY l.timestamp
        `, businessID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogs(rows)
}

func (r *DailyLogRepository) ListBetweenForCustomer(ctx context.Context, customerID int, from, to time.Time) ([]models.DailyLog, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT id, jars_delivered, amount_collected, payment_status, payment_method, origin, customer_id, user_id, timestamp
                FROM daily_logs WHERE customer_id = ? AND timestamp BETWEEN ? AND ?
                ORDER BY timestamp
        `, customerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogs(rows)
}

func collectLogs(rows *sql.Rows) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	for rows.Next() {
		var l models.DailyLog
		if err := rows.Scan(&l.ID, &l.JarsDelivered, &l.AmountCollected, &l.PaymentStatus, &l.PaymentMethod, &l.Origin, &l.CustomerID, &l.UserID, &l.Timestamp); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *DailyLogRepository) SumJarsForStaffBetween(ctx context.Context, userID int, from, to time.Time) (int, error) {
	var total sql.NullInt64
	err := r.DB.QueryRowContext(ctx, `
                SELECT SUM(jars_delivered) FROM daily_logs WHERE user_id = ? AND timestamp BETWEEN ? AND ?
        `, userID, from, to).Scan(&total)
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}

// ClearDues zeroes a customer's due amount into the collecting staff member's
// cash balance and flips their Due logs and Unpaid invoices to Paid.
func (r *DailyLogRepository) ClearDues(ctx context.Context, customerID, staffID int) (float64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var due float64
	if err := tx.QueryRowContext(ctx, `SELECT due_amount FROM customers WHERE id = ? FOR UPDATE`, customerID).Scan(&due); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, models.ErrCustomerNotFound
		}
		return 0, err
	}
	if due <= 0 {
		return 0, models.ErrNothingDue
	}

	if _, err := tx.ExecContext(ctx, `UPDATE customers SET due_amount = 0 WHERE id = ?`, customerID); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET cash_balance = cash_balance + ? WHERE id = ?`, due, staffID); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE daily_logs SET payment_status = ? WHERE customer_id = ? AND payment_status = ?`,
		models.PaymentStatusPaid, customerID, models.PaymentStatusDue); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE invoices SET status = ? WHERE customer_id = ? AND status = ?`,
		models.InvoiceStatusPaid, customerID, models.InvoiceStatusUnpaid); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return due, nil
}
