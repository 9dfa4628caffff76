package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"aquaBack/internal/models"
)

const (
	JarRequestPending   = "Pending"
	JarRequestDelivered = "Delivered"
)

type JarRequestRepository struct {
	DB   *sql.DB
	Logs *DailyLogRepository
}

func (r *JarRequestRepository) Create(ctx context.Context, customerID, quantity int) (models.JarRequest, error) {
	res, err := r.DB.ExecContext(ctx, `
                INSERT INTO jar_requests (quantity, status, customer_id) VALUES (?, ?, ?)
        `, quantity, JarRequestPending, customerID)
	if err != nil {
		return models.JarRequest{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.JarRequest{}, err
	}
	return r.GetByID(ctx, int(id), 0)
}

func (r *JarRequestRepository) GetByID(ctx context.Context, id, businessID int) (models.JarRequest, error) {
	query := `
                SELECT r.id, r.quantity, r.status, r.customer_id, c.name, COALESCE(r.delivered_by, 0),
                       r.request_timestamp, r.delivery_timestamp
                FROM jar_requests r JOIN customers c ON c.id = r.customer_id WHERE r.id = ?`
	args := []any{id}
	if businessID != 0 {
		query += ` AND c.business_id = ?`
		args = append(args, businessID)
	}
	var req models.JarRequest
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&req.ID, &req.Quantity, &req.Status, &req.CustomerID, &req.CustomerName, &req.DeliveredBy,
		&req.RequestTimestamp, &req.DeliveryTimestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JarRequest{}, models.ErrRequestNotFound
		}
		return models.JarRequest{}, err
	}
	return req, nil
}

func (r *JarRequestRepository) PendingForBusiness(ctx context.Context, businessID int) ([]models.JarRequest, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT r.id, r.quantity, r.status, r.customer_id, c.name, COALESCE(r.delivered_by, 0),
                       r.request_timestamp, r.delivery_timestamp
                FROM jar_requests r
                JOIN customers c ON c.id = r.customer_id
                WHERE c.business_id = ? AND r.status = ?
                ORDER BY r.request_timestamp
        `, businessID, JarRequestPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.JarRequest
	for rows.Next() {
		var req models.JarRequest
		if err := rows.Scan(&req.ID, &req.Quantity, &req.Status, &req.CustomerID, &req.CustomerName, &req.DeliveredBy,
			&req.RequestTimestamp, &req.DeliveryTimestamp); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *JarRequestRepository) ListForCustomer(ctx context.Context, customerID int) ([]models.JarRequest, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT r.id, r.quantity, r.status, r.customer_id, c.name, COALESCE(r.delivered_by, 0),
                       r.request_timestamp, r.delivery_timestamp
                FROM jar_requests r
                JOIN customers c ON c.id = r.customer_id
                WHERE r.customer_id = ?
                ORDER BY r.request_timestamp DESC
        `, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.JarRequest
	for rows.Next() {
		var req models.JarRequest
		if err := rows.Scan(&req.ID, &req.Quantity, &req.Status, &req.CustomerID, &req.CustomerName, &req.DeliveredBy,
			&req.RequestTimestamp, &req.DeliveryTimestamp); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// Deliver fulfils a pending request: the daily log (with its cash or due
// side effects) and the status flip commit together.
func (r *JarRequestRepository) Deliver(ctx context.Context, requestID int, l models.DailyLog) (models.DailyLog, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.DailyLog{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	l, err = r.Logs.InsertWithCashTx(ctx, tx, l)
	if err != nil {
		return models.DailyLog{}, err
	}
	if err := r.markDeliveredTx(ctx, tx, requestID, l.UserID); err != nil {
		return models.DailyLog{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.DailyLog{}, err
	}
	return l, nil
}

// markDeliveredTx flips a pending request to delivered. The status guard keeps
// two staff members from fulfilling the same request twice.
func (r *JarRequestRepository) markDeliveredTx(ctx context.Context, tx *sql.Tx, requestID, staffID int) error {
	res, err := tx.ExecContext(ctx, `
                UPDATE jar_requests SET status = ?, delivered_by = ?, delivery_timestamp = ?
                WHERE id = ? AND status = ?
        `, JarRequestDelivered, staffID, time.Now().UTC(), requestID, JarRequestPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrRequestNotFound
	}
	return nil
}
