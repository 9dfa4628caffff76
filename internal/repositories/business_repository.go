package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"aquaBack/internal/models"
)

type BusinessRepository struct {
	DB *sql.DB
}

func (r *BusinessRepository) Create(ctx context.Context, b models.Business) (models.Business, error) {
	res, err := r.DB.ExecContext(ctx, `
                INSERT INTO businesses (name, upi_id, new_jar_price, new_dispenser_price, full_day_jar_count, half_day_jar_count, subscription_status, trial_ends_at)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        `, b.Name, b.UPIID, b.NewJarPrice, b.NewDispenserPrice, b.FullDayJarCount, b.HalfDayJarCount, models.SubscriptionTrial, b.TrialEndsAt)
	if err != nil {
		return models.Business{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Business{}, err
	}
	return r.GetByID(ctx, int(id))
}

func (r *BusinessRepository) GetByID(ctx context.Context, id int) (models.Business, error) {
	var b models.Business
	err := r.DB.QueryRowContext(ctx, `
                SELECT id, name, upi_id, new_jar_price, new_dispenser_price, jar_stock, dispenser_stock,
                       full_day_jar_count, half_day_jar_count, subscription_status, trial_ends_at,
                       subscription_ends_at, COALESCE(subscription_plan_id, 0), created_at
                FROM businesses WHERE id = ?
        `, id).Scan(
		&b.ID, &b.Name, &b.UPIID, &b.NewJarPrice, &b.NewDispenserPrice, &b.JarStock, &b.DispenserStock,
		&b.FullDayJarCount, &b.HalfDayJarCount, &b.SubscriptionStatus, &b.TrialEndsAt,
		&b.SubscriptionEndsAt, &b.SubscriptionPlanID, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Business{}, models.ErrBusinessNotFound
		}
		return models.Business{}, err
	}
	return b, nil
}

func (r *BusinessRepository) List(ctx context.Context) ([]models.Business, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT id, name, upi_id, new_jar_price, new_dispenser_price, jar_stock, dispenser_stock,
                       full_day_jar_count, half_day_jar_count, subscription_status, trial_ends_at,
                       subscription_ends_at, COALESCE(subscription_plan_id, 0), created_at
                FROM businesses ORDER BY name
        `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []models.Business
	for rows.Next() {
		var b models.Business
		if err := rows.Scan(
			&b.ID, &b.Name, &b.UPIID, &b.NewJarPrice, &b.NewDispenserPrice, &b.JarStock, &b.DispenserStock,
			&b.FullDayJarCount, &b.HalfDayJarCount, &b.SubscriptionStatus, &b.TrialEndsAt,
			&b.SubscriptionEndsAt, &b.SubscriptionPlanID, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}

func (r *BusinessRepository) UpdateSettings(ctx context.Context, id int, req models.BusinessSettingsRequest) error {
	res, err := r.DB.ExecContext(ctx, `
                UPDATE businesses
                SET new_jar_price = ?, new_dispenser_price = ?, full_day_jar_count = ?, half_day_jar_count = ?, upi_id = ?
                WHERE id = ?
        `, req.NewJarPrice, req.NewDispenserPrice, req.FullDayJarCount, req.HalfDayJarCount, req.UPIID, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrBusinessNotFound
	}
	return nil
}

// AddStock increments the jar and dispenser counters. Negative additions are
// rejected by the service layer before this runs.
func (r *BusinessRepository) AddStock(ctx context.Context, id, jars, dispensers int) error {
	_, err := r.DB.ExecContext(ctx, `
                UPDATE businesses SET jar_stock = jar_stock + ?, dispenser_stock = dispenser_stock + ? WHERE id = ?
        `, jars, dispensers, id)
	return err
}

// ReserveStockTx decrements both counters as a single reservation. The guard
// in the WHERE clause makes concurrent over-reservation impossible: of two
// confirmations racing for the last stock, exactly one matches the predicate.
func (r *BusinessRepository) ReserveStockTx(ctx context.Context, tx *sql.Tx, id, jars, dispensers int) error {
	res, err := tx.ExecContext(ctx, `
                UPDATE businesses
                SET jar_stock = jar_stock - ?, dispenser_stock = dispenser_stock - ?
                WHERE id = ? AND jar_stock >= ? AND dispenser_stock >= ?
        `, jars, dispensers, id, jars, dispensers)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrInsufficientStock
	}
	return nil
}

// ReleaseStockTx returns collected items to stock.
func (r *BusinessRepository) ReleaseStockTx(ctx context.Context, tx *sql.Tx, id, jars, dispensers int) error {
	_, err := tx.ExecContext(ctx, `
                UPDATE businesses SET jar_stock = jar_stock + ?, dispenser_stock = dispenser_stock + ? WHERE id = ?
        `, jars, dispensers, id)
	return err
}

func (r *BusinessRepository) ActivateSubscription(ctx context.Context, businessID, planID int, endsAt time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
                UPDATE businesses
                SET subscription_status = ?, subscription_plan_id = ?, subscription_ends_at = ?
                WHERE id = ?
        `, models.SubscriptionActive, planID, endsAt, businessID)
	return err
}

// ExpireLapsedTrials flips trial businesses whose window has passed. Returns
// the number of businesses expired; used by the daily expirer.
func (r *BusinessRepository) ExpireLapsedTrials(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
                UPDATE businesses SET subscription_status = ?
                WHERE subscription_status = ? AND trial_ends_at IS NOT NULL AND trial_ends_at < ?
        `, models.SubscriptionExpired, models.SubscriptionTrial, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *BusinessRepository) MarkExpired(ctx context.Context, businessID int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE businesses SET subscription_status = ? WHERE id = ?`, models.SubscriptionExpired, businessID)
	return err
}
