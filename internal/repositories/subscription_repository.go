package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"aquaBack/internal/models"
)

type SubscriptionRepository struct {
	DB *sql.DB
}

func (r *SubscriptionRepository) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT id, name, duration_days, regular_price, COALESCE(sale_price, 0)
                FROM subscription_plans ORDER BY duration_days
        `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []models.SubscriptionPlan
	for rows.Next() {
		var p models.SubscriptionPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.DurationDays, &p.RegularPrice, &p.SalePrice); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *SubscriptionRepository) GetPlan(ctx context.Context, id int) (models.SubscriptionPlan, error) {
	var p models.SubscriptionPlan
	err := r.DB.QueryRowContext(ctx, `
                SELECT id, name, duration_days, regular_price, COALESCE(sale_price, 0)
                FROM subscription_plans WHERE id = ?
        `, id).Scan(&p.ID, &p.Name, &p.DurationDays, &p.RegularPrice, &p.SalePrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SubscriptionPlan{}, models.ErrPlanNotFound
		}
		return models.SubscriptionPlan{}, err
	}
	return p, nil
}

// GetCouponByCode resolves an active coupon. Codes are matched
// case-insensitively; expired or disabled coupons come back as
// ErrCouponInvalid.
func (r *SubscriptionRepository) GetCouponByCode(ctx context.Context, code string) (models.Coupon, error) {
	var c models.Coupon
	err := r.DB.QueryRowContext(ctx, `
                SELECT id, code, discount_percentage, is_active, expiry_date
                FROM coupons WHERE UPPER(code) = ? AND is_active = 1
                AND (expiry_date IS NULL OR expiry_date >= CURDATE())
        `, strings.ToUpper(code)).Scan(&c.ID, &c.Code, &c.DiscountPercentage, &c.IsActive, &c.ExpiryDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Coupon{}, models.ErrCouponInvalid
		}
		return models.Coupon{}, err
	}
	return c, nil
}

func (r *SubscriptionRepository) CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	res, err := r.DB.ExecContext(ctx, `
                INSERT INTO payments (business_id, gateway_order_id, amount, status, subscription_plan_id)
                VALUES (?, ?, ?, ?, ?)
        `, p.BusinessID, p.GatewayOrderID, p.Amount, p.Status, p.SubscriptionPlanID)
	if err != nil {
		return models.Payment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Payment{}, err
	}
	p.ID = int(id)
	return p, nil
}

func (r *SubscriptionRepository) GetPaymentByOrderID(ctx context.Context, gatewayOrderID string) (models.Payment, error) {
	var p models.Payment
	err := r.DB.QueryRowContext(ctx, `
                SELECT id, business_id, COALESCE(gateway_order_id, ''), COALESCE(gateway_payment_id, ''),
                       COALESCE(gateway_signature, ''), amount, status, subscription_plan_id, created_at
                FROM payments WHERE gateway_order_id = ?
        `, gatewayOrderID).Scan(&p.ID, &p.BusinessID, &p.GatewayOrderID, &p.GatewayPaymentID,
		&p.GatewaySignature, &p.Amount, &p.Status, &p.SubscriptionPlanID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, models.ErrPaymentNotFound
		}
		return models.Payment{}, err
	}
	return p, nil
}

// MarkPaymentSuccessful records the gateway identifiers. The status guard
// makes duplicate success callbacks harmless.
func (r *SubscriptionRepository) MarkPaymentSuccessful(ctx context.Context, paymentID int, gatewayPaymentID, signature string) error {
	res, err := r.DB.ExecContext(ctx, `
                UPDATE payments SET status = ?, gateway_payment_id = ?, gateway_signature = ?
                WHERE id = ? AND status = ?
        `, models.PaymentSuccessful, gatewayPaymentID, signature, paymentID, models.PaymentCreated)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrPaymentNotFound
	}
	return nil
}

func (r *SubscriptionRepository) MarkPaymentFailed(ctx context.Context, paymentID int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE payments SET status = ? WHERE id = ? AND status = ?`,
		models.PaymentFailed, paymentID, models.PaymentCreated)
	return err
}

func (r *SubscriptionRepository) ListPaymentsForBusiness(ctx context.Context, businessID int) ([]models.Payment, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT id, business_id, COALESCE(gateway_order_id, ''), COALESCE(gateway_payment_id, ''),
                       COALESCE(gateway_signature, ''), amount, status, subscription_plan_id, created_at
                FROM payments WHERE business_id = ? ORDER BY created_at DESC
        `, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.BusinessID, &p.GatewayOrderID, &p.GatewayPaymentID,
			&p.GatewaySignature, &p.Amount, &p.Status, &p.SubscriptionPlanID, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
