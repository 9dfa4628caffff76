package repositories

import (
	"context"
	"database/sql"
	"time"

	"aquaBack/internal/models"
)

type ProductSaleRepository struct {
	DB *sql.DB
}

// stockColumn maps a sellable product to the business column it draws from.
func stockColumn(productName string) (string, bool) {
	switch productName {
	case "New Jar":
		return "jar_stock", true
	case "Dispenser":
		return "dispenser_stock", true
	}
	return "", false
}

// RecordSale decrements business stock and writes the sale plus the cash
// credit in one transaction. The conditional decrement refuses to oversell.
func (r *ProductSaleRepository) RecordSale(ctx context.Context, s models.ProductSale) (models.ProductSale, error) {
	column, ok := stockColumn(s.ProductName)
	if !ok {
		return models.ProductSale{}, models.ErrProductNotFound
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.ProductSale{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `
                UPDATE businesses SET `+column+` = `+column+` - ? WHERE id = ? AND `+column+` >= ?
        `, s.Quantity, s.BusinessID, s.Quantity)
	if err != nil {
		return models.ProductSale{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.ProductSale{}, err
	}
	if n == 0 {
		return models.ProductSale{}, models.ErrInsufficientStock
	}

	ins, err := tx.ExecContext(ctx, `
                INSERT INTO product_sales (product_name, quantity, price_per_item, total_amount, customer_name, customer_mobile, user_id, business_id)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        `, s.ProductName, s.Quantity, s.PricePerItem, s.TotalAmount, s.CustomerName, s.CustomerMobile, s.UserID, s.BusinessID)
	if err != nil {
		return models.ProductSale{}, err
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return models.ProductSale{}, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE users SET cash_balance = cash_balance + ? WHERE id = ?`, s.TotalAmount, s.UserID); err != nil {
		return models.ProductSale{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.ProductSale{}, err
	}
	s.ID = int(id)
	s.Timestamp = time.Now().UTC()
	return s, nil
}

func (r *ProductSaleRepository) ListForBusinessBetween(ctx context.Context, businessID int, from, to time.Time) ([]models.ProductSale, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT id, product_name, quantity, price_per_item, total_amount,
                       COALESCE(customer_name, ''), COALESCE(customer_mobile, ''), user_id, business_id, timestamp
                FROM product_sales WHERE business_id = ? AND timestamp BETWEEN ? AND ?
                ORDER BY timestamp
        `, businessID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []models.ProductSale
	for rows.Next() {
		var s models.ProductSale
		if err := rows.Scan(&s.ID, &s.ProductName, &s.Quantity, &s.PricePerItem, &s.TotalAmount,
			&s.CustomerName, &s.CustomerMobile, &s.UserID, &s.BusinessID, &s.Timestamp); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
