package repositories

import (
	"context"
	"database/sql"
	"time"

	"aquaBack/internal/models"
)

type ExpenseRepository struct {
	DB *sql.DB
}

// InsertWithCash records a manual expense and debits the staff member's cash
// balance in one transaction.
func (r *ExpenseRepository) InsertWithCash(ctx context.Context, e models.Expense) (models.Expense, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Expense{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `
                INSERT INTO expenses (amount, description, user_id) VALUES (?, ?, ?)
        `, e.Amount, e.Description, e.UserID)
	if err != nil {
		return models.Expense{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Expense{}, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET cash_balance = cash_balance - ? WHERE id = ?`, e.Amount, e.UserID); err != nil {
		return models.Expense{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Expense{}, err
	}
	e.ID = int(id)
	e.Timestamp = time.Now().UTC()
	return e, nil
}

func (r *ExpenseRepository) ListForBusinessBetween(ctx context.Context, businessID int, from, to time.Time) ([]models.Expense, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT e.id, e.amount, e.description, COALESCE(e.wage_date, ''), e.user_id, e.timestamp
                FROM expenses e
                JOIN users u ON u.id = e.user_id
                WHERE u.business_id = ? AND e.timestamp BETWEEN ? AND ?
                ORDER BY e.timestamp
        `, businessID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Amount, &e.Description, &e.WageDate, &e.UserID, &e.Timestamp); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
