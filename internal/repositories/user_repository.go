package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"aquaBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, username, password_hash, role, COALESCE(wage_type, ''), COALESCE(daily_wage, 0),
       COALESCE(monthly_salary, 0), cash_balance, COALESCE(mobile_number, ''), COALESCE(email, ''),
       COALESCE(address, ''), COALESCE(id_proof_url, ''), COALESCE(business_id, 0), created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Password, &u.Role, &u.WageType, &u.DailyWage,
		&u.MonthlySalary, &u.CashBalance, &u.MobileNumber, &u.Email,
		&u.Address, &u.IDProofURL, &u.BusinessID, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *UserRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	res, err := r.DB.ExecContext(ctx, `
                INSERT INTO users (username, password_hash, role, wage_type, daily_wage, monthly_salary, mobile_number, email, address, business_id)
                VALUES (?, ?, ?, NULLIF(?, ''), ?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, 0))
        `, u.Username, u.Password, u.Role, string(u.WageType), u.DailyWage, u.MonthlySalary, u.MobileNumber, u.Email, u.Address, u.BusinessID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return models.User{}, models.ErrDuplicateUsername
		}
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return r.GetByID(ctx, int(id))
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) ListByBusinessAndRole(ctx context.Context, businessID int, role models.Role) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT `+userColumns+` FROM users WHERE business_id = ? AND role = ? ORDER BY username
        `, businessID, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update writes profile fields. Wage type is exclusive: setting a daily wage
// clears the monthly salary and vice versa.
func (r *UserRepository) Update(ctx context.Context, u models.User) error {
	dailyWage := u.DailyWage
	monthlySalary := u.MonthlySalary
	switch u.WageType {
	case models.WageTypeDaily:
		monthlySalary = 0
	case models.WageTypeMonthly:
		dailyWage = 0
	}
	res, err := r.DB.ExecContext(ctx, `
                UPDATE users
                SET username = ?, wage_type = NULLIF(?, ''), daily_wage = ?, monthly_salary = ?,
                    mobile_number = NULLIF(?, ''), email = NULLIF(?, ''), address = NULLIF(?, ''),
                    id_proof_url = NULLIF(?, ''), updated_at = CURRENT_TIMESTAMP
                WHERE id = ?
        `, u.Username, string(u.WageType), dailyWage, monthlySalary, u.MobileNumber, u.Email, u.Address, u.IDProofURL, u.ID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return models.ErrDuplicateUsername
		}
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID)
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// ReceiveCash zeroes a staff member's cash balance into a handover row for
// the manager, as one transaction.
func (r *UserRepository) ReceiveCash(ctx context.Context, staffID, managerID int) (models.CashHandover, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.CashHandover{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var balance float64
	if err := tx.QueryRowContext(ctx, `SELECT cash_balance FROM users WHERE id = ? FOR UPDATE`, staffID).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CashHandover{}, models.ErrUserNotFound
		}
		return models.CashHandover{}, err
	}
	if balance <= 0 {
		return models.CashHandover{}, models.ErrNoCashToHandOver
	}

	res, err := tx.ExecContext(ctx, `
                INSERT INTO cash_handovers (amount, user_id, manager_id) VALUES (?, ?, ?)
        `, balance, staffID, managerID)
	if err != nil {
		return models.CashHandover{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.CashHandover{}, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET cash_balance = 0 WHERE id = ?`, staffID); err != nil {
		return models.CashHandover{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.CashHandover{}, err
	}
	return models.CashHandover{ID: int(id), Amount: balance, UserID: staffID, ManagerID: managerID, Timestamp: time.Now()}, nil
}

// Sessions

func (r *UserRepository) SaveSession(ctx context.Context, s models.Session) error {
	_, err := r.DB.ExecContext(ctx, `
                INSERT INTO sessions (user_id, role, business_id, refresh_token, expires_at)
                VALUES (?, ?, ?, ?, ?)
                ON DUPLICATE KEY UPDATE refresh_token = VALUES(refresh_token), expires_at = VALUES(expires_at)
        `, s.UserID, s.Role, s.BusinessID, s.RefreshToken, s.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var s models.Session
	err := r.DB.QueryRowContext(ctx, `
                SELECT user_id, role, COALESCE(business_id, 0), refresh_token, expires_at FROM sessions WHERE refresh_token = ?
        `, refreshToken).Scan(&s.UserID, &s.Role, &s.BusinessID, &s.RefreshToken, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, models.ErrNoRecord
		}
		return models.Session{}, err
	}
	return s, nil
}

func (r *UserRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE refresh_token = ?`, refreshToken)
	return err
}

// Device tokens for push notifications.

func (r *UserRepository) SaveDeviceToken(ctx context.Context, t models.DeviceToken) error {
	_, err := r.DB.ExecContext(ctx, `
                INSERT INTO device_tokens (user_id, customer_id, token)
                VALUES (NULLIF(?, 0), NULLIF(?, 0), ?)
                ON DUPLICATE KEY UPDATE user_id = VALUES(user_id), customer_id = VALUES(customer_id)
        `, t.UserID, t.CustomerID, t.Token)
	return err
}

func (r *UserRepository) TokensForUser(ctx context.Context, userID int) ([]string, error) {
	return r.tokens(ctx, `SELECT token FROM device_tokens WHERE user_id = ?`, userID)
}

func (r *UserRepository) TokensForCustomer(ctx context.Context, customerID int) ([]string, error) {
	return r.tokens(ctx, `SELECT token FROM device_tokens WHERE customer_id = ?`, customerID)
}

func (r *UserRepository) tokens(ctx context.Context, query string, id int) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (r *UserRepository) DeleteDeviceToken(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM device_tokens WHERE token = ?`, token)
	return err
}
