package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"aquaBack/internal/models"
	"aquaBack/internal/wages"
)

type WageRepository struct {
	DB *sql.DB
}

// EligibleStaffBetween returns every daily-wage staff member with a positive
// wage and a business, together with their delivered-jar tally for the window
// and their business's attendance thresholds. Monthly-salary staff are
// excluded here and never reach the batch.
func (r *WageRepository) EligibleStaffBetween(ctx context.Context, from, to time.Time) ([]wages.StaffDay, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT u.id, u.username, u.daily_wage, b.full_day_jar_count, b.half_day_jar_count,
                       COALESCE(SUM(l.jars_delivered), 0)
                FROM users u
                JOIN businesses b ON b.id = u.business_id
                LEFT JOIN daily_logs l ON l.user_id = u.id AND l.timestamp BETWEEN ? AND ?
                WHERE u.role = ? AND u.wage_type = ? AND u.daily_wage > 0
                GROUP BY u.id, u.username, u.daily_wage, b.full_day_jar_count, b.half_day_jar_count
        `, from, to, models.RoleStaff, models.WageTypeDaily)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []wages.StaffDay
	for rows.Next() {
		var s wages.StaffDay
		if err := rows.Scan(&s.UserID, &s.Username, &s.DailyWage, &s.FullDayJarCount, &s.HalfDayJarCount, &s.JarsDelivered); err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

// ApplyPostings persists wage postings and the matching balance deductions
// inside one transaction: a failure anywhere rolls the whole batch back. The
// unique (user_id, wage_date) index on expenses makes re-runs harmless — a
// posting that already exists for the day is skipped without deducting again.
func (r *WageRepository) ApplyPostings(ctx context.Context, postings []wages.Posting) (applied int, skipped int, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range postings {
		_, err := tx.ExecContext(ctx, `
                        INSERT INTO expenses (amount, description, wage_date, user_id) VALUES (?, ?, ?, ?)
                `, p.Amount, p.Description, p.WageDate, p.UserID)
		if err != nil {
			var mysqlErr *mysql.MySQLError
			if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
				skipped++
				continue
			}
			return 0, 0, err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE users SET cash_balance = cash_balance - ? WHERE id = ?`, p.Amount, p.UserID); err != nil {
			return 0, 0, err
		}
		applied++
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return applied, skipped, nil
}
