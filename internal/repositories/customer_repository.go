package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"aquaBack/internal/models"
)

type CustomerRepository struct {
	DB *sql.DB
}

const customerColumns = `id, COALESCE(username, ''), name, mobile_number, COALESCE(password_hash, ''),
       COALESCE(email, ''), COALESCE(village, ''), COALESCE(area, ''), COALESCE(landmark, ''),
       daily_jars, price_per_jar, due_amount, business_id, created_at`

func scanCustomer(row interface{ Scan(...any) error }) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(
		&c.ID, &c.Username, &c.Name, &c.MobileNumber, &c.Password,
		&c.Email, &c.Village, &c.Area, &c.Landmark,
		&c.DailyJars, &c.PricePerJar, &c.DueAmount, &c.BusinessID, &c.CreatedAt,
	)
	return c, err
}

func (r *CustomerRepository) Create(ctx context.Context, c models.Customer) (models.Customer, error) {
	res, err := r.DB.ExecContext(ctx, `
                INSERT INTO customers (username, name, mobile_number, password_hash, email, village, area, landmark, daily_jars, price_per_jar, business_id)
                VALUES (NULLIF(?, ''), ?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), ?, ?, ?)
        `, c.Username, c.Name, c.MobileNumber, c.Password, c.Email, c.Village, c.Area, c.Landmark, c.DailyJars, c.PricePerJar, c.BusinessID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return models.Customer{}, models.ErrDuplicateMobile
		}
		return models.Customer{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Customer{}, err
	}
	return r.GetByID(ctx, int(id))
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int) (models.Customer, error) {
	c, err := scanCustomer(r.DB.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Customer{}, models.ErrCustomerNotFound
		}
		return models.Customer{}, err
	}
	return c, nil
}

func (r *CustomerRepository) GetByUsername(ctx context.Context, username string) (models.Customer, error) {
	c, err := scanCustomer(r.DB.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE username = ?`, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Customer{}, models.ErrCustomerNotFound
		}
		return models.Customer{}, err
	}
	return c, nil
}

func (r *CustomerRepository) ListByBusiness(ctx context.Context, businessID int) ([]models.Customer, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE business_id = ? ORDER BY name`, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCustomers(rows)
}

// Search matches name or mobile number for the live customer lookup on the
// delivery dashboard.
func (r *CustomerRepository) Search(ctx context.Context, businessID int, term string, limit int) ([]models.Customer, error) {
	like := "%" + term + "%"
	rows, err := r.DB.QueryContext(ctx, `
                SELECT `+customerColumns+` FROM customers
                WHERE business_id = ? AND (name LIKE ? OR mobile_number LIKE ?)
                ORDER BY name LIMIT ?
        `, businessID, like, like, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCustomers(rows)
}

func (r *CustomerRepository) WithDues(ctx context.Context, businessID int) ([]models.Customer, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT `+customerColumns+` FROM customers WHERE business_id = ? AND due_amount > 0 ORDER BY name
        `, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCustomers(rows)
}

func collectCustomers(rows *sql.Rows) ([]models.Customer, error) {
	var customers []models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) Update(ctx context.Context, c models.Customer) error {
	res, err := r.DB.ExecContext(ctx, `
                UPDATE customers
                SET name = ?, mobile_number = ?, email = NULLIF(?, ''), village = NULLIF(?, ''),
                    area = NULLIF(?, ''), landmark = NULLIF(?, ''), daily_jars = ?, price_per_jar = ?
                WHERE id = ? AND business_id = ?
        `, c.Name, c.MobileNumber, c.Email, c.Village, c.Area, c.Landmark, c.DailyJars, c.PricePerJar, c.ID, c.BusinessID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return models.ErrDuplicateMobile
		}
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id, businessID int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = ? AND business_id = ?`, id, businessID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) UpdatePassword(ctx context.Context, customerID int, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE customers SET password_hash = ? WHERE id = ?`, passwordHash, customerID)
	return err
}
