package repositories

import (
	"context"
	"database/sql"
	"errors"

	"aquaBack/internal/models"
)

type InvoiceRepository struct {
	DB *sql.DB
}

// CountForBusiness feeds the sequential part of invoice numbers.
func (r *InvoiceRepository) CountForBusiness(ctx context.Context, businessID int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices WHERE business_id = ?`, businessID).Scan(&count)
	return count, err
}

// CreateWithItems persists an invoice and its line items atomically.
func (r *InvoiceRepository) CreateWithItems(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Invoice{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `
                INSERT INTO invoices (invoice_number, issue_date, due_date, total_amount, status, customer_id, business_id)
                VALUES (?, ?, ?, ?, ?, ?, ?)
        `, inv.InvoiceNumber, inv.IssueDate, inv.DueDate, inv.TotalAmount, inv.Status, inv.CustomerID, inv.BusinessID)
	if err != nil {
		return models.Invoice{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Invoice{}, err
	}
	inv.ID = int(id)

	stmt, err := tx.PrepareContext(ctx, `
                INSERT INTO invoice_items (invoice_id, description, quantity, unit_price, total) VALUES (?, ?, ?, ?, ?)
        `)
	if err != nil {
		return models.Invoice{}, err
	}
	defer stmt.Close()
	for i := range inv.Items {
		inv.Items[i].InvoiceID = inv.ID
		if _, err := stmt.ExecContext(ctx, inv.ID, inv.Items[i].Description, inv.Items[i].Quantity, inv.Items[i].UnitPrice, inv.Items[i].Total); err != nil {
			return models.Invoice{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int) (models.Invoice, error) {
	var inv models.Invoice
	err := r.DB.QueryRowContext(ctx, `
                SELECT id, invoice_number, issue_date, due_date, total_amount, status, customer_id, business_id
                FROM invoices WHERE id = ?
        `, id).Scan(&inv.ID, &inv.InvoiceNumber, &inv.IssueDate, &inv.DueDate, &inv.TotalAmount, &inv.Status, &inv.CustomerID, &inv.BusinessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Invoice{}, models.ErrInvoiceNotFound
		}
		return models.Invoice{}, err
	}

	rows, err := r.DB.QueryContext(ctx, `
                SELECT id, invoice_id, description, quantity, unit_price, total FROM invoice_items WHERE invoice_id = ?
        `, id)
	if err != nil {
		return models.Invoice{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var item models.InvoiceItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.Quantity, &item.UnitPrice, &item.Total); err != nil {
			return models.Invoice{}, err
		}
		inv.Items = append(inv.Items, item)
	}
	return inv, rows.Err()
}

func (r *InvoiceRepository) ListForBusiness(ctx context.Context, businessID, limit, offset int) ([]models.Invoice, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT id, invoice_number, issue_date, due_date, total_amount, status, customer_id, business_id
                FROM invoices WHERE business_id = ? ORDER BY issue_date DESC, id DESC LIMIT ? OFFSET ?
        `, businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func (r *InvoiceRepository) ListForCustomer(ctx context.Context, customerID, limit, offset int) ([]models.Invoice, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT id, invoice_number, issue_date, due_date, total_amount, status, customer_id, business_id
                FROM invoices WHERE customer_id = ? ORDER BY issue_date DESC, id DESC LIMIT ? OFFSET ?
        `, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func collectInvoices(rows *sql.Rows) ([]models.Invoice, error) {
	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.InvoiceNumber, &inv.IssueDate, &inv.DueDate, &inv.TotalAmount, &inv.Status, &inv.CustomerID, &inv.BusinessID); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
