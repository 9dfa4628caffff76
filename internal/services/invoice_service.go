package services

import (
	"context"
	"fmt"
	"time"

	"aquaBack/internal/models"
	"aquaBack/internal/repositories"
)

// invoiceDueDays is how long a customer has to pay after issue.
const invoiceDueDays = 15

type InvoiceService struct {
	Invoices  *repositories.InvoiceRepository
	Bookings  *repositories.BookingRepository
	Logs      *repositories.DailyLogRepository
	Customers *repositories.CustomerRepository
}

// nextNumber builds the human-readable invoice number:
// AQUA-<business>-<year>-<sequence>.
func (s *InvoiceService) nextNumber(ctx context.Context, businessID int, now time.Time) (string, error) {
	count, err := s.Invoices.CountForBusiness(ctx, businessID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("AQUA-%d-%d-%04d", businessID, now.Year(), count+1), nil
}

// assembleInvoice turns computed line items into an invoice carrying the
// status the workflow decided on: settled-on-the-spot charges come in Paid,
// statements and dues come in Unpaid. Zero and negative totals produce no
// invoice.
func assembleInvoice(customerID, businessID int, lines []models.LineItem, status string, now time.Time) (models.Invoice, error) {
	var total float64
	for _, l := range lines {
		total += l.Total
	}
	if total <= 0 {
		return models.Invoice{}, models.ErrNoBillableActivity
	}

	inv := models.Invoice{
		IssueDate:   now,
		DueDate:     now.AddDate(0, 0, invoiceDueDays),
		TotalAmount: total,
		Status:      status,
		CustomerID:  customerID,
		BusinessID:  businessID,
	}
	for _, l := range lines {
		inv.Items = append(inv.Items, models.InvoiceItem{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Total:       l.Total,
		})
	}
	return inv, nil
}

// CreateForTransaction raises an invoice from computed line items.
func (s *InvoiceService) CreateForTransaction(ctx context.Context, customerID, businessID int, lines []models.LineItem, status string) (models.Invoice, error) {
	now := time.Now()
	inv, err := assembleInvoice(customerID, businessID, lines, status, now)
	if err != nil {
		return models.Invoice{}, err
	}
	inv.InvoiceNumber, err = s.nextNumber(ctx, businessID, now)
	if err != nil {
		return models.Invoice{}, err
	}
	return s.Invoices.CreateWithItems(ctx, inv)
}

// GenerateMonthly builds a statement invoice for one customer covering a
// calendar month: every delivery log plus the final amounts of bookings
// completed in that month. Months with no billable activity yield
// ErrNoBillableActivity and no invoice.
func (s *InvoiceService) GenerateMonthly(ctx context.Context, actor models.Actor, customerID int, year int, month time.Month) (models.Invoice, error) {
	if !actor.Role.CanManageBusiness() {
		return models.Invoice{}, models.ErrForbidden
	}
	c, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		return models.Invoice{}, err
	}
	if c.BusinessID != actor.BusinessID {
		return models.Invoice{}, models.ErrWrongBusiness
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Second)

	logs, err := s.Logs.ListBetweenForCustomer(ctx, customerID, from, to)
	if err != nil {
		return models.Invoice{}, err
	}
	bookings, err := s.Bookings.CompletedBetween(ctx, customerID, from, to)
	if err != nil {
		return models.Invoice{}, err
	}

	var lines []models.LineItem
	var jars int
	var jarTotal float64
	for _, l := range logs {
		jars += l.JarsDelivered
		jarTotal += l.AmountCollected
	}
	if jars > 0 {
		lines = append(lines, models.LineItem{
			Description: fmt.Sprintf("Water Jar Deliveries (%s)", from.Format("January 2006")),
			Quantity:    jars,
			UnitPrice:   c.PricePerJar,
			Total:       jarTotal,
		})
	}
	for _, b := range bookings {
		lines = append(lines, models.LineItem{
			Description: fmt.Sprintf("Event Booking #%d (settled %s)", b.ID, b.CollectionTimestamp.Format("02 Jan")),
			Quantity:    1,
			UnitPrice:   b.FinalAmount,
			Total:       b.FinalAmount,
		})
	}
	return s.CreateForTransaction(ctx, customerID, actor.BusinessID, lines, models.InvoiceStatusUnpaid)
}

func (s *InvoiceService) Get(ctx context.Context, actor models.Actor, id int) (models.Invoice, error) {
	inv, err := s.Invoices.GetByID(ctx, id)
	if err != nil {
		return models.Invoice{}, err
	}
	if actor.Role.IsCustomer() && inv.CustomerID != actor.ID {
		return models.Invoice{}, models.ErrForbidden
	}
	if actor.Role.CanManageBusiness() && actor.Role != models.RoleAdmin && inv.BusinessID != actor.BusinessID {
		return models.Invoice{}, models.ErrWrongBusiness
	}
	return inv, nil
}

func (s *InvoiceService) ListForBusiness(ctx context.Context, actor models.Actor, limit, offset int) ([]models.Invoice, error) {
	if !actor.Role.CanManageBusiness() {
		return nil, models.ErrForbidden
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.Invoices.ListForBusiness(ctx, actor.BusinessID, limit, offset)
}

func (s *InvoiceService) ListForCustomer(ctx context.Context, customerID, limit, offset int) ([]models.Invoice, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.Invoices.ListForCustomer(ctx, customerID, limit, offset)
}
