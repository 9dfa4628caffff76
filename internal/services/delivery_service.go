package services

import (
	"context"
	"fmt"
	"log"

	"aquaBack/internal/models"
	"aquaBack/internal/notify"
	"aquaBack/internal/repositories"
)

type DeliveryService struct {
	Logs      *repositories.DailyLogRepository
	Requests  *repositories.JarRequestRepository
	Customers *repositories.CustomerRepository
	Expenses  *repositories.ExpenseRepository
	Users     *repositories.UserRepository
	Invoices  *InvoiceService
	Notifier  notify.Notifier
	ErrorLog  *log.Logger
}

// LogDelivery records a routine jar drop for a customer. Payment lands in one
// of three buckets: cash to the staff member, online straight to the
// business, or on the customer's running due.
func (s *DeliveryService) LogDelivery(ctx context.Context, actor models.Actor, customerID int, req models.LogDeliveryRequest) (models.DailyLog, error) {
	if !actor.Role.CanDeliver() {
		return models.DailyLog{}, models.ErrForbidden
	}
	if req.JarsDelivered <= 0 {
		return models.DailyLog{}, models.ErrInvalidQuantity
	}
	c, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		return models.DailyLog{}, err
	}
	if c.BusinessID != actor.BusinessID {
		return models.DailyLog{}, models.ErrWrongBusiness
	}

	l := buildLog(c, actor.ID, req, models.LogOriginStaff)
	inserted, err := s.Logs.InsertWithCash(ctx, l)
	if err != nil {
		return models.DailyLog{}, err
	}
	s.raiseInvoice(ctx, c, inserted)
	return inserted, nil
}

func buildLog(c models.Customer, staffID int, req models.LogDeliveryRequest, origin string) models.DailyLog {
	l := models.DailyLog{
		JarsDelivered:   req.JarsDelivered,
		AmountCollected: float64(req.JarsDelivered) * c.PricePerJar,
		Origin:          origin,
		CustomerID:      c.ID,
		UserID:          staffID,
	}
	switch {
	case req.IsDue:
		l.PaymentStatus = models.PaymentStatusDue
		l.PaymentMethod = models.PaymentMethodDue
	case req.PaymentReceivedOnline:
		l.PaymentStatus = models.PaymentStatusPaid
		l.PaymentMethod = models.PaymentMethodOnline
	default:
		l.PaymentStatus = models.PaymentStatusPaid
		l.PaymentMethod = models.PaymentMethodCash
	}
	return l
}

// deliveryInvoice builds the per-delivery invoice line and its status. Dues
// open a receivable; cash and online payments record a settled invoice.
func deliveryInvoice(c models.Customer, l models.DailyLog) ([]models.LineItem, string) {
	status := models.InvoiceStatusPaid
	if l.PaymentStatus == models.PaymentStatusDue {
		status = models.InvoiceStatusUnpaid
	}
	lines := []models.LineItem{{
		Description: fmt.Sprintf("Water Jar Delivery (%d jars)", l.JarsDelivered),
		Quantity:    l.JarsDelivered,
		UnitPrice:   c.PricePerJar,
		Total:       l.AmountCollected,
	}}
	return lines, status
}

// raiseInvoice records the per-transaction invoice for a committed delivery
// log. Free deliveries produce none; failures are logged, the delivery itself
// already stands.
func (s *DeliveryService) raiseInvoice(ctx context.Context, c models.Customer, l models.DailyLog) {
	if l.AmountCollected <= 0 {
		return
	}
	lines, status := deliveryInvoice(c, l)
	if _, err := s.Invoices.CreateForTransaction(ctx, c.ID, c.BusinessID, lines, status); err != nil {
		s.ErrorLog.Printf("delivery log %d invoice: %v", l.ID, err)
	}
}

// RequestJars files a standing customer's ad-hoc jar request for staff to
// fulfil.
func (s *DeliveryService) RequestJars(ctx context.Context, customerID, quantity int) (models.JarRequest, error) {
	if quantity <= 0 {
		return models.JarRequest{}, models.ErrInvalidQuantity
	}
	req, err := s.Requests.Create(ctx, customerID, quantity)
	if err != nil {
		return models.JarRequest{}, err
	}
	return req, nil
}

func (s *DeliveryService) PendingRequests(ctx context.Context, actor models.Actor) ([]models.JarRequest, error) {
	if !actor.Role.CanDeliver() {
		return nil, models.ErrForbidden
	}
	return s.Requests.PendingForBusiness(ctx, actor.BusinessID)
}

func (s *DeliveryService) RequestsForCustomer(ctx context.Context, customerID int) ([]models.JarRequest, error) {
	return s.Requests.ListForCustomer(ctx, customerID)
}

// FulfilRequest delivers a pending jar request: the daily log and the request
// status flip commit together, then the customer is notified.
func (s *DeliveryService) FulfilRequest(ctx context.Context, actor models.Actor, requestID int, payment models.LogDeliveryRequest) (models.DailyLog, error) {
	if !actor.Role.CanDeliver() {
		return models.DailyLog{}, models.ErrForbidden
	}
	req, err := s.Requests.GetByID(ctx, requestID, actor.BusinessID)
	if err != nil {
		return models.DailyLog{}, err
	}
	if req.Status != repositories.JarRequestPending {
		return models.DailyLog{}, models.ErrRequestNotFound
	}
	c, err := s.Customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return models.DailyLog{}, err
	}

	payment.JarsDelivered = req.Quantity
	l := buildLog(c, actor.ID, payment, models.LogOriginRequest)
	inserted, err := s.Requests.Deliver(ctx, requestID, l)
	if err != nil {
		return models.DailyLog{}, err
	}
	s.raiseInvoice(ctx, c, inserted)

	s.notifyCustomer(ctx, c.ID, "Jars Delivered",
		fmt.Sprintf("Your request for %d jar(s) has been delivered.", req.Quantity))
	return inserted, nil
}

// ClearDues collects a customer's full outstanding due in cash.
func (s *DeliveryService) ClearDues(ctx context.Context, actor models.Actor, customerID int) (float64, error) {
	if !actor.Role.CanDeliver() {
		return 0, models.ErrForbidden
	}
	c, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		return 0, err
	}
	if c.BusinessID != actor.BusinessID {
		return 0, models.ErrWrongBusiness
	}
	amount, err := s.Logs.ClearDues(ctx, customerID, actor.ID)
	if err != nil {
		return 0, err
	}
	s.notifyCustomer(ctx, customerID, "Dues Cleared",
		fmt.Sprintf("Payment of %.2f received. Your balance is clear.", amount))
	return amount, nil
}

// AddExpense records a field expense against the staff member's cash float.
func (s *DeliveryService) AddExpense(ctx context.Context, actor models.Actor, req models.AddExpenseRequest) (models.Expense, error) {
	if !actor.Role.CanDeliver() {
		return models.Expense{}, models.ErrForbidden
	}
	if req.Amount <= 0 {
		return models.Expense{}, models.ErrInvalidAmount
	}
	return s.Expenses.InsertWithCash(ctx, models.Expense{
		Amount:      req.Amount,
		Description: req.Description,
		UserID:      actor.ID,
	})
}

func (s *DeliveryService) notifyCustomer(ctx context.Context, customerID int, title, body string) {
	tokens, err := s.Users.TokensForCustomer(ctx, customerID)
	if err != nil {
		s.ErrorLog.Printf("customer %d tokens: %v", customerID, err)
		return
	}
	s.Notifier.Send(ctx, tokens, title, body, nil)
}
