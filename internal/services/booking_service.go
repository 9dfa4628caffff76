package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"aquaBack/internal/booking"
	"aquaBack/internal/models"
	"aquaBack/internal/notify"
	"aquaBack/internal/repositories"
)

// lowStockThreshold is the jar count below which the manager gets a warning
// push after a confirmation.
const lowStockThreshold = 20

type BookingService struct {
	Bookings   *repositories.BookingRepository
	Businesses *repositories.BusinessRepository
	Customers  *repositories.CustomerRepository
	Users      *repositories.UserRepository
	Invoices   *InvoiceService
	Notifier   notify.Notifier
	Location   *time.Location
	ErrorLog   *log.Logger
}

// CreateByCustomer books an event for the requesting customer. Customers must
// book at least one day ahead.
func (s *BookingService) CreateByCustomer(ctx context.Context, customerID int, req models.CreateBookingRequest) (models.EventBooking, error) {
	return s.create(ctx, customerID, req, time.Now().AddDate(0, 0, 1))
}

// CreateByStaff books on a customer's behalf; same-day events are allowed.
func (s *BookingService) CreateByStaff(ctx context.Context, actor models.Actor, req models.CreateBookingRequest) (models.EventBooking, error) {
	c, err := s.Customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return models.EventBooking{}, err
	}
	if c.BusinessID != actor.BusinessID {
		return models.EventBooking{}, models.ErrWrongBusiness
	}
	return s.create(ctx, req.CustomerID, req, time.Now())
}

func (s *BookingService) create(ctx context.Context, customerID int, req models.CreateBookingRequest, earliest time.Time) (models.EventBooking, error) {
	if req.Quantity <= 0 && req.DispensersBooked <= 0 {
		return models.EventBooking{}, models.ErrEmptyBooking
	}
	if req.Quantity < 0 || req.DispensersBooked < 0 {
		return models.EventBooking{}, models.ErrInvalidQuantity
	}
	eventDate, err := parseEventDate(req.EventDate, earliest, s.Location)
	if err != nil {
		return models.EventBooking{}, err
	}
	return s.Bookings.Create(ctx, customerID, req.Quantity, req.DispensersBooked, eventDate)
}

// parseEventDate reads a YYYY-MM-DD event date and enforces the earliest
// allowed day. Both sides are evaluated in the business location, so the
// "tomorrow" boundary follows the business day, not the server clock.
func parseEventDate(value string, earliest time.Time, loc *time.Location) (time.Time, error) {
	eventDate, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse event date: %w", err)
	}
	e := earliest.In(loc)
	minDate := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, loc)
	if eventDate.Before(minDate) {
		return time.Time{}, models.ErrEventDateTooEarly
	}
	return eventDate, nil
}

func (s *BookingService) Get(ctx context.Context, actor models.Actor, id int) (models.EventBooking, error) {
	scope := actor.BusinessID
	if actor.Role == models.RoleAdmin {
		scope = 0
	}
	b, err := s.Bookings.GetByID(ctx, id, scope)
	if err != nil {
		return models.EventBooking{}, err
	}
	if actor.Role.IsCustomer() && b.CustomerID != actor.ID {
		return models.EventBooking{}, models.ErrForbidden
	}
	return b, nil
}

func (s *BookingService) ListPending(ctx context.Context, actor models.Actor) ([]models.EventBooking, error) {
	if !actor.Role.CanManageBusiness() {
		return nil, models.ErrForbidden
	}
	return s.Bookings.ListByStatus(ctx, actor.BusinessID, booking.StatusPending)
}

func (s *BookingService) ListByStatus(ctx context.Context, actor models.Actor, status string) ([]models.EventBooking, error) {
	return s.Bookings.ListByStatus(ctx, actor.BusinessID, status)
}

// DeliveriesForToday lists confirmed bookings whose event date is today, for
// the staff delivery screen.
func (s *BookingService) DeliveriesForToday(ctx context.Context, actor models.Actor) ([]models.EventBooking, error) {
	if !actor.Role.CanDeliver() {
		return nil, models.ErrForbidden
	}
	return s.Bookings.ConfirmedForDate(ctx, actor.BusinessID, time.Now().In(s.Location))
}

func (s *BookingService) ListForCustomer(ctx context.Context, customerID int) ([]models.EventBooking, error) {
	return s.Bookings.ListByCustomer(ctx, customerID)
}

// Confirm accepts a pending booking with possibly adjusted quantities,
// reserving stock atomically. The customer gets a push; the manager gets a
// low-stock warning when the reservation drains the jar count.
func (s *BookingService) Confirm(ctx context.Context, actor models.Actor, bookingID int, req models.ConfirmBookingRequest) (models.EventBooking, error) {
	if !actor.Role.CanManageBusiness() {
		return models.EventBooking{}, models.ErrForbidden
	}
	if req.Quantity <= 0 && req.DispensersBooked <= 0 {
		return models.EventBooking{}, models.ErrEmptyBooking
	}
	if req.Quantity < 0 || req.DispensersBooked < 0 || req.Amount < 0 {
		return models.EventBooking{}, models.ErrInvalidQuantity
	}
	b, err := s.Bookings.GetByID(ctx, bookingID, actor.BusinessID)
	if err != nil {
		return models.EventBooking{}, err
	}
	if err := s.Bookings.Confirm(ctx, b, req, actor.ID); err != nil {
		return models.EventBooking{}, err
	}

	s.notifyCustomer(ctx, b.CustomerID, "Booking Confirmed",
		fmt.Sprintf("Your event booking for %s is confirmed: %d jars, %d dispensers.",
			b.EventDate.Format("02 Jan 2006"), req.Quantity, req.DispensersBooked))
	s.warnLowStock(ctx, actor)

	return s.Bookings.GetByID(ctx, bookingID, actor.BusinessID)
}

// Deliver marks a confirmed booking handed over at the venue.
func (s *BookingService) Deliver(ctx context.Context, actor models.Actor, bookingID int) (models.EventBooking, error) {
	if !actor.Role.CanDeliver() {
		return models.EventBooking{}, models.ErrForbidden
	}
	b, err := s.Bookings.GetByID(ctx, bookingID, actor.BusinessID)
	if err != nil {
		return models.EventBooking{}, err
	}
	if err := s.Bookings.Deliver(ctx, b, actor.ID); err != nil {
		return models.EventBooking{}, err
	}
	return s.Bookings.GetByID(ctx, bookingID, actor.BusinessID)
}

// Collect settles a delivered booking: validates returns, restocks what came
// back, charges the shortfall and raises the invoice.
func (s *BookingService) Collect(ctx context.Context, actor models.Actor, bookingID int, req models.CollectBookingRequest) (models.EventBooking, booking.Settlement, error) {
	if !actor.Role.CanDeliver() {
		return models.EventBooking{}, booking.Settlement{}, models.ErrForbidden
	}
	b, err := s.Bookings.GetByID(ctx, bookingID, actor.BusinessID)
	if err != nil {
		return models.EventBooking{}, booking.Settlement{}, err
	}
	biz, err := s.Businesses.GetByID(ctx, b.BusinessID)
	if err != nil {
		return models.EventBooking{}, booking.Settlement{}, err
	}

	settlement, err := booking.Settle(b, booking.Return{Jars: req.JarsReturned, Dispensers: req.DispensersReturned},
		biz.NewJarPrice, biz.NewDispenserPrice)
	if err != nil {
		return models.EventBooking{}, booking.Settlement{}, err
	}
	if err := s.Bookings.Collect(ctx, b, settlement, actor.ID); err != nil {
		return models.EventBooking{}, booking.Settlement{}, err
	}

	// Settlement is paid in cash on the spot, so the invoice opens Paid.
	lines := booking.InvoiceLines(b, settlement, biz.NewJarPrice, biz.NewDispenserPrice)
	if _, err := s.Invoices.CreateForTransaction(ctx, b.CustomerID, b.BusinessID, lines, models.InvoiceStatusPaid); err != nil {
		s.ErrorLog.Printf("booking %d invoice: %v", b.ID, err)
	}

	s.notifyCustomer(ctx, b.CustomerID, "Booking Completed",
		fmt.Sprintf("Your event booking is settled. Final amount: %.2f.", settlement.FinalAmount))

	final, err := s.Bookings.GetByID(ctx, bookingID, actor.BusinessID)
	if err != nil {
		return models.EventBooking{}, booking.Settlement{}, err
	}
	return final, settlement, nil
}

func (s *BookingService) notifyCustomer(ctx context.Context, customerID int, title, body string) {
	tokens, err := s.Users.TokensForCustomer(ctx, customerID)
	if err != nil {
		s.ErrorLog.Printf("customer %d tokens: %v", customerID, err)
		return
	}
	s.Notifier.Send(ctx, tokens, title, body, nil)
}

func (s *BookingService) warnLowStock(ctx context.Context, actor models.Actor) {
	biz, err := s.Businesses.GetByID(ctx, actor.BusinessID)
	if err != nil {
		s.ErrorLog.Printf("business %d: %v", actor.BusinessID, err)
		return
	}
	if biz.JarStock >= lowStockThreshold {
		return
	}
	managers, err := s.Users.ListByBusinessAndRole(ctx, actor.BusinessID, models.RoleManager)
	if err != nil {
		s.ErrorLog.Printf("business %d managers: %v", actor.BusinessID, err)
		return
	}
	for _, m := range managers {
		tokens, err := s.Users.TokensForUser(ctx, m.ID)
		if err != nil {
			continue
		}
		s.Notifier.Send(ctx, tokens, "Low Jar Stock",
			fmt.Sprintf("Only %d jars left in stock.", biz.JarStock), nil)
	}
}
