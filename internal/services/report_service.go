package services

import (
	"context"
	"time"

	"aquaBack/internal/models"
	"aquaBack/internal/repositories"
)

type ReportService struct {
	Logs      *repositories.DailyLogRepository
	Expenses  *repositories.ExpenseRepository
	Sales     *repositories.ProductSaleRepository
	Customers *repositories.CustomerRepository
	Users     *repositories.UserRepository
}

// DailyReport aggregates one business day for the manager dashboard.
type DailyReport struct {
	Date            string               `json:"date"`
	JarsDelivered   int                  `json:"jars_delivered"`
	CashCollected   float64              `json:"cash_collected"`
	OnlineCollected float64              `json:"online_collected"`
	DuesAdded       float64              `json:"dues_added"`
	Expenses        float64              `json:"expenses"`
	ProductSales    float64              `json:"product_sales"`
	NetCash         float64              `json:"net_cash"`
	Logs            []models.DailyLog    `json:"logs"`
	ExpenseEntries  []models.Expense     `json:"expense_entries"`
	SaleEntries     []models.ProductSale `json:"sale_entries"`
}

// ForDay builds the report for one calendar day in the given location.
func (s *ReportService) ForDay(ctx context.Context, actor models.Actor, day time.Time, loc *time.Location) (DailyReport, error) {
	if !actor.Role.CanManageBusiness() {
		return DailyReport{}, models.ErrForbidden
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1).Add(-time.Second)
	return s.between(ctx, actor.BusinessID, from, to)
}

// ForRange builds the report across an arbitrary window.
func (s *ReportService) ForRange(ctx context.Context, actor models.Actor, from, to time.Time) (DailyReport, error) {
	if !actor.Role.CanManageBusiness() {
		return DailyReport{}, models.ErrForbidden
	}
	return s.between(ctx, actor.BusinessID, from, to)
}

func (s *ReportService) between(ctx context.Context, businessID int, from, to time.Time) (DailyReport, error) {
	report := DailyReport{Date: from.Format("2006-01-02")}

	logs, err := s.Logs.ListForBusinessBetween(ctx, businessID, from, to)
	if err != nil {
		return DailyReport{}, err
	}
	for _, l := range logs {
		report.JarsDelivered += l.JarsDelivered
		switch {
		case l.PaymentStatus == models.PaymentStatusPaid && l.PaymentMethod == models.PaymentMethodCash:
			report.CashCollected += l.AmountCollected
		case l.PaymentStatus == models.PaymentStatusPaid && l.PaymentMethod == models.PaymentMethodOnline:
			report.OnlineCollected += l.AmountCollected
		case l.PaymentStatus == models.PaymentStatusDue:
			report.DuesAdded += l.AmountCollected
		}
	}
	report.Logs = logs

	expenses, err := s.Expenses.ListForBusinessBetween(ctx, businessID, from, to)
	if err != nil {
		return DailyReport{}, err
	}
	for _, e := range expenses {
		report.Expenses += e.Amount
	}
	report.ExpenseEntries = expenses

	sales, err := s.Sales.ListForBusinessBetween(ctx, businessID, from, to)
	if err != nil {
		return DailyReport{}, err
	}
	for _, sale := range sales {
		report.ProductSales += sale.TotalAmount
	}
	report.SaleEntries = sales

	report.NetCash = report.CashCollected + report.ProductSales - report.Expenses
	return report, nil
}

// StaffSummary is one row of the manager's staff overview.
type StaffSummary struct {
	User          models.User `json:"user"`
	JarsDelivered int         `json:"jars_delivered"`
}

// StaffOverview lists staff with their delivered-jar tally for the window.
func (s *ReportService) StaffOverview(ctx context.Context, actor models.Actor, from, to time.Time) ([]StaffSummary, error) {
	if !actor.Role.CanManageBusiness() {
		return nil, models.ErrForbidden
	}
	staff, err := s.Users.ListByBusinessAndRole(ctx, actor.BusinessID, models.RoleStaff)
	if err != nil {
		return nil, err
	}
	summaries := make([]StaffSummary, 0, len(staff))
	for _, u := range staff {
		jars, err := s.Logs.SumJarsForStaffBetween(ctx, u.ID, from, to)
		if err != nil {
			return nil, err
		}
		u.Password = ""
		summaries = append(summaries, StaffSummary{User: u, JarsDelivered: jars})
	}
	return summaries, nil
}
