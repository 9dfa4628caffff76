package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"aquaBack/internal/models"
	"aquaBack/internal/repositories"
	"aquaBack/utils"
)

type CustomerService struct {
	Customers    *repositories.CustomerRepository
	Businesses   *repositories.BusinessRepository
	Logs         *repositories.DailyLogRepository
	TokenManager *utils.Manager
}

// SignIn authenticates a customer account. Customers log in with the
// username their manager assigned them.
func (s *CustomerService) SignIn(ctx context.Context, req models.SignInRequest) (models.Customer, models.Tokens, error) {
	c, err := s.Customers.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, models.ErrCustomerNotFound) {
			return models.Customer{}, models.Tokens{}, models.ErrInvalidCredentials
		}
		return models.Customer{}, models.Tokens{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(req.Password)); err != nil {
		return models.Customer{}, models.Tokens{}, models.ErrInvalidCredentials
	}

	access, err := s.TokenManager.NewJWT(c.ID, string(models.RoleCustomer), c.BusinessID)
	if err != nil {
		return models.Customer{}, models.Tokens{}, err
	}
	refresh, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.Customer{}, models.Tokens{}, err
	}
	c.Password = ""
	return c, models.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *CustomerService) Create(ctx context.Context, actor models.Actor, c models.Customer) (models.Customer, error) {
	if !actor.Role.CanManageBusiness() {
		return models.Customer{}, models.ErrForbidden
	}
	c.BusinessID = actor.BusinessID
	if c.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), 12)
		if err != nil {
			return models.Customer{}, err
		}
		c.Password = string(hash)
	}
	created, err := s.Customers.Create(ctx, c)
	if err != nil {
		return models.Customer{}, err
	}
	created.Password = ""
	return created, nil
}

func (s *CustomerService) Get(ctx context.Context, actor models.Actor, id int) (models.Customer, error) {
	c, err := s.Customers.GetByID(ctx, id)
	if err != nil {
		return models.Customer{}, err
	}
	if actor.Role.IsCustomer() && actor.ID != id {
		return models.Customer{}, models.ErrForbidden
	}
	if !actor.Role.IsCustomer() && actor.Role != models.RoleAdmin && c.BusinessID != actor.BusinessID {
		return models.Customer{}, models.ErrWrongBusiness
	}
	c.Password = ""
	return c, nil
}

func (s *CustomerService) List(ctx context.Context, actor models.Actor) ([]models.Customer, error) {
	customers, err := s.Customers.ListByBusiness(ctx, actor.BusinessID)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		customers[i].Password = ""
	}
	return customers, nil
}

func (s *CustomerService) Search(ctx context.Context, actor models.Actor, term string) ([]models.Customer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	customers, err := s.Customers.Search(ctx, actor.BusinessID, term, 20)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		customers[i].Password = ""
	}
	return customers, nil
}

func (s *CustomerService) WithDues(ctx context.Context, actor models.Actor) ([]models.Customer, error) {
	customers, err := s.Customers.WithDues(ctx, actor.BusinessID)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		customers[i].Password = ""
	}
	return customers, nil
}

func (s *CustomerService) Update(ctx context.Context, actor models.Actor, c models.Customer) error {
	if !actor.Role.CanManageBusiness() {
		return models.ErrForbidden
	}
	c.BusinessID = actor.BusinessID
	return s.Customers.Update(ctx, c)
}

func (s *CustomerService) Delete(ctx context.Context, actor models.Actor, id int) error {
	if !actor.Role.CanManageBusiness() {
		return models.ErrForbidden
	}
	return s.Customers.Delete(ctx, id, actor.BusinessID)
}

func (s *CustomerService) History(ctx context.Context, customerID int) ([]models.DailyLog, error) {
	return s.Logs.ListForCustomer(ctx, customerID)
}

// PaymentQR builds the UPI deep link a customer scans to pay their dues to
// the business's UPI handle.
func (s *CustomerService) PaymentQR(ctx context.Context, customerID int) (string, error) {
	c, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		return "", err
	}
	if c.DueAmount <= 0 {
		return "", models.ErrNothingDue
	}
	b, err := s.Businesses.GetByID(ctx, c.BusinessID)
	if err != nil {
		return "", err
	}
	if b.UPIID == "" {
		return "", models.ErrNoRecord
	}
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=INR&tn=Dues payment %s",
		b.UPIID, strings.ReplaceAll(b.Name, " ", "%20"), c.DueAmount, c.MobileNumber), nil
}
