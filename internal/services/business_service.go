package services

import (
	"context"
	"time"

	"aquaBack/internal/models"
	"aquaBack/internal/repositories"
)

// trialDays is the free window a new business starts with.
const trialDays = 14

type BusinessService struct {
	Businesses *repositories.BusinessRepository
}

// Create registers a new business on a trial subscription. Admin only.
func (s *BusinessService) Create(ctx context.Context, actor models.Actor, b models.Business) (models.Business, error) {
	if actor.Role != models.RoleAdmin {
		return models.Business{}, models.ErrForbidden
	}
	trialEnd := time.Now().AddDate(0, 0, trialDays)
	b.TrialEndsAt = &trialEnd
	return s.Businesses.Create(ctx, b)
}

func (s *BusinessService) List(ctx context.Context, actor models.Actor) ([]models.Business, error) {
	if actor.Role != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	return s.Businesses.List(ctx)
}

func (s *BusinessService) Get(ctx context.Context, actor models.Actor, id int) (models.Business, error) {
	if actor.Role != models.RoleAdmin && actor.BusinessID != id {
		return models.Business{}, models.ErrWrongBusiness
	}
	return s.Businesses.GetByID(ctx, id)
}

func (s *BusinessService) UpdateSettings(ctx context.Context, actor models.Actor, req models.BusinessSettingsRequest) error {
	if !actor.Role.CanManageBusiness() {
		return models.ErrForbidden
	}
	if req.NewJarPrice < 0 || req.NewDispenserPrice < 0 || req.FullDayJarCount < 0 || req.HalfDayJarCount < 0 {
		return models.ErrInvalidAmount
	}
	return s.Businesses.UpdateSettings(ctx, actor.BusinessID, req)
}

// AddStock receives purchased jars and dispensers into inventory.
func (s *BusinessService) AddStock(ctx context.Context, actor models.Actor, req models.AddStockRequest) (models.Business, error) {
	if !actor.Role.CanManageBusiness() {
		return models.Business{}, models.ErrForbidden
	}
	if req.JarsAdded < 0 || req.DispensersAdded < 0 {
		return models.Business{}, models.ErrNegativeStock
	}
	if req.JarsAdded == 0 && req.DispensersAdded == 0 {
		return models.Business{}, models.ErrInvalidQuantity
	}
	if err := s.Businesses.AddStock(ctx, actor.BusinessID, req.JarsAdded, req.DispensersAdded); err != nil {
		return models.Business{}, err
	}
	return s.Businesses.GetByID(ctx, actor.BusinessID)
}
