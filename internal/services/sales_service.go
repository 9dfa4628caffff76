package services

import (
	"context"

	"aquaBack/internal/models"
	"aquaBack/internal/repositories"
)

type SalesService struct {
	Sales      *repositories.ProductSaleRepository
	Businesses *repositories.BusinessRepository
}

// RecordSale sells new jars or dispensers from business stock at the
// configured replacement price.
func (s *SalesService) RecordSale(ctx context.Context, actor models.Actor, req models.ProductSaleRequest) (models.ProductSale, error) {
	if !actor.Role.CanDeliver() {
		return models.ProductSale{}, models.ErrForbidden
	}
	if req.Quantity <= 0 {
		return models.ProductSale{}, models.ErrInvalidQuantity
	}
	biz, err := s.Businesses.GetByID(ctx, actor.BusinessID)
	if err != nil {
		return models.ProductSale{}, err
	}

	var price float64
	switch req.ProductName {
	case "New Jar":
		price = biz.NewJarPrice
	case "Dispenser":
		price = biz.NewDispenserPrice
	default:
		return models.ProductSale{}, models.ErrProductNotFound
	}

	return s.Sales.RecordSale(ctx, models.ProductSale{
		ProductName:    req.ProductName,
		Quantity:       req.Quantity,
		PricePerItem:   price,
		TotalAmount:    price * float64(req.Quantity),
		CustomerName:   req.CustomerName,
		CustomerMobile: req.CustomerMobile,
		UserID:         actor.ID,
		BusinessID:     actor.BusinessID,
	})
}
