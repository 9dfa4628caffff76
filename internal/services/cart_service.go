package services

import (
	"context"
	"fmt"
	"log"

	"aquaBack/internal/models"
	"aquaBack/internal/notify"
	"aquaBack/internal/repositories"
)

type CartService struct {
	Suppliers *repositories.SupplierRepository
	Users     *repositories.UserRepository
	Notifier  notify.Notifier
	ErrorLog  *log.Logger
}

// Catalog lists the marketplace products managers can order from suppliers.
func (s *CartService) Catalog(ctx context.Context, actor models.Actor) ([]models.SupplierProduct, error) {
	if !actor.Role.CanManageBusiness() {
		return nil, models.ErrForbidden
	}
	return s.Suppliers.ListCatalog(ctx)
}

func (s *CartService) GetCart(ctx context.Context, actor models.Actor) (models.Cart, error) {
	if !actor.Role.CanManageBusiness() {
		return models.Cart{}, models.ErrForbidden
	}
	return s.Suppliers.GetCart(ctx, actor.ID)
}

// SetItem puts a product in the cart at the given quantity; zero removes it.
func (s *CartService) SetItem(ctx context.Context, actor models.Actor, req models.CartItemRequest) (models.Cart, error) {
	if !actor.Role.CanManageBusiness() {
		return models.Cart{}, models.ErrForbidden
	}
	if req.Quantity < 0 {
		return models.Cart{}, models.ErrInvalidQuantity
	}
	if req.Quantity > 0 {
		product, err := s.Suppliers.GetProduct(ctx, req.ProductID)
		if err != nil {
			return models.Cart{}, err
		}
		if !product.InStock {
			return models.Cart{}, models.ErrProductNotFound
		}
	}
	cart, err := s.Suppliers.GetCart(ctx, actor.ID)
	if err != nil {
		return models.Cart{}, err
	}
	if err := s.Suppliers.UpsertCartItem(ctx, cart.ID, req.ProductID, req.Quantity); err != nil {
		return models.Cart{}, err
	}
	return s.Suppliers.GetCart(ctx, actor.ID)
}

// Checkout converts the cart into orders, one per supplier, and notifies each
// supplier of the new order.
func (s *CartService) Checkout(ctx context.Context, actor models.Actor) ([]models.SupplierOrder, error) {
	if !actor.Role.CanManageBusiness() {
		return nil, models.ErrForbidden
	}
	cart, err := s.Suppliers.GetCart(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	orders, err := s.Suppliers.CreateOrdersFromCart(ctx, actor.ID, cart)
	if err != nil {
		return nil, err
	}

	for _, order := range orders {
		tokens, err := s.Users.TokensForUser(ctx, order.SupplierID)
		if err != nil {
			s.ErrorLog.Printf("supplier %d tokens: %v", order.SupplierID, err)
			continue
		}
		s.Notifier.Send(ctx, tokens, "New Order",
			fmt.Sprintf("Order #%d placed for %.2f.", order.ID, order.Total), nil)
	}
	return orders, nil
}

func (s *CartService) MyOrders(ctx context.Context, actor models.Actor) ([]models.SupplierOrder, error) {
	if actor.Role.IsSupplier() {
		return s.Suppliers.OrdersForSupplier(ctx, actor.ID)
	}
	return s.Suppliers.OrdersForBuyer(ctx, actor.ID)
}

// Supplier-side catalog management.

func (s *CartService) CreateProduct(ctx context.Context, actor models.Actor, p models.SupplierProduct) (models.SupplierProduct, error) {
	if !actor.Role.IsSupplier() {
		return models.SupplierProduct{}, models.ErrForbidden
	}
	p.SupplierID = actor.ID
	if p.UnitPrice <= 0 {
		return models.SupplierProduct{}, models.ErrInvalidAmount
	}
	return s.Suppliers.CreateProduct(ctx, p)
}

func (s *CartService) MyProducts(ctx context.Context, actor models.Actor) ([]models.SupplierProduct, error) {
	if !actor.Role.IsSupplier() {
		return nil, models.ErrForbidden
	}
	return s.Suppliers.ListProductsForSupplier(ctx, actor.ID)
}

func (s *CartService) UpdateProduct(ctx context.Context, actor models.Actor, p models.SupplierProduct) error {
	if !actor.Role.IsSupplier() {
		return models.ErrForbidden
	}
	p.SupplierID = actor.ID
	return s.Suppliers.UpdateProduct(ctx, p)
}

func (s *CartService) DeleteProduct(ctx context.Context, actor models.Actor, id int) error {
	if !actor.Role.IsSupplier() {
		return models.ErrForbidden
	}
	return s.Suppliers.DeleteProduct(ctx, id, actor.ID)
}
