package models

import "time"

type SupplierProduct struct {
	ID          int       `json:"id"`
	SupplierID  int       `json:"supplier_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UnitPrice   float64   `json:"unit_price"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// Cart is the explicit per-user procurement cart. It replaces any implicit
// session state: every mutation goes through the cart service and is
// persisted against the owning user.
type Cart struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID          int     `json:"id"`
	CartID      int     `json:"cart_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

type SupplierOrder struct {
	ID         int                 `json:"id"`
	SupplierID int                 `json:"supplier_id"`
	BuyerID    int                 `json:"buyer_id"`
	Total      float64             `json:"total"`
	Status     string              `json:"status"`
	Items      []SupplierOrderItem `json:"items,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

type SupplierOrderItem struct {
	ID          int     `json:"id"`
	OrderID     int     `json:"order_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

type CartItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type ProductSale struct {
	ID             int       `json:"id"`
	ProductName    string    `json:"product_name"`
	Quantity       int       `json:"quantity"`
	PricePerItem   float64   `json:"price_per_item"`
	TotalAmount    float64   `json:"total_amount"`
	CustomerName   string    `json:"customer_name,omitempty"`
	CustomerMobile string    `json:"customer_mobile,omitempty"`
	UserID         int       `json:"user_id"`
	BusinessID     int       `json:"business_id"`
	Timestamp      time.Time `json:"timestamp"`
}

type ProductSaleRequest struct {
	ProductName    string `json:"product_name"` // "New Jar" or "Dispenser"
	Quantity       int    `json:"quantity"`
	CustomerName   string `json:"customer_name"`
	CustomerMobile string `json:"customer_mobile"`
}
