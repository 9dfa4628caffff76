package repositories

import (
	"context"
	"database/sql"
	"errors"

	"aquaBack/internal/models"
)

type SupplierRepository struct {
	DB *sql.DB
}

func (r *SupplierRepository) CreateProduct(ctx context.Context, p models.SupplierProduct) (models.SupplierProduct, error) {
	res, err := r.DB.ExecContext(ctx, `
                INSERT INTO supplier_products (supplier_id, name, description, unit_price, in_stock)
                VALUES (?, ?, ?, ?, ?)
        `, p.SupplierID, p.Name, p.Description, p.UnitPrice, p.InStock)
	if err != nil {
		return models.SupplierProduct{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.SupplierProduct{}, err
	}
	p.ID = int(id)
	return p, nil
}

func (r *SupplierRepository) GetProduct(ctx context.Context, id int) (models.SupplierProduct, error) {
	var p models.SupplierProduct
	err := r.DB.QueryRowContext(ctx, `
                SELECT id, supplier_id, name, COALESCE(description, ''), unit_price, in_stock, created_at
                FROM supplier_products WHERE id = ?
        `, id).Scan(&p.ID, &p.SupplierID, &p.Name, &p.Description, &p.UnitPrice, &p.InStock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SupplierProduct{}, models.ErrProductNotFound
		}
		return models.SupplierProduct{}, err
	}
	return p, nil
}

// ListCatalog returns in-stock products from every supplier.
func (r *SupplierRepository) ListCatalog(ctx context.Context) ([]models.SupplierProduct, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT id, supplier_id, name, COALESCE(description, ''), unit_price, in_stock, created_at
                FROM supplier_products WHERE in_stock = 1 ORDER BY name
        `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *SupplierRepository) ListProductsForSupplier(ctx context.Context, supplierID int) ([]models.SupplierProduct, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT id, supplier_id, name, COALESCE(description, ''), unit_price, in_stock, created_at
                FROM supplier_products WHERE supplier_id = ? ORDER BY created_at DESC
        `, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func collectProducts(rows *sql.Rows) ([]models.SupplierProduct, error) {
	var products []models.SupplierProduct
	for rows.Next() {
		var p models.SupplierProduct
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.Name, &p.Description, &p.UnitPrice, &p.InStock, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *SupplierRepository) UpdateProduct(ctx context.Context, p models.SupplierProduct) error {
	res, err := r.DB.ExecContext(ctx, `
                UPDATE supplier_products SET name = ?, description = ?, unit_price = ?, in_stock = ?
                WHERE id = ? AND supplier_id = ?
        `, p.Name, p.Description, p.UnitPrice, p.InStock, p.ID, p.SupplierID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

func (r *SupplierRepository) DeleteProduct(ctx context.Context, id, supplierID int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM supplier_products WHERE id = ? AND supplier_id = ?`, id, supplierID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

// GetCart loads a user's cart with items, creating the cart row on first use.
func (r *SupplierRepository) GetCart(ctx context.Context, userID int) (models.Cart, error) {
	var cart models.Cart
	err := r.DB.QueryRowContext(ctx, `SELECT id, user_id, updated_at FROM carts WHERE user_id = ?`, userID).
		Scan(&cart.ID, &cart.UserID, &cart.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		res, err := r.DB.ExecContext(ctx, `INSERT INTO carts (user_id) VALUES (?)`, userID)
		if err != nil {
			return models.Cart{}, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return models.Cart{}, err
		}
		return models.Cart{ID: int(id), UserID: userID}, nil
	}
	if err != nil {
		return models.Cart{}, err
	}

	rows, err := r.DB.QueryContext(ctx, `
                SELECT i.id, i.cart_id, i.product_id, p.name, p.unit_price, i.quantity
                FROM cart_items i
                JOIN supplier_products p ON p.id = i.product_id
                WHERE i.cart_id = ?
        `, cart.ID)
	if err != nil {
		return models.Cart{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity); err != nil {
			return models.Cart{}, err
		}
		cart.Total += item.UnitPrice * float64(item.Quantity)
		cart.Items = append(cart.Items, item)
	}
	return cart, rows.Err()
}

// UpsertCartItem sets the quantity for a product in the cart; zero removes it.
func (r *SupplierRepository) UpsertCartItem(ctx context.Context, cartID, productID, quantity int) error {
	if quantity <= 0 {
		_, err := r.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
		return err
	}
	_, err := r.DB.ExecContext(ctx, `
                INSERT INTO cart_items (cart_id, product_id, quantity) VALUES (?, ?, ?)
                ON DUPLICATE KEY UPDATE quantity = VALUES(quantity)
        `, cartID, productID, quantity)
	return err
}

func (r *SupplierRepository) ClearCartTx(ctx context.Context, tx *sql.Tx, cartID int) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}

// CreateOrdersFromCart turns the cart into one order per supplier and empties
// the cart, all in one transaction.
func (r *SupplierRepository) CreateOrdersFromCart(ctx context.Context, buyerID int, cart models.Cart) ([]models.SupplierOrder, error) {
	if len(cart.Items) == 0 {
		return nil, models.ErrCartEmpty
	}

	bySupplier := map[int][]models.CartItem{}
	for _, item := range cart.Items {
		var supplierID int
		if err := r.DB.QueryRowContext(ctx, `SELECT supplier_id FROM supplier_products WHERE id = ?`, item.ProductID).Scan(&supplierID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, models.ErrProductNotFound
			}
			return nil, err
		}
		bySupplier[supplierID] = append(bySupplier[supplierID], item)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var orders []models.SupplierOrder
	for supplierID, items := range bySupplier {
		var total float64
		for _, item := range items {
			total += item.UnitPrice * float64(item.Quantity)
		}
		res, err := tx.ExecContext(ctx, `
                        INSERT INTO supplier_orders (supplier_id, buyer_id, total, status) VALUES (?, ?, ?, 'Placed')
                `, supplierID, buyerID, total)
		if err != nil {
			return nil, err
		}
		orderID, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		order := models.SupplierOrder{ID: int(orderID), SupplierID: supplierID, BuyerID: buyerID, Total: total, Status: "Placed"}
		for _, item := range items {
			if _, err := tx.ExecContext(ctx, `
                                INSERT INTO supplier_order_items (order_id, product_id, product_name, unit_price, quantity)
                                VALUES (?, ?, ?, ?, ?)
                        `, orderID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity); err != nil {
				return nil, err
			}
			order.Items = append(order.Items, models.SupplierOrderItem{
				OrderID:     int(orderID),
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				UnitPrice:   item.UnitPrice,
				Quantity:    item.Quantity,
			})
		}
		orders = append(orders, order)
	}

	if err := r.ClearCartTx(ctx, tx, cart.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *SupplierRepository) OrdersForSupplier(ctx context.Context, supplierID int) ([]models.SupplierOrder, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT id, supplier_id, buyer_id, total, status, created_at
                FROM supplier_orders WHERE supplier_id = ? ORDER BY created_at DESC
        `, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *SupplierRepository) OrdersForBuyer(ctx context.Context, buyerID int) ([]models.SupplierOrder, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT id, supplier_id, buyer_id, total, status, created_at
                FROM supplier_orders WHERE buyer_id = ? ORDER BY created_at DESC
        `, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]models.SupplierOrder, error) {
	var orders []models.SupplierOrder
	for rows.Next() {
		var o models.SupplierOrder
		if err := rows.Scan(&o.ID, &o.SupplierID, &o.BuyerID, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
