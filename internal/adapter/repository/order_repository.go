package repository

import (
	"context"

	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/hugohenrick/mercadinho/internal/domain/order"
	"github.com/hugohenrick/mercadinho/internal/infrastructure/database"
)

// OrderRepository implementa a interface order.Repository
type OrderRepository struct {
	db *database.PostgresDB
}

// NewOrderRepository cria uma nova instância de OrderRepository
func NewOrderRepository(db *database.PostgresDB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create implementa order.Repository.Create. O pedido e os itens precisam
// estar na mesma transação; o chamador abre a transação.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	conn := r.db.Conn(ctx)

	_, err := conn.Exec(ctx,
		`INSERT INTO orders (id, supplier_id, total_value, created_at) VALUES ($1, $2, $3, $4)`,
		o.ID, o.SupplierID, o.TotalValue, o.CreatedAt)
	if err != nil {
		return domain.Persistence("criar pedido", err)
	}

	for _, it := range o.Items {
		_, err := conn.Exec(ctx,
			`INSERT INTO order_products (order_id, product_id, quantity, unit_cost_price)
			VALUES ($1, $2, $3, $4)`,
			o.ID, it.ProductID, it.Quantity, it.UnitCostPrice)
		if err != nil {
			return domain.Persistence("criar item do pedido", err)
		}
	}

	return nil
}

// List implementa order.Repository.List
func (r *OrderRepository) List(ctx context.Context, limit, offset int) ([]*order.Order, error) {
	conn := r.db.Conn(ctx)

	rows, err := conn.Query(ctx,
		`SELECT id, supplier_id, total_value, created_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, domain.Persistence("listar pedidos", err)
	}
	defer rows.Close()

	var (
		orders []*order.Order
		ids    []string
		byID   = map[string]*order.Order{}
	)
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(&o.ID, &o.SupplierID, &o.TotalValue, &o.CreatedAt); err != nil {
			return nil, domain.Persistence("ler pedido", err)
		}
		o.Items = []order.Item{}
		orders = append(orders, &o)
		ids = append(ids, o.ID)
		byID[o.ID] = &o
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("listar pedidos", err)
	}
	if len(ids) == 0 {
		return []*order.Order{}, nil
	}

	itemRows, err := conn.Query(ctx,
		`SELECT order_id, product_id, quantity, unit_cost_price
		FROM order_products WHERE order_id = ANY($1::uuid[])`,
		ids)
	if err != nil {
		return nil, domain.Persistence("listar itens dos pedidos", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it order.Item
		if err := itemRows.Scan(&it.OrderID, &it.ProductID, &it.Quantity, &it.UnitCostPrice); err != nil {
			return nil, domain.Persistence("ler item do pedido", err)
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, domain.Persistence("listar itens dos pedidos", err)
	}

	return orders, nil
}
