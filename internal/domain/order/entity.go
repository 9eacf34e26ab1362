package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = domain.Wrap(domain.ErrNotFound, "pedido não encontrado")
	ErrNoSupplier  = domain.Wrap(domain.ErrValidation, "pedido precisa de fornecedor")
	ErrEmptyOrder  = domain.Wrap(domain.ErrValidation, "pedido sem itens")
	ErrInvalidItem = domain.Wrap(domain.ErrValidation, "item de pedido inválido")
)

// Item é a linha de um pedido de reposição. O custo unitário é uma cópia do
// preço de custo do produto no momento do pedido.
type Item struct {
	OrderID       string
	ProductID     string
	Quantity      int
	UnitCostPrice decimal.Decimal
}

// Order representa um pedido de reposição ao fornecedor. Não muda depois de criado.
type Order struct {
	ID         string
	SupplierID string
	TotalValue decimal.Decimal
	Items      []Item
	CreatedAt  time.Time
}

// NewOrder cria um pedido e calcula o valor total a partir dos itens
func NewOrder(supplierID string, items ...Item) (*Order, error) {
	if supplierID == "" {
		return nil, ErrNoSupplier
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	o := &Order{
		ID:         uuid.New().String(),
		SupplierID: supplierID,
		TotalValue: decimal.Zero,
		CreatedAt:  time.Now(),
	}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 || it.UnitCostPrice.IsNegative() {
			return nil, ErrInvalidItem
		}
		it.OrderID = o.ID
		o.Items = append(o.Items, it)
		o.TotalValue = o.TotalValue.Add(it.UnitCostPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	return o, nil
}

// Repository define a interface para operações de repositório de pedidos
type Repository interface {
	// Create grava o pedido e seus itens
	Create(ctx context.Context, o *Order) error

	// List lista os pedidos com seus itens, mais recentes primeiro
	List(ctx context.Context, limit, offset int) ([]*Order, error)
}
