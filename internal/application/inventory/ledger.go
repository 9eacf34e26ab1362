package inventory

import (
	"context"
	"fmt"

	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/hugohenrick/mercadinho/internal/domain/product"
)

var (
	ErrInsufficientStock = domain.Wrap(domain.ErrInsufficientStock, "estoque insuficiente")
	ErrInvalidQuantity   = domain.Wrap(domain.ErrValidation, "quantidade deve ser maior que zero")
)

// Ledger controla o estoque dos produtos. Cada chamada é gravada na hora,
// com um único UPDATE no campo de estoque.
type Ledger struct {
	products product.Repository
}

// NewLedger cria um novo Ledger
func NewLedger(products product.Repository) *Ledger {
	return &Ledger{products: products}
}

// GetProduct busca um produto com seu fornecedor
func (l *Ledger) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	return l.products.FindByID(ctx, id)
}

// GetProductForUpdate busca um produto e bloqueia a linha até o fim da transação
func (l *Ledger) GetProductForUpdate(ctx context.Context, id string) (*product.Product, error) {
	return l.products.FindByIDForUpdate(ctx, id)
}

// ReserveAndDecrement baixa quantity do estoque, falhando se não houver saldo
func (l *Ledger) ReserveAndDecrement(ctx context.Context, id string, quantity int) (*product.Product, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, ok, err := l.products.DecrementStock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	if ok {
		return p, nil
	}

	// A baixa condicional não afetou linhas: produto inexistente ou sem saldo
	current, err := l.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return nil, &InsufficientStockError{
		ProductID:   current.ID,
		ProductName: current.Name,
		Requested:   quantity,
		Available:   current.StockQuantity,
	}
}

// ResetToMax devolve o estoque do produto à quantidade máxima
func (l *Ledger) ResetToMax(ctx context.Context, id string) (*product.Product, error) {
	return l.products.ResetStockToMax(ctx, id)
}

// InsufficientStockError descreve a falta de saldo de um produto
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente para o produto %s: pedido %d, disponível %d",
		e.ProductName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
