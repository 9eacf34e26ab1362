package product

import (
	"context"
)

// Repository define a interface para operações de repositório de produtos
type Repository interface {
	// Create cria um novo produto
	Create(ctx context.Context, p *Product) error

	// FindByID busca um produto pelo ID, carregando o fornecedor
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByIDForUpdate busca um produto bloqueando a linha até o fim da transação
	FindByIDForUpdate(ctx context.Context, id string) (*Product, error)

	// DecrementStock baixa o estoque somente se houver quantidade suficiente.
	// Retorna ok=false quando a condição não foi satisfeita.
	DecrementStock(ctx context.Context, id string, quantity int) (p *Product, ok bool, err error)

	// ResetStockToMax iguala o estoque à quantidade máxima num único UPDATE
	ResetStockToMax(ctx context.Context, id string) (*Product, error)
}
