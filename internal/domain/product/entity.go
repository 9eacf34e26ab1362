package product

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/hugohenrick/mercadinho/internal/domain/supplier"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = domain.Wrap(domain.ErrNotFound, "produto não encontrado")
	ErrEmptyName         = domain.Wrap(domain.ErrValidation, "nome não pode ser vazio")
	ErrNegativePrice     = domain.Wrap(domain.ErrValidation, "preços não podem ser negativos")
	ErrPricePrecision    = domain.Wrap(domain.ErrValidation, "preços devem ter no máximo duas casas decimais")
	ErrInvalidThresholds = domain.Wrap(domain.ErrValidation, "quantidades mínima e máxima inválidas")
	ErrNegativeStock     = domain.Wrap(domain.ErrValidation, "estoque não pode ser negativo")
)

// Product representa um produto do estoque
type Product struct {
	ID            string
	Name          string
	StockQuantity int             // Quantidade em estoque
	MinQuantity   int             // Ponto de reposição
	MaxQuantity   int             // Estoque após reposição
	CostPrice     decimal.Decimal // Preço de custo
	SalePrice     decimal.Decimal // Preço de venda
	SupplierID    *string
	Supplier      *supplier.Supplier
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProduct cria um novo produto
func NewProduct(
	name string,
	stock, minQty, maxQty int,
	costPrice, salePrice decimal.Decimal,
	supplierID *string,
) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	if minQty < 0 || maxQty < minQty {
		return nil, ErrInvalidThresholds
	}
	if costPrice.IsNegative() || salePrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	if !domain.IsCents(costPrice) || !domain.IsCents(salePrice) {
		return nil, ErrPricePrecision
	}

	now := time.Now()
	return &Product{
		ID:            uuid.New().String(),
		Name:          name,
		StockQuantity: stock,
		MinQuantity:   minQty,
		MaxQuantity:   maxQty,
		CostPrice:     costPrice,
		SalePrice:     salePrice,
		SupplierID:    supplierID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// HasStock verifica se há estoque para a quantidade pedida
func (p *Product) HasStock(quantity int) bool {
	return quantity <= p.StockQuantity
}

// NeedsRestock indica se o estoque chegou ao ponto de reposição
func (p *Product) NeedsRestock() bool {
	return p.StockQuantity <= p.MinQuantity
}

// RestockPlan calcula a quantidade a pedir e o custo total para voltar ao máximo
func (p *Product) RestockPlan() (int, decimal.Decimal) {
	quantity := p.MaxQuantity - p.StockQuantity
	return quantity, p.CostPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Subtotal retorna o valor de venda de uma quantidade do produto
func (p *Product) Subtotal(quantity int) decimal.Decimal {
	return p.SalePrice.Mul(decimal.NewFromInt(int64(quantity)))
}
