package dto

import (
	"time"

	"github.com/hugohenrick/mercadinho/internal/application/catalog"
	"github.com/hugohenrick/mercadinho/internal/domain/client"
	"github.com/hugohenrick/mercadinho/internal/domain/product"
	"github.com/hugohenrick/mercadinho/internal/domain/supplier"
	"github.com/shopspring/decimal"
)

// ProductRequest representa a requisição de cadastro de produto
type ProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	StockQuantity int             `json:"stockQuantity" binding:"min=0"`
	MinQuantity   int             `json:"minQuantity" binding:"min=0"`
	MaxQuantity   int             `json:"maxQuantity" binding:"min=0,gtefield=MinQuantity"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	SupplierID    *string         `json:"supplierId"`
}

// ToInput converte a requisição para a entrada do cadastro
func (r ProductRequest) ToInput() catalog.ProductInput {
	return catalog.ProductInput{
		Name:          r.Name,
		StockQuantity: r.StockQuantity,
		MinQuantity:   r.MinQuantity,
		MaxQuantity:   r.MaxQuantity,
		CostPrice:     r.CostPrice,
		SalePrice:     r.SalePrice,
		SupplierID:    r.SupplierID,
	}
}

// SupplierRequest representa a requisição de cadastro de fornecedor
type SupplierRequest struct {
	Name            string `json:"name" binding:"required"`
	Document        string `json:"document"`
	MaxInstallments int    `json:"maxInstallments" binding:"required,min=1"`
}

// ClientRequest representa a requisição de cadastro de cliente
type ClientRequest struct {
	Name     string          `json:"name" binding:"required"`
	Document string          `json:"document"`
	Credit   decimal.Decimal `json:"credit"`
}

// ProductResponse representa um produto
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	StockQuantity int             `json:"stockQuantity"`
	MinQuantity   int             `json:"minQuantity"`
	MaxQuantity   int             `json:"maxQuantity"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	SupplierID    *string         `json:"supplierId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// SupplierResponse representa um fornecedor
type SupplierResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Document        string    `json:"document"`
	MaxInstallments int       `json:"maxInstallments"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ClientResponse representa um cliente
type ClientResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Document  string          `json:"document"`
	Credit    decimal.Decimal `json:"credit"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToProductResponse converte um produto para resposta
func ToProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		StockQuantity: p.StockQuantity,
		MinQuantity:   p.MinQuantity,
		MaxQuantity:   p.MaxQuantity,
		CostPrice:     p.CostPrice,
		SalePrice:     p.SalePrice,
		SupplierID:    p.SupplierID,
		CreatedAt:     p.CreatedAt,
	}
}

// ToSupplierResponse converte um fornecedor para resposta
func ToSupplierResponse(s *supplier.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:              s.ID,
		Name:            s.Name,
		Document:        s.Document,
		MaxInstallments: s.MaxInstallments,
		CreatedAt:       s.CreatedAt,
	}
}

// ToClientResponse converte um cliente para resposta
func ToClientResponse(c *client.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Document:  c.Document,
		Credit:    c.Credit,
		CreatedAt: c.CreatedAt,
	}
}
