package catalog

import (
	"context"

	"github.com/hugohenrick/mercadinho/internal/domain/client"
	"github.com/hugohenrick/mercadinho/internal/domain/product"
	"github.com/hugohenrick/mercadinho/internal/domain/supplier"
	"github.com/hugohenrick/mercadinho/pkg/logger"
	"github.com/shopspring/decimal"
)

// ProductInput contém os dados de cadastro de um produto
type ProductInput struct {
	Name          string
	StockQuantity int
	MinQuantity   int
	MaxQuantity   int
	CostPrice     decimal.Decimal
	SalePrice     decimal.Decimal
	SupplierID    *string
}

// Service cadastra produtos, fornecedores e clientes
type Service struct {
	products  product.Repository
	suppliers supplier.Repository
	clients   client.Repository
	logger    logger.Logger
}

// NewService cria um novo serviço de cadastro
func NewService(products product.Repository, suppliers supplier.Repository, clients client.Repository, log logger.Logger) *Service {
	return &Service{
		products:  products,
		suppliers: suppliers,
		clients:   clients,
		logger:    log.With("component", "catalog"),
	}
}

// CreateProduct cadastra um produto, conferindo o fornecedor quando informado
func (s *Service) CreateProduct(ctx context.Context, input ProductInput) (*product.Product, error) {
	p, err := product.NewProduct(
		input.Name,
		input.StockQuantity,
		input.MinQuantity,
		input.MaxQuantity,
		input.CostPrice,
		input.SalePrice,
		input.SupplierID,
	)
	if err != nil {
		return nil, err
	}

	if p.SupplierID != nil {
		sup, err := s.suppliers.FindByID(ctx, *p.SupplierID)
		if err != nil {
			return nil, err
		}
		p.Supplier = sup
	}

	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("produto cadastrado", "product_id", p.ID, "name", p.Name)
	return p, nil
}

// CreateSupplier cadastra um fornecedor
func (s *Service) CreateSupplier(ctx context.Context, name, document string, maxInstallments int) (*supplier.Supplier, error) {
	sup, err := supplier.NewSupplier(name, document, maxInstallments)
	if err != nil {
		return nil, err
	}
	if err := s.suppliers.Create(ctx, sup); err != nil {
		return nil, err
	}

	s.logger.Info("fornecedor cadastrado", "supplier_id", sup.ID, "name", sup.Name)
	return sup, nil
}

// CreateClient cadastra um cliente com seu limite de crédito
func (s *Service) CreateClient(ctx context.Context, name, document string, credit decimal.Decimal) (*client.Client, error) {
	c, err := client.NewClient(name, document, credit)
	if err != nil {
		return nil, err
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("cliente cadastrado", "client_id", c.ID, "name", c.Name)
	return c, nil
}
