package client

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = domain.Wrap(domain.ErrNotFound, "cliente não encontrado")
	ErrEmptyName       = domain.Wrap(domain.ErrValidation, "nome não pode ser vazio")
	ErrNegativeLimit   = domain.Wrap(domain.ErrValidation, "crédito não pode ser negativo")
	ErrCreditPrecision = domain.Wrap(domain.ErrValidation, "crédito deve ter no máximo duas casas decimais")
)

// Client representa um cliente da loja
type Client struct {
	ID        string
	Name      string
	Document  string          // CPF/CNPJ
	Credit    decimal.Decimal // Limite para compras no crediário da loja
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewClient cria um novo cliente
func NewClient(name, document string, credit decimal.Decimal) (*Client, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if credit.IsNegative() {
		return nil, ErrNegativeLimit
	}
	if !domain.IsCents(credit) {
		return nil, ErrCreditPrecision
	}

	now := time.Now()
	return &Client{
		ID:        uuid.New().String(),
		Name:      name,
		Document:  document,
		Credit:    credit,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanAfford verifica se o valor cabe no limite de crédito
func (c *Client) CanAfford(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(c.Credit)
}

// Repository define a interface para operações de repositório de clientes
type Repository interface {
	// Create cria um novo cliente
	Create(ctx context.Context, c *Client) error

	// FindByID busca um cliente pelo ID
	FindByID(ctx context.Context, id string) (*Client, error)
}
