package supplier

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/mercadinho/internal/domain"
)

var (
	ErrNotFound               = domain.Wrap(domain.ErrNotFound, "fornecedor não encontrado")
	ErrEmptyName              = domain.Wrap(domain.ErrValidation, "nome não pode ser vazio")
	ErrInvalidMaxInstallments = domain.Wrap(domain.ErrValidation, "número máximo de parcelas deve ser positivo")
)

// Supplier representa um fornecedor de produtos
type Supplier struct {
	ID              string
	Name            string
	Document        string // CNPJ
	MaxInstallments int    // Parcelas aceitas nas contas a pagar
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewSupplier cria um novo fornecedor
func NewSupplier(name, document string, maxInstallments int) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if maxInstallments < 1 {
		return nil, ErrInvalidMaxInstallments
	}

	now := time.Now()
	return &Supplier{
		ID:              uuid.New().String(),
		Name:            name,
		Document:        document,
		MaxInstallments: maxInstallments,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Repository define a interface para operações de repositório de fornecedores
type Repository interface {
	// Create cria um novo fornecedor
	Create(ctx context.Context, s *Supplier) error

	// FindByID busca um fornecedor pelo ID
	FindByID(ctx context.Context, id string) (*Supplier, error)
}
