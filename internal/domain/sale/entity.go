package sale

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound            = domain.Wrap(domain.ErrNotFound, "venda não encontrada")
	ErrCreditLimitExceeded = domain.Wrap(domain.ErrCreditLimitExceeded, "venda excede o limite de crédito do cliente")
	ErrInvalidPaymentType  = domain.Wrap(domain.ErrValidation, "tipo de pagamento inválido")
	ErrNoItems             = domain.Wrap(domain.ErrValidation, "venda sem produtos")
)

// PaymentType define a forma de pagamento da venda
type PaymentType string

const (
	PaymentCreditCard  PaymentType = "Cartão de Crédito"
	PaymentDebitCard   PaymentType = "Cartão de Débito"
	PaymentPix         PaymentType = "Pix"
	PaymentStoreCredit PaymentType = "Loja" // Crediário da loja
)

// IsValid verifica se a forma de pagamento é conhecida
func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentStoreCredit:
		return true
	}
	return false
}

// GeneratesReceivables indica se a forma de pagamento gera contas a receber.
// Débito e Pix são considerados quitados na hora.
func (p PaymentType) GeneratesReceivables() bool {
	return p == PaymentStoreCredit || p == PaymentCreditCard
}

// Status representa a situação financeira da venda
type Status string

const (
	StatusPending Status = "Pendente"
	StatusPaid    Status = "Paga"
)

// StatusFor retorna o status inicial da venda para a forma de pagamento
func StatusFor(p PaymentType) Status {
	if p == PaymentStoreCredit {
		return StatusPending
	}
	return StatusPaid
}

// Item é a linha de uma venda, com o preço unitário copiado do produto
type Item struct {
	SaleID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal retorna quantidade vezes preço unitário
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Sale representa uma venda a um cliente
type Sale struct {
	ID              string
	ClientID        string
	TotalValue      decimal.Decimal
	PaymentType     PaymentType
	Status          Status
	DeliveryAddress string
	Installments    int
	Items           []Item
	CreatedAt       time.Time
}

// NewSale cria uma venda ainda sem itens
func NewSale(clientID, deliveryAddress string, paymentType PaymentType, total decimal.Decimal, installments int) (*Sale, error) {
	if !paymentType.IsValid() {
		return nil, ErrInvalidPaymentType
	}

	return &Sale{
		ID:              uuid.New().String(),
		ClientID:        clientID,
		TotalValue:      total,
		PaymentType:     paymentType,
		Status:          StatusFor(paymentType),
		DeliveryAddress: deliveryAddress,
		Installments:    installments,
		CreatedAt:       time.Now(),
	}, nil
}

// AddItem adiciona uma linha à venda
func (s *Sale) AddItem(productID string, quantity int, unitPrice decimal.Decimal) Item {
	item := Item{
		SaleID:    s.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	s.Items = append(s.Items, item)
	return item
}

// ItemsTotal soma os subtotais das linhas
func (s *Sale) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Repository define a interface para operações de repositório de vendas
type Repository interface {
	// Create grava o cabeçalho da venda
	Create(ctx context.Context, s *Sale) error

	// AddItem grava uma linha da venda
	AddItem(ctx context.Context, item Item) error

	// FindByID busca uma venda com seus itens
	FindByID(ctx context.Context, id string) (*Sale, error)

	// List lista as vendas com seus itens, mais recentes primeiro
	List(ctx context.Context, limit, offset int) ([]*Sale, error)
}
