package finance

import (
	"context"
	"time"

	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInstallmentCount = domain.Wrap(domain.ErrInvalidInstallmentCount, "o número de parcelas deve ser maior que zero")
	ErrInvalidAmount           = domain.Wrap(domain.ErrValidation, "valor a parcelar não pode ser negativo")
	ErrKindMismatch            = domain.Wrap(domain.ErrValidation, "tipo de parcela incompatível com o repositório")
)

// Kind distingue contas a pagar de contas a receber
type Kind string

const (
	KindPayable    Kind = "payable"    // Conta a pagar ao fornecedor
	KindReceivable Kind = "receivable" // Conta a receber do cliente
)

// Installment é uma parcela de conta a pagar ou a receber.
// Parcelas são apenas inseridas, nunca alteradas.
type Installment struct {
	ID       string
	Kind     Kind
	OwnerID  string // Fornecedor (a pagar) ou cliente (a receber)
	SourceID string // Venda ou produto que originou a parcela
	Number   int    // 1..Count
	Count    int
	Amount   decimal.Decimal
	DueDate  time.Time

	CreatedAt time.Time
}

// Total soma o valor de um conjunto de parcelas
func Total(installments []*Installment) decimal.Decimal {
	total := decimal.Zero
	for _, in := range installments {
		total = total.Add(in.Amount)
	}
	return total
}

// PayableRepository grava parcelas de contas a pagar
type PayableRepository interface {
	CreateBatch(ctx context.Context, installments []*Installment) error
	ListBySupplier(ctx context.Context, supplierID string) ([]*Installment, error)
}

// ReceivableRepository grava parcelas de contas a receber
type ReceivableRepository interface {
	CreateBatch(ctx context.Context, installments []*Installment) error
	ListByClient(ctx context.Context, clientID string) ([]*Installment, error)
}
