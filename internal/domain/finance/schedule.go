package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/shopspring/decimal"
)

// ScheduleInstallments divide o total em count parcelas mensais a partir de start.
//
// Cada parcela recebe o total dividido por count, truncado em centavos; a última
// absorve a diferença, de modo que a soma das parcelas é sempre igual ao total.
// A i-ésima parcela vence em start + i meses, com a normalização do calendário
// de time.AddDate (31/01 + 1 mês cai em março).
func ScheduleInstallments(total decimal.Decimal, count int, start time.Time, ownerID string, kind Kind) ([]*Installment, error) {
	if count < 1 {
		return nil, ErrInvalidInstallmentCount
	}
	if total.IsNegative() {
		return nil, ErrInvalidAmount
	}

	n := decimal.NewFromInt(int64(count))
	base := total.Div(n).Truncate(domain.MoneyPlaces)
	last := total.Sub(base.Mul(decimal.NewFromInt(int64(count - 1))))

	now := time.Now()
	installments := make([]*Installment, 0, count)
	for i := 0; i < count; i++ {
		amount := base
		if i == count-1 {
			amount = last
		}
		installments = append(installments, &Installment{
			ID:        uuid.New().String(),
			Kind:      kind,
			OwnerID:   ownerID,
			Number:    i + 1,
			Count:     count,
			Amount:    amount,
			DueDate:   start.AddDate(0, i, 0),
			CreatedAt: now,
		})
	}

	return installments, nil
}

// WithSource marca a origem das parcelas
func WithSource(installments []*Installment, sourceID string) []*Installment {
	for _, in := range installments {
		in.SourceID = sourceID
	}
	return installments
}
