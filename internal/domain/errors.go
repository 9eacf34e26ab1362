package domain

import (
	"context"
	"errors"
	"fmt"
)

// Categorias de erro do núcleo de vendas e reabastecimento.
// Os pacotes de entidade declaram sentinelas próprias que embrulham estas,
// então tanto errors.Is(err, product.ErrNotFound) quanto
// errors.Is(err, domain.ErrNotFound) funcionam.
var (
	ErrNotFound                = errors.New("registro não encontrado")
	ErrInsufficientStock       = errors.New("estoque insuficiente")
	ErrCreditLimitExceeded     = errors.New("limite de crédito excedido")
	ErrInvalidInstallmentCount = errors.New("número de parcelas inválido")
	ErrValidation              = errors.New("dados inválidos")
	ErrPersistence             = errors.New("erro de persistência")
)

// Wrap cria uma sentinela específica de entidade que embrulha uma categoria
func Wrap(kind error, message string) error {
	return fmt.Errorf("%s: %w", message, kind)
}

// ValidationError associa uma sentinela a detalhes legíveis para o usuário
type ValidationError struct {
	Err     error
	Details string
}

// NewValidationError cria um novo erro de validação
func NewValidationError(err error, details string) *ValidationError {
	return &ValidationError{Err: err, Details: details}
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Persistence embrulha um erro do banco como ErrPersistence
func Persistence(action string, err error) error {
	return fmt.Errorf("erro ao %s: %w: %w", action, ErrPersistence, err)
}

// Transactor executa uma função dentro de uma transação. Chamadas aninhadas
// viram savepoints: um erro desfaz apenas o trecho interno.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
