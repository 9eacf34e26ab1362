package dto

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/hugohenrick/mercadinho/internal/domain/sale"
)

// RegisterValidators registra as regras de validação próprias no validador do gin
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("validador do gin não é go-playground/validator")
	}

	return v.RegisterValidation("payment_type", func(fl validator.FieldLevel) bool {
		return sale.PaymentType(fl.Field().String()).IsValid()
	})
}
