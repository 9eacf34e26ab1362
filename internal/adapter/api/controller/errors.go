package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/mercadinho/internal/adapter/api/dto"
	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/hugohenrick/mercadinho/pkg/logger"
)

// statusFor converte a categoria do erro de domínio no status HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrCreditLimitExceeded),
		errors.Is(err, domain.ErrInvalidInstallmentCount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError escreve a resposta de erro. Erros de cliente usam a mensagem
// do próprio erro; erros internos vão só para o log e a resposta leva apenas
// a mensagem genérica.
func respondError(ctx *gin.Context, log logger.Logger, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(message, "error", err, "path", ctx.FullPath())
		ctx.JSON(status, dto.NewErrorResponse(status, message, ""))
		return
	}

	ctx.JSON(status, dto.NewErrorResponse(status, errorMessage(err), err.Error()))
}

// errorMessage retorna a mensagem mais externa sem os detalhes
func errorMessage(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Err.Error()
	}
	return err.Error()
}

// bindError responde 400 para corpo inválido
func bindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
}
