package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/mercadinho/internal/adapter/api/dto"
	"github.com/hugohenrick/mercadinho/internal/application/replenishment"
	"github.com/hugohenrick/mercadinho/pkg/logger"
)

// OrderController gerencia as requisições de reabastecimento
type OrderController struct {
	engine *replenishment.Engine
	logger logger.Logger
}

// NewOrderController cria uma nova instância de OrderController
func NewOrderController(engine *replenishment.Engine, logger logger.Logger) *OrderController {
	return &OrderController{
		engine: engine,
		logger: logger,
	}
}

// GenerateAutomatic reabastece um produto gerando contas a pagar ao fornecedor
// @Summary Reabastecer produto
// @Description Devolve o estoque ao máximo e gera as contas a pagar no número de parcelas do fornecedor
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.AutoOrderRequest true "Produto a reabastecer"
// @Success 201 {object} dto.AutoOrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/auto [post]
func (c *OrderController) GenerateAutomatic(ctx *gin.Context) {
	var req dto.AutoOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	result, err := c.engine.GenerateAutomaticOrder(ctx.Request.Context(), req.ProductID)
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar pedido de reabastecimento", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAutoOrderResponse(result))
}

// List retorna os pedidos de reposição
// @Summary Listar pedidos
// @Description Retorna os pedidos de reposição paginados, mais recentes primeiro
// @Tags orders
// @Produce json
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.OrderListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	p := dto.GetPagination(page, size)

	orders, err := c.engine.ListOrders(ctx.Request.Context(), p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar pedidos", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderListResponse(orders, p))
}
