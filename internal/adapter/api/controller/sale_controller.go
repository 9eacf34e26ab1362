package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/mercadinho/internal/adapter/api/dto"
	"github.com/hugohenrick/mercadinho/internal/application/settlement"
	"github.com/hugohenrick/mercadinho/pkg/logger"
)

// SaleController gerencia as requisições relacionadas a vendas
type SaleController struct {
	service *settlement.Service
	logger  logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(service *settlement.Service, logger logger.Logger) *SaleController {
	return &SaleController{
		service: service,
		logger:  logger,
	}
}

// Create registra uma venda
// @Summary Registrar venda
// @Description Registra a venda, baixa o estoque, gera contas a receber e dispara o reabastecimento automático
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.CreateSaleRequest true "Dados da venda"
// @Success 201 {object} dto.CreateSaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [post]
func (c *SaleController) Create(ctx *gin.Context) {
	var req dto.CreateSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	result, err := c.service.CreateSale(ctx.Request.Context(), req.ToInput())
	if err != nil {
		respondError(ctx, c.logger, "erro ao registrar venda", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCreateSaleResponse(result))
}

// Get retorna uma venda pelo ID
// @Summary Buscar venda
// @Description Retorna a venda com seus itens
// @Tags sales
// @Produce json
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	s, err := c.service.GetSale(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar venda", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s))
}

// List retorna as vendas
// @Summary Listar vendas
// @Description Retorna as vendas paginadas, mais recentes primeiro
// @Tags sales
// @Produce json
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.SaleListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	p := dto.GetPagination(page, size)

	sales, err := c.service.ListSales(ctx.Request.Context(), p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar vendas", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleListResponse(sales, p))
}
