package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/mercadinho/internal/adapter/api/dto"
	"github.com/hugohenrick/mercadinho/internal/application/catalog"
	"github.com/hugohenrick/mercadinho/pkg/logger"
)

// CatalogController gerencia o cadastro de produtos, fornecedores e clientes
type CatalogController struct {
	service *catalog.Service
	logger  logger.Logger
}

// NewCatalogController cria uma nova instância de CatalogController
func NewCatalogController(service *catalog.Service, logger logger.Logger) *CatalogController {
	return &CatalogController{
		service: service,
		logger:  logger,
	}
}

// CreateProduct cadastra um produto
// @Summary Cadastrar produto
// @Tags catalog
// @Accept json
// @Produce json
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [post]
func (c *CatalogController) CreateProduct(ctx *gin.Context) {
	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	p, err := c.service.CreateProduct(ctx.Request.Context(), req.ToInput())
	if err != nil {
		respondError(ctx, c.logger, "erro ao cadastrar produto", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

// CreateSupplier cadastra um fornecedor
// @Summary Cadastrar fornecedor
// @Tags catalog
// @Accept json
// @Produce json
// @Param supplier body dto.SupplierRequest true "Dados do fornecedor"
// @Success 201 {object} dto.SupplierResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /suppliers [post]
func (c *CatalogController) CreateSupplier(ctx *gin.Context) {
	var req dto.SupplierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	s, err := c.service.CreateSupplier(ctx.Request.Context(), req.Name, req.Document, req.MaxInstallments)
	if err != nil {
		respondError(ctx, c.logger, "erro ao cadastrar fornecedor", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSupplierResponse(s))
}

// CreateClient cadastra um cliente
// @Summary Cadastrar cliente
// @Tags catalog
// @Accept json
// @Produce json
// @Param client body dto.ClientRequest true "Dados do cliente"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients [post]
func (c *CatalogController) CreateClient(ctx *gin.Context) {
	var req dto.ClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	cl, err := c.service.CreateClient(ctx.Request.Context(), req.Name, req.Document, req.Credit)
	if err != nil {
		respondError(ctx, c.logger, "erro ao cadastrar cliente", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToClientResponse(cl))
}
