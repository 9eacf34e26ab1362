package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/mercadinho/internal/adapter/api/controller"
)

// RegisterCatalogRoutes registra as rotas de cadastro
func RegisterCatalogRoutes(r *gin.RouterGroup, catalogController *controller.CatalogController) {
	r.POST("/products", catalogController.CreateProduct)
	r.POST("/suppliers", catalogController.CreateSupplier)
	r.POST("/clients", catalogController.CreateClient)
}
