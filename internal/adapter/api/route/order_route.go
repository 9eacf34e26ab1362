package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/mercadinho/internal/adapter/api/controller"
)

// RegisterOrderRoutes registra as rotas de pedidos de reabastecimento
func RegisterOrderRoutes(r *gin.RouterGroup, orderController *controller.OrderController) {
	orders := r.Group("/orders")
	{
		orders.POST("/auto", orderController.GenerateAutomatic)
		orders.GET("", orderController.List)
	}
}
