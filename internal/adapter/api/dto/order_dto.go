package dto

import (
	"time"

	"github.com/hugohenrick/mercadinho/internal/application/replenishment"
	"github.com/hugohenrick/mercadinho/internal/domain/order"
	"github.com/shopspring/decimal"
)

// AutoOrderRequest representa a requisição de reabastecimento manual
type AutoOrderRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// AutoOrderResponse representa o resultado do reabastecimento manual
type AutoOrderResponse struct {
	Message         string                `json:"message"`
	ProductID       string                `json:"productId"`
	SupplierID      string                `json:"supplierId"`
	QuantityOrdered int                   `json:"quantityOrdered"`
	TotalCost       decimal.Decimal       `json:"totalCost"`
	StockQuantity   int                   `json:"stockQuantity"`
	Payables        []InstallmentResponse `json:"payables"`
}

// OrderItemResponse representa um item de pedido
type OrderItemResponse struct {
	ProductID     string          `json:"productId"`
	Quantity      int             `json:"quantity"`
	UnitCostPrice decimal.Decimal `json:"unitCostPrice"`
}

// OrderResponse representa um pedido de reposição
type OrderResponse struct {
	ID         string              `json:"id"`
	SupplierID string              `json:"supplierId"`
	TotalValue decimal.Decimal     `json:"totalValue"`
	Products   []OrderItemResponse `json:"products"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// OrderListResponse representa a listagem de pedidos
type OrderListResponse struct {
	Items    []OrderResponse `json:"items"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

// ToAutoOrderResponse converte o resultado do reabastecimento manual
func ToAutoOrderResponse(res *replenishment.ManualResult) AutoOrderResponse {
	return AutoOrderResponse{
		Message:         "Pedido de reabastecimento criado e contas a pagar geradas com sucesso",
		ProductID:       res.Product.ID,
		SupplierID:      res.SupplierID,
		QuantityOrdered: res.QuantityOrdered,
		TotalCost:       res.TotalCost,
		StockQuantity:   res.Product.StockQuantity,
		Payables:        ToInstallmentResponses(res.Payables),
	}
}

// ToOrderResponse converte um pedido para resposta
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:     it.ProductID,
			Quantity:      it.Quantity,
			UnitCostPrice: it.UnitCostPrice,
		})
	}

	return OrderResponse{
		ID:         o.ID,
		SupplierID: o.SupplierID,
		TotalValue: o.TotalValue,
		Products:   items,
		CreatedAt:  o.CreatedAt,
	}
}

// ToOrderListResponse converte uma lista de pedidos para resposta
func ToOrderListResponse(orders []*order.Order, p Pagination) OrderListResponse {
	items := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, ToOrderResponse(o))
	}
	return OrderListResponse{Items: items, Page: p.Page, PageSize: p.PageSize}
}
