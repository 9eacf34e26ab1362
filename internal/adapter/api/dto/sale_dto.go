package dto

import (
	"time"

	"github.com/hugohenrick/mercadinho/internal/application/replenishment"
	"github.com/hugohenrick/mercadinho/internal/application/settlement"
	"github.com/hugohenrick/mercadinho/internal/domain/finance"
	"github.com/hugohenrick/mercadinho/internal/domain/sale"
	"github.com/shopspring/decimal"
)

// SaleItemRequest representa um produto da venda
type SaleItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CreateSaleRequest representa a requisição de registro de venda
type CreateSaleRequest struct {
	ClientID        string            `json:"clientId" binding:"required"`
	DeliveryAddress string            `json:"deliveryAddress"`
	PaymentType     string            `json:"paymentType" binding:"required,payment_type"`
	Products        []SaleItemRequest `json:"products" binding:"required,min=1,dive"`
	Installments    *int              `json:"installments" binding:"omitempty,min=1"`
}

// ToInput converte a requisição para a entrada do serviço de vendas.
// Sem parcelas informadas, a venda é à vista.
func (r CreateSaleRequest) ToInput() settlement.CreateSaleInput {
	installments := 1
	if r.Installments != nil {
		installments = *r.Installments
	}

	items := make([]settlement.LineItem, 0, len(r.Products))
	for _, p := range r.Products {
		items = append(items, settlement.LineItem{ProductID: p.ProductID, Quantity: p.Quantity})
	}

	return settlement.CreateSaleInput{
		ClientID:        r.ClientID,
		DeliveryAddress: r.DeliveryAddress,
		PaymentType:     sale.PaymentType(r.PaymentType),
		Items:           items,
		Installments:    installments,
	}
}

// SaleItemResponse representa a linha de uma venda
type SaleItemResponse struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse representa uma venda
type SaleResponse struct {
	ID              string             `json:"id"`
	ClientID        string             `json:"clientId"`
	TotalValue      decimal.Decimal    `json:"totalValue"`
	PaymentType     string             `json:"paymentType"`
	Status          string             `json:"status"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Installments    int                `json:"installments"`
	Products        []SaleItemResponse `json:"products"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// InstallmentResponse representa uma parcela a pagar ou a receber
type InstallmentResponse struct {
	ID      string          `json:"id"`
	Number  int             `json:"number"`
	Count   int             `json:"count"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"dueDate"`
}

// ReplenishmentResponse representa o resultado da reposição disparada por um item
type ReplenishmentResponse struct {
	ProductID       string           `json:"productId"`
	Status          string           `json:"status"`
	OrderID         string           `json:"orderId,omitempty"`
	QuantityOrdered int              `json:"quantityOrdered,omitempty"`
	TotalValue      *decimal.Decimal `json:"totalValue,omitempty"`
}

// CreateSaleResponse representa a resposta do registro de venda
type CreateSaleResponse struct {
	Message             string                  `json:"message"`
	Sale                SaleResponse            `json:"sale"`
	Receivables         []InstallmentResponse   `json:"receivables"`
	ReplenishmentOrders []ReplenishmentResponse `json:"replenishmentOrders"`
}

// SaleListResponse representa a listagem de vendas
type SaleListResponse struct {
	Items    []SaleResponse `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// ToSaleResponse converte uma venda para resposta
func ToSaleResponse(s *sale.Sale) SaleResponse {
	products := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		products = append(products, SaleItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		})
	}

	return SaleResponse{
		ID:              s.ID,
		ClientID:        s.ClientID,
		TotalValue:      s.TotalValue,
		PaymentType:     string(s.PaymentType),
		Status:          string(s.Status),
		DeliveryAddress: s.DeliveryAddress,
		Installments:    s.Installments,
		Products:        products,
		CreatedAt:       s.CreatedAt,
	}
}

// ToSaleListResponse converte uma lista de vendas para resposta
func ToSaleListResponse(sales []*sale.Sale, p Pagination) SaleListResponse {
	items := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, ToSaleResponse(s))
	}
	return SaleListResponse{Items: items, Page: p.Page, PageSize: p.PageSize}
}

// ToInstallmentResponses converte parcelas para resposta
func ToInstallmentResponses(installments []*finance.Installment) []InstallmentResponse {
	result := make([]InstallmentResponse, 0, len(installments))
	for _, in := range installments {
		result = append(result, InstallmentResponse{
			ID:      in.ID,
			Number:  in.Number,
			Count:   in.Count,
			Amount:  in.Amount,
			DueDate: in.DueDate.Format(time.DateOnly),
		})
	}
	return result
}

// ToCreateSaleResponse monta a resposta do registro de venda
func ToCreateSaleResponse(res *settlement.Result) CreateSaleResponse {
	orders := make([]ReplenishmentResponse, 0, len(res.Replenishments))
	for _, out := range res.Replenishments {
		r := ReplenishmentResponse{ProductID: out.ProductID, Status: string(out.Status)}
		if out.Status == replenishment.StatusRestocked && out.Order != nil {
			r.OrderID = out.Order.ID
			r.QuantityOrdered = out.QuantityOrdered
			total := out.Order.TotalValue
			r.TotalValue = &total
		}
		orders = append(orders, r)
	}

	return CreateSaleResponse{
		Message:             "Venda registrada com sucesso, estoque atualizado e pedido de reabastecimento gerado, se necessário",
		Sale:                ToSaleResponse(res.Sale),
		Receivables:         ToInstallmentResponses(res.Receivables),
		ReplenishmentOrders: orders,
	}
}
