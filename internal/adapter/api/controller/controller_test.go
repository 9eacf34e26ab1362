package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/mercadinho/internal/adapter/api/dto"
	"github.com/hugohenrick/mercadinho/internal/adapter/repository/memory"
	"github.com/hugohenrick/mercadinho/internal/application/catalog"
	"github.com/hugohenrick/mercadinho/internal/application/inventory"
	"github.com/hugohenrick/mercadinho/internal/application/replenishment"
	"github.com/hugohenrick/mercadinho/internal/application/settlement"
	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/hugohenrick/mercadinho/internal/domain/product"
	"github.com/hugohenrick/mercadinho/internal/domain/sale"
	"github.com/hugohenrick/mercadinho/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	router *gin.Engine
	store  *memory.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, dto.RegisterValidators())

	store := memory.NewStore()
	log := logger.NewNop()
	ledger := inventory.NewLedger(store.Products())
	engine := replenishment.NewEngine(store, ledger, store.Suppliers(), store.Orders(), store.Payables(), log)
	sales := settlement.NewService(store, ledger, engine, store.Clients(), store.Sales(), store.Receivables(), log)
	cat := catalog.NewService(store.Products(), store.Suppliers(), store.Clients(), log)

	router := gin.New()
	api := router.Group("/api/v1")
	saleController := NewSaleController(sales, log)
	orderController := NewOrderController(engine, log)
	catalogController := NewCatalogController(cat, log)

	api.POST("/sales", saleController.Create)
	api.GET("/sales", saleController.List)
	api.GET("/sales/:id", saleController.Get)
	api.POST("/orders/auto", orderController.GenerateAutomatic)
	api.GET("/orders", orderController.List)
	api.POST("/products", catalogController.CreateProduct)
	api.POST("/suppliers", catalogController.CreateSupplier)
	api.POST("/clients", catalogController.CreateClient)

	return &testAPI{router: router, store: store}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// seed cadastra fornecedor, cliente e produto pela própria API
func (a *testAPI) seed(t *testing.T, credit string, stock, min, max int) (clientID, productID string) {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/v1/suppliers", map[string]interface{}{
		"name": "Distribuidora Central", "document": "12.345.678/0001-90", "maxInstallments": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sup dto.SupplierResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sup))

	w = a.do(t, http.MethodPost, "/api/v1/clients", map[string]interface{}{
		"name": "Maria Souza", "document": "123.456.789-00", "credit": credit,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cl dto.ClientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cl))

	w = a.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Óleo 900ml", "stockQuantity": stock, "minQuantity": min, "maxQuantity": max,
		"costPrice": "2", "salePrice": "7.50", "supplierId": sup.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))

	return cl.ID, p.ID
}

func TestSaleController_Create(t *testing.T) {
	t.Run("created with replenishment", func(t *testing.T) {
		api := newTestAPI(t)
		clientID, productID := api.seed(t, "0", 5, 5, 50)

		w := api.do(t, http.MethodPost, "/api/v1/sales", map[string]interface{}{
			"clientId":        clientID,
			"deliveryAddress": "Rua das Flores, 10",
			"paymentType":     "Pix",
			"products":        []map[string]interface{}{{"productId": productID, "quantity": 1}},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp dto.CreateSaleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Message)
		assert.Equal(t, "Paga", resp.Sale.Status)
		assert.Equal(t, 1, resp.Sale.Installments)
		assert.True(t, decimal.RequireFromString("7.5").Equal(resp.Sale.TotalValue))
		require.Len(t, resp.ReplenishmentOrders, 1)
		assert.Equal(t, "restocked", resp.ReplenishmentOrders[0].Status)
		assert.Equal(t, 46, resp.ReplenishmentOrders[0].QuantityOrdered)
		assert.Empty(t, resp.Receivables)

		w = api.do(t, http.MethodGet, "/api/v1/sales/"+resp.Sale.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = api.do(t, http.MethodGet, "/api/v1/orders", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var orders dto.OrderListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
		require.Len(t, orders.Items, 1)
		assert.True(t, decimal.NewFromInt(92).Equal(orders.Items[0].TotalValue))
	})

	t.Run("store credit generates receivables", func(t *testing.T) {
		api := newTestAPI(t)
		clientID, productID := api.seed(t, "100", 20, 5, 50)

		w := api.do(t, http.MethodPost, "/api/v1/sales", map[string]interface{}{
			"clientId":     clientID,
			"paymentType":  "Loja",
			"installments": 3,
			"products":     []map[string]interface{}{{"productId": productID, "quantity": 4}},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp dto.CreateSaleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Pendente", resp.Sale.Status)
		require.Len(t, resp.Receivables, 3)
		assert.Equal(t, "10", resp.Receivables[0].Amount.String())
	})

	cases := []struct {
		name   string
		body   func(clientID, productID string) map[string]interface{}
		status int
	}{
		{
			name: "unknown payment type",
			body: func(c, p string) map[string]interface{} {
				return map[string]interface{}{"clientId": c, "paymentType": "Boleto",
					"products": []map[string]interface{}{{"productId": p, "quantity": 1}}}
			},
			status: http.StatusBadRequest,
		},
		{
			name: "no products",
			body: func(c, p string) map[string]interface{} {
				return map[string]interface{}{"clientId": c, "paymentType": "Pix", "products": []map[string]interface{}{}}
			},
			status: http.StatusBadRequest,
		},
		{
			name: "zero installments",
			body: func(c, p string) map[string]interface{} {
				return map[string]interface{}{"clientId": c, "paymentType": "Pix", "installments": 0,
					"products": []map[string]interface{}{{"productId": p, "quantity": 1}}}
			},
			status: http.StatusBadRequest,
		},
		{
			name: "insufficient stock",
			body: func(c, p string) map[string]interface{} {
				return map[string]interface{}{"clientId": c, "paymentType": "Pix",
					"products": []map[string]interface{}{{"productId": p, "quantity": 21}}}
			},
			status: http.StatusBadRequest,
		},
		{
			name: "credit limit exceeded",
			body: func(c, p string) map[string]interface{} {
				return map[string]interface{}{"clientId": c, "paymentType": "Loja",
					"products": []map[string]interface{}{{"productId": p, "quantity": 20}}}
			},
			status: http.StatusBadRequest,
		},
		{
			name: "unknown client",
			body: func(c, p string) map[string]interface{} {
				return map[string]interface{}{"clientId": "inexistente", "paymentType": "Pix",
					"products": []map[string]interface{}{{"productId": p, "quantity": 1}}}
			},
			status: http.StatusNotFound,
		},
		{
			name: "unknown product",
			body: func(c, p string) map[string]interface{} {
				return map[string]interface{}{"clientId": c, "paymentType": "Pix",
					"products": []map[string]interface{}{{"productId": "inexistente", "quantity": 1}}}
			},
			status: http.StatusNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := newTestAPI(t)
			clientID, productID := api.seed(t, "100", 20, 5, 50)

			w := api.do(t, http.MethodPost, "/api/v1/sales", tc.body(clientID, productID))
			assert.Equal(t, tc.status, w.Code, w.Body.String())

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.status, resp.Code)

			p, err := api.store.Products().FindByID(context.Background(), productID)
			require.NoError(t, err)
			assert.Equal(t, 20, p.StockQuantity)
		})
	}

	t.Run("persistence failure", func(t *testing.T) {
		api := newTestAPI(t)
		clientID, productID := api.seed(t, "0", 20, 5, 50)
		api.store.InjectFault("sales.create", errors.New("conexão perdida"))

		w := api.do(t, http.MethodPost, "/api/v1/sales", map[string]interface{}{
			"clientId":    clientID,
			"paymentType": "Pix",
			"products":    []map[string]interface{}{{"productId": productID, "quantity": 1}},
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSaleController_GetAndList(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/sales/inexistente", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	clientID, productID := api.seed(t, "0", 50, 1, 60)
	for i := 0; i < 3; i++ {
		w = api.do(t, http.MethodPost, "/api/v1/sales", map[string]interface{}{
			"clientId":    clientID,
			"paymentType": string(sale.PaymentDebitCard),
			"products":    []map[string]interface{}{{"productId": productID, "quantity": 1}},
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = api.do(t, http.MethodGet, "/api/v1/sales?page=1&size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.SaleListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.PageSize)
}

func TestOrderController_GenerateAutomatic(t *testing.T) {
	t.Run("creates payables", func(t *testing.T) {
		api := newTestAPI(t)
		_, productID := api.seed(t, "0", 10, 5, 50)

		w := api.do(t, http.MethodPost, "/api/v1/orders/auto", map[string]string{"productId": productID})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp dto.AutoOrderResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 40, resp.QuantityOrdered)
		assert.Equal(t, 50, resp.StockQuantity)
		assert.True(t, decimal.NewFromInt(80).Equal(resp.TotalCost))
		require.Len(t, resp.Payables, 2)
	})

	t.Run("unknown product", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do(t, http.MethodPost, "/api/v1/orders/auto", map[string]string{"productId": "inexistente"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("product without supplier", func(t *testing.T) {
		api := newTestAPI(t)
		p, err := product.NewProduct("Sal", 1, 1, 10, decimal.NewFromInt(1), decimal.NewFromInt(2), nil)
		require.NoError(t, err)
		require.NoError(t, api.store.Products().Create(context.Background(), p))

		w := api.do(t, http.MethodPost, "/api/v1/orders/auto", map[string]string{"productId": p.ID})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing body", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do(t, http.MethodPost, "/api/v1/orders/auto", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCatalogController_Validation(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/suppliers", map[string]interface{}{"name": "Atacado", "maxInstallments": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Sal", "minQuantity": 10, "maxQuantity": 5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Sal", "maxQuantity": 5, "supplierId": "inexistente",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/clients", map[string]interface{}{"name": "João", "credit": "-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/clients", map[string]interface{}{"name": "João", "credit": "10.999"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleController_InternalErrorHidesDetails(t *testing.T) {
	api := newTestAPI(t)
	clientID, productID := api.seed(t, "0", 10, 1, 20)
	api.store.InjectFault("sales.create", domain.Persistence("criar venda",
		errors.New(`ERROR: relation "sales" does not exist (SQLSTATE 42P01)`)))

	w := api.do(t, http.MethodPost, "/api/v1/sales", map[string]interface{}{
		"clientId":    clientID,
		"paymentType": "Pix",
		"products":    []map[string]interface{}{{"productId": productID, "quantity": 1}},
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "SQLSTATE")

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NotEmpty(t, resp.Message)
	assert.Empty(t, resp.Details)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{product.ErrNotFound, http.StatusNotFound},
		{inventory.ErrInsufficientStock, http.StatusBadRequest},
		{sale.ErrCreditLimitExceeded, http.StatusBadRequest},
		{domain.ErrInvalidInstallmentCount, http.StatusBadRequest},
		{domain.NewValidationError(sale.ErrInvalidPaymentType, "Boleto"), http.StatusBadRequest},
		{domain.Persistence("gravar venda", errors.New("timeout")), http.StatusInternalServerError},
		{fmt.Errorf("erro ao buscar: %w", product.ErrNotFound), http.StatusNotFound},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}
