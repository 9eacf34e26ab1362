//go:build integration

package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hugohenrick/mercadinho/internal/application/inventory"
	"github.com/hugohenrick/mercadinho/internal/application/replenishment"
	"github.com/hugohenrick/mercadinho/internal/application/settlement"
	"github.com/hugohenrick/mercadinho/internal/domain/client"
	"github.com/hugohenrick/mercadinho/internal/domain/product"
	"github.com/hugohenrick/mercadinho/internal/domain/sale"
	"github.com/hugohenrick/mercadinho/internal/domain/supplier"
	"github.com/hugohenrick/mercadinho/internal/infrastructure/database"
	"github.com/hugohenrick/mercadinho/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type integrationEnv struct {
	db       *database.PostgresDB
	products *ProductRepository
	service  *settlement.Service
	engine   *replenishment.Engine
	supplier *supplier.Supplier
	client   *client.Client
}

func newIntegrationEnv(t *testing.T, credit string) *integrationEnv {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("mercadinho_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dsn, "../../../migrations"))

	log := logger.NewNop()
	db, err := database.NewPostgresDB(ctx, &database.PostgresConfig{URL: dsn, MaxConnections: 20}, log)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	products := NewProductRepository(db)
	suppliers := NewSupplierRepository(db)
	clients := NewClientRepository(db)

	sup, err := supplier.NewSupplier("Distribuidora Central", "12.345.678/0001-90", 3)
	require.NoError(t, err)
	require.NoError(t, suppliers.Create(ctx, sup))

	c, err := client.NewClient("Maria Souza", "123.456.789-00", decimal.RequireFromString(credit))
	require.NoError(t, err)
	require.NoError(t, clients.Create(ctx, c))

	ledger := inventory.NewLedger(products)
	engine := replenishment.NewEngine(db, ledger, suppliers, NewOrderRepository(db), NewPayableRepository(db), log)
	service := settlement.NewService(db, ledger, engine, clients, NewSaleRepository(db), NewReceivableRepository(db), log)

	return &integrationEnv{
		db:       db,
		products: products,
		service:  service,
		engine:   engine,
		supplier: sup,
		client:   c,
	}
}

func (e *integrationEnv) product(t *testing.T, stock, min, max int, cost, price string) *product.Product {
	t.Helper()

	p, err := product.NewProduct("Óleo 900ml", stock, min, max,
		decimal.RequireFromString(cost), decimal.RequireFromString(price), &e.supplier.ID)
	require.NoError(t, err)
	require.NoError(t, e.products.Create(context.Background(), p))
	return p
}

func (e *integrationEnv) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := e.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.StockQuantity
}

func TestPostgres_SaleWithReplenishment(t *testing.T) {
	ctx := context.Background()
	env := newIntegrationEnv(t, "1000")
	p := env.product(t, 5, 5, 50, "2", "7.50")

	res, err := env.service.CreateSale(ctx, settlement.CreateSaleInput{
		ClientID:        env.client.ID,
		DeliveryAddress: "Rua das Flores, 10",
		PaymentType:     sale.PaymentStoreCredit,
		Items:           []settlement.LineItem{{ProductID: p.ID, Quantity: 1}},
		Installments:    3,
	})
	require.NoError(t, err)
	assert.Equal(t, sale.StatusPending, res.Sale.Status)
	require.Len(t, res.Replenishments, 1)
	assert.Equal(t, replenishment.StatusRestocked, res.Replenishments[0].Status)
	assert.Equal(t, 50, env.stock(t, p.ID))

	stored, err := env.service.GetSale(ctx, res.Sale.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.True(t, stored.TotalValue.Equal(stored.ItemsTotal()))

	orders, err := env.engine.ListOrders(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, decimal.NewFromInt(92).Equal(orders[0].TotalValue))
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 46, orders[0].Items[0].Quantity)

	receivables, err := NewReceivableRepository(env.db).ListByClient(ctx, env.client.ID)
	require.NoError(t, err)
	assert.Len(t, receivables, 3)
}

func TestPostgres_CreditLimitRollsBack(t *testing.T) {
	ctx := context.Background()
	env := newIntegrationEnv(t, "100")
	p := env.product(t, 10, 1, 20, "100", "150")

	_, err := env.service.CreateSale(ctx, settlement.CreateSaleInput{
		ClientID:     env.client.ID,
		PaymentType:  sale.PaymentStoreCredit,
		Items:        []settlement.LineItem{{ProductID: p.ID, Quantity: 1}},
		Installments: 1,
	})
	assert.ErrorIs(t, err, sale.ErrCreditLimitExceeded)
	assert.Equal(t, 10, env.stock(t, p.ID))

	sales, err := env.service.ListSales(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestPostgres_ConcurrentSalesNeverOversell(t *testing.T) {
	ctx := context.Background()
	env := newIntegrationEnv(t, "0")
	// Mínimo zero: a reposição só dispara quando o estoque zera
	p := env.product(t, 10, 0, 10, "1", "2")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.service.CreateSale(ctx, settlement.CreateSaleInput{
				ClientID:     env.client.ID,
				PaymentType:  sale.PaymentPix,
				Items:        []settlement.LineItem{{ProductID: p.ID, Quantity: 1}},
				Installments: 1,
			})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, success, 10)
	assert.GreaterOrEqual(t, env.stock(t, p.ID), 0)

	sales, err := env.service.ListSales(ctx, 100, 0)
	require.NoError(t, err)
	assert.Len(t, sales, success)
}

func TestPostgres_ManualReplenishment(t *testing.T) {
	ctx := context.Background()
	env := newIntegrationEnv(t, "0")
	p := env.product(t, 0, 0, 1, "100", "150")

	res, err := env.engine.GenerateAutomaticOrder(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, res.Payables, 3)
	assert.Equal(t, 1, env.stock(t, p.ID))

	stored, err := NewPayableRepository(env.db).ListBySupplier(ctx, env.supplier.ID)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "33.34", stored[2].Amount.StringFixed(2))

	orders, err := env.engine.ListOrders(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
