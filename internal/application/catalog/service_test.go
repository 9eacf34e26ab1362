package catalog

import (
	"context"
	"testing"

	"github.com/hugohenrick/mercadinho/internal/adapter/repository/memory"
	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/hugohenrick/mercadinho/internal/domain/client"
	"github.com/hugohenrick/mercadinho/internal/domain/product"
	"github.com/hugohenrick/mercadinho/internal/domain/supplier"
	"github.com/hugohenrick/mercadinho/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (*Service, *memory.Store) {
	store := memory.NewStore()
	return NewService(store.Products(), store.Suppliers(), store.Clients(), logger.NewNop()), store
}

func TestService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("with supplier", func(t *testing.T) {
		svc, store := newService()
		sup, err := svc.CreateSupplier(ctx, "Distribuidora Central", "12.345.678/0001-90", 3)
		require.NoError(t, err)

		p, err := svc.CreateProduct(ctx, ProductInput{
			Name:          "Arroz 5kg",
			StockQuantity: 10,
			MinQuantity:   5,
			MaxQuantity:   50,
			CostPrice:     decimal.NewFromInt(18),
			SalePrice:     decimal.RequireFromString("25.90"),
			SupplierID:    &sup.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, p.Supplier)
		assert.Equal(t, sup.ID, p.Supplier.ID)

		stored, err := store.Products().FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Arroz 5kg", stored.Name)
		require.NotNil(t, stored.Supplier)
		assert.Equal(t, 3, stored.Supplier.MaxInstallments)
	})

	t.Run("without supplier", func(t *testing.T) {
		svc, _ := newService()

		p, err := svc.CreateProduct(ctx, ProductInput{
			Name:        "Sal 1kg",
			MaxQuantity: 10,
			CostPrice:   decimal.NewFromInt(1),
			SalePrice:   decimal.NewFromInt(2),
		})
		require.NoError(t, err)
		assert.Nil(t, p.SupplierID)
	})

	t.Run("unknown supplier", func(t *testing.T) {
		svc, _ := newService()
		missing := "inexistente"

		_, err := svc.CreateProduct(ctx, ProductInput{
			Name:        "Sal 1kg",
			MaxQuantity: 10,
			SupplierID:  &missing,
		})
		assert.ErrorIs(t, err, supplier.ErrNotFound)
	})

	t.Run("invalid thresholds", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.CreateProduct(ctx, ProductInput{Name: "Sal 1kg", MinQuantity: 10, MaxQuantity: 5})
		assert.ErrorIs(t, err, product.ErrInvalidThresholds)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestService_CreateSupplierAndClient(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	_, err := svc.CreateSupplier(ctx, "Atacado", "", 0)
	assert.ErrorIs(t, err, supplier.ErrInvalidMaxInstallments)

	c, err := svc.CreateClient(ctx, "João", "987.654.321-00", decimal.NewFromInt(500))
	require.NoError(t, err)
	stored, err := store.Clients().FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(stored.Credit))

	_, err = svc.CreateClient(ctx, "João", "", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, client.ErrNegativeLimit)
}
