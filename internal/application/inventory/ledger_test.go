package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/hugohenrick/mercadinho/internal/adapter/repository/memory"
	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/hugohenrick/mercadinho/internal/domain/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T, stock, min, max int) (*Ledger, *product.Product) {
	t.Helper()

	store := memory.NewStore()
	p, err := product.NewProduct("Feijão 1kg", stock, min, max, decimal.NewFromInt(5), decimal.NewFromInt(8), nil)
	require.NoError(t, err)
	require.NoError(t, store.Products().Create(context.Background(), p))

	return NewLedger(store.Products()), p
}

func TestLedger_ReserveAndDecrement(t *testing.T) {
	ctx := context.Background()

	t.Run("decrements and persists", func(t *testing.T) {
		ledger, p := newLedger(t, 10, 2, 20)

		got, err := ledger.ReserveAndDecrement(ctx, p.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, 6, got.StockQuantity)

		again, err := ledger.GetProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 6, again.StockQuantity)
	})

	t.Run("allows taking the whole stock", func(t *testing.T) {
		ledger, p := newLedger(t, 3, 0, 10)

		got, err := ledger.ReserveAndDecrement(ctx, p.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 0, got.StockQuantity)
	})

	t.Run("fails when quantity exceeds stock", func(t *testing.T) {
		ledger, p := newLedger(t, 3, 0, 10)

		_, err := ledger.ReserveAndDecrement(ctx, p.ID, 4)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		var stockErr *InsufficientStockError
		require.True(t, errors.As(err, &stockErr))
		assert.Equal(t, 3, stockErr.Available)
		assert.Equal(t, 4, stockErr.Requested)

		unchanged, err := ledger.GetProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, unchanged.StockQuantity)
	})

	t.Run("fails for unknown product", func(t *testing.T) {
		ledger, _ := newLedger(t, 3, 0, 10)

		_, err := ledger.ReserveAndDecrement(ctx, "inexistente", 1)
		assert.ErrorIs(t, err, product.ErrNotFound)
	})

	t.Run("rejects non positive quantities", func(t *testing.T) {
		ledger, p := newLedger(t, 3, 0, 10)

		_, err := ledger.ReserveAndDecrement(ctx, p.ID, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		_, err = ledger.ReserveAndDecrement(ctx, p.ID, -2)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestLedger_ResetToMax(t *testing.T) {
	ledger, p := newLedger(t, 1, 5, 50)

	got, err := ledger.ResetToMax(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.StockQuantity)

	_, err = ledger.ResetToMax(context.Background(), "inexistente")
	assert.ErrorIs(t, err, product.ErrNotFound)
}
