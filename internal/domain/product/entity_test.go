package product

import (
	"testing"

	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name    string
		stock   int
		min     int
		max     int
		cost    int64
		sale    int64
		wantErr error
	}{
		{name: "valid", stock: 10, min: 5, max: 50, cost: 2, sale: 3},
		{name: "negative stock", stock: -1, min: 0, max: 10, wantErr: ErrNegativeStock},
		{name: "max below min", stock: 1, min: 10, max: 5, wantErr: ErrInvalidThresholds},
		{name: "negative min", stock: 1, min: -1, max: 5, wantErr: ErrInvalidThresholds},
		{name: "negative price", stock: 1, min: 0, max: 5, cost: -1, wantErr: ErrNegativePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProduct("Arroz 5kg", tt.stock, tt.min, tt.max,
				decimal.NewFromInt(tt.cost), decimal.NewFromInt(tt.sale), nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, p.ID)
		})
	}

	_, err := NewProduct(" ", 1, 0, 1, decimal.Zero, decimal.Zero, nil)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewProduct("Óleo 900ml", 1, 0, 1, decimal.RequireFromString("2.005"), decimal.NewFromInt(3), nil)
	assert.ErrorIs(t, err, ErrPricePrecision)
	_, err = NewProduct("Óleo 900ml", 1, 0, 1, decimal.NewFromInt(2), decimal.RequireFromString("7.499"), nil)
	assert.ErrorIs(t, err, ErrPricePrecision)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProduct_RestockPlan(t *testing.T) {
	p := &Product{StockQuantity: 4, MinQuantity: 5, MaxQuantity: 50, CostPrice: decimal.NewFromInt(2)}

	assert.True(t, p.NeedsRestock())
	qty, cost := p.RestockPlan()
	assert.Equal(t, 46, qty)
	assert.True(t, cost.Equal(decimal.NewFromInt(92)))

	p.StockQuantity = 5
	assert.True(t, p.NeedsRestock(), "estoque igual ao mínimo também repõe")

	p.StockQuantity = 6
	assert.False(t, p.NeedsRestock())
}

func TestProduct_HasStockAndSubtotal(t *testing.T) {
	p := &Product{StockQuantity: 3, SalePrice: decimal.RequireFromString("4.50")}

	assert.True(t, p.HasStock(3))
	assert.False(t, p.HasStock(4))
	assert.Equal(t, "13.50", p.Subtotal(3).StringFixed(2))
}
