package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	o, err := NewOrder("sup-1", Item{ProductID: "p1", Quantity: 46, UnitCostPrice: decimal.NewFromInt(2)})
	require.NoError(t, err)

	assert.True(t, o.TotalValue.Equal(decimal.NewFromInt(92)))
	require.Len(t, o.Items, 1)
	assert.Equal(t, o.ID, o.Items[0].OrderID)

	_, err = NewOrder("", Item{ProductID: "p1", Quantity: 1})
	assert.ErrorIs(t, err, ErrNoSupplier)

	_, err = NewOrder("sup-1")
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = NewOrder("sup-1", Item{ProductID: "p1", Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidItem)
}
