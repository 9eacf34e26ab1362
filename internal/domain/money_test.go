package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsCents(t *testing.T) {
	assert.True(t, IsCents(decimal.NewFromInt(7)))
	assert.True(t, IsCents(decimal.RequireFromString("7.50")))
	assert.True(t, IsCents(decimal.RequireFromString("7.500")))
	assert.False(t, IsCents(decimal.RequireFromString("7.505")))
	assert.False(t, IsCents(decimal.RequireFromString("-0.001")))
}
