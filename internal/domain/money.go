package domain

import "github.com/shopspring/decimal"

// MoneyPlaces é a escala dos valores monetários gravados (centavos)
const MoneyPlaces = 2

// IsCents indica se o valor cabe em centavos sem arredondamento
func IsCents(v decimal.Decimal) bool {
	return v.Equal(v.Truncate(MoneyPlaces))
}
