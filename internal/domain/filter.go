package domain

import "github.com/shopspring/decimal"

// ProductFilter — параметры поиска товаров, все поля необязательны.
type ProductFilter struct {
	Title       *string
	Description *string
	PriceFrom   *decimal.Decimal
	PriceTo     *decimal.Decimal
}

func (f ProductFilter) HasPriceRange() bool {
	return f.PriceFrom != nil || f.PriceTo != nil
}
