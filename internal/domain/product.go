package domain

import "github.com/shopspring/decimal"

// Product описывает товар каталога.
// Comments, Images и Thumbnail заполняются при сборке представления товара;
// nil означает «не запрашивалось», а не «пусто».
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Comments    []Comment       `json:"comments,omitempty"`
	Images      []Image         `json:"images,omitempty"`
	Thumbnail   *Image          `json:"thumbnail,omitempty"` // указывает на элемент Images
}

func NewProduct(id, title, description string, price decimal.Decimal) *Product {
	return &Product{
		ID:          id,
		Title:       title,
		Description: description,
		Price:       price,
	}
}

// ProductPatch — частичное обновление товара, nil-поля не меняются.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
}

// Empty сообщает, что ни одно поле не задано.
func (p ProductPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil
}

// Apply возвращает копию товара с применёнными изменениями.
func (p ProductPatch) Apply(product Product) Product {
	if p.Title != nil {
		product.Title = *p.Title
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}

	return product
}
