package domain

import "github.com/shopspring/decimal"

// SimilarityEdge — запись таблицы product_similarity.
// Хранится направленно, но трактуется как неориентированная связь.
type SimilarityEdge struct {
	ProductID        string `json:"product_id"`
	SimilarProductID string `json:"similar_product_id"`
}

// Canonical возвращает ребро в порядке (min, max).
func (s SimilarityEdge) Canonical() SimilarityEdge {
	if s.SimilarProductID < s.ProductID {
		return SimilarityEdge{ProductID: s.SimilarProductID, SimilarProductID: s.ProductID}
	}

	return s
}

// SimilarProduct — краткое представление похожего товара без комментариев и изображений.
type SimilarProduct struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}
