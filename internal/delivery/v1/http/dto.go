package http

import (
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/internal/usecase"
	"github.com/shopspring/decimal"
)

// PRODUCTS

type ImageCreateRequest struct {
	URL  string `json:"url" validate:"required"`
	Main bool   `json:"main"`
}

type ProductCreateRequest struct {
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description"`
	Price       *decimal.Decimal     `json:"price"`
	Images      []ImageCreateRequest `json:"images" validate:"dive"`
}

// ProductUpdateRequest — частичное обновление, отсутствующие поля не меняются.
type ProductUpdateRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

type AddImagesRequest struct {
	ProductID string               `json:"productId" validate:"required,uuid"`
	Images    []ImageCreateRequest `json:"images" validate:"dive"`
}

type RemoveImagesRequest struct {
	ProductID string   `json:"productId" validate:"required,uuid"`
	ImageIDs  []string `json:"imageIds" validate:"dive,uuid"`
}

type UpdateThumbnailRequest struct {
	NewThumbnailID string `json:"newThumbnailId" validate:"required,uuid"`
}

type SimilarPairRequest struct {
	ProductID        string `json:"product_id" validate:"required,uuid"`
	SimilarProductID string `json:"similar_product_id" validate:"required,uuid"`
}

type AddSimilarRequest struct {
	Pairs []SimilarPairRequest `json:"pairs" validate:"dive"`
}

type RemoveSimilarRequest struct {
	ProductID        string `json:"productId" validate:"required,uuid"`
	SimilarProductID string `json:"similarProductId" validate:"required,uuid"`
}

type ThumbnailResponse struct {
	ProductID     string `json:"productId"`
	ThumbnailID   string `json:"thumbnailId"`
	AlreadyActive bool   `json:"alreadyActive"`
}

type AffectedResponse struct {
	Message  string `json:"message"`
	Affected int64  `json:"affected"`
}

// COMMENTS

type CommentCreateRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Body      string `json:"body"`
	ProductID string `json:"productId"`
}

type CommentUpdateRequest struct {
	ID    string  `json:"id" validate:"required,uuid"`
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
	Body  *string `json:"body"`
}

type CommentCreatedResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// MAPPERS

func toNewImages(in []ImageCreateRequest) []usecase.NewImage {
	out := make([]usecase.NewImage, len(in))
	for i, img := range in {
		out[i] = usecase.NewImage{URL: img.URL, Main: img.Main}
	}

	return out
}

func (r ProductUpdateRequest) toPatch() domain.ProductPatch {
	return domain.ProductPatch{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
	}
}

func (r AddSimilarRequest) toEdges() []domain.SimilarityEdge {
	edges := make([]domain.SimilarityEdge, len(r.Pairs))
	for i, p := range r.Pairs {
		edges[i] = domain.SimilarityEdge{ProductID: p.ProductID, SimilarProductID: p.SimilarProductID}
	}

	return edges
}

func (r CommentUpdateRequest) toUsecase() *usecase.UpdateCommentReq {
	return &usecase.UpdateCommentReq{
		ID: r.ID,
		Patch: domain.CommentPatch{
			Name:  r.Name,
			Email: r.Email,
			Body:  r.Body,
		},
	}
}
