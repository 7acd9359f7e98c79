package usecase

import (
	"context"

	"github.com/Maria-Yarosh/shop.project.SF/internal/catalog"
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
)

type ProductUC interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SearchProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	AddImages(ctx context.Context, req *AddImagesReq) ([]domain.Image, error)
	RemoveImages(ctx context.Context, req *RemoveImagesReq) (int64, error)
	UploadImages(ctx context.Context, req *UploadProductImagesReq) ([]domain.Image, error)
	UploadsEnabled() bool
	UpdateThumbnail(ctx context.Context, productID, newImageID string) (*catalog.SwapResult, error)

	SimilarProducts(ctx context.Context, productID string) (*SimilarProductsRes, error)
	AddSimilar(ctx context.Context, pairs []domain.SimilarityEdge) (int64, error)
	RemoveSimilar(ctx context.Context, productID, similarProductID string) error
}

type CommentUC interface {
	ListComments(ctx context.Context) ([]domain.Comment, error)
	GetComment(ctx context.Context, id string) (*domain.Comment, error)
	CreateComment(ctx context.Context, req *CreateCommentReq) (*domain.Comment, error)
	UpdateComment(ctx context.Context, req *UpdateCommentReq) error
	DeleteComment(ctx context.Context, id string) error
}
