package http

import (
	"context"
	"io"
	"time"

	"github.com/Maria-Yarosh/shop.project.SF/internal/catalog"
	"github.com/Maria-Yarosh/shop.project.SF/internal/cfg"
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/internal/usecase"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

const (
	productID = "0b6a2b8e-1f33-4a5b-9d7e-5d4f3c2b1a00"
	otherID   = "7c1d9e2f-3a4b-4c5d-8e6f-9a0b1c2d3e4f"
	imageID   = "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"
	commentID = "c0ffee00-1234-4abc-9def-0123456789ab"
)

type productUCMock struct {
	mock.Mock
	uploads bool
}

func (m *productUCMock) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Error(1)
}

func (m *productUCMock) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *productUCMock) SearchProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Error(1)
}

func (m *productUCMock) CreateProduct(ctx context.Context, req *usecase.CreateProductReq) (*domain.Product, error) {
	args := m.Called(ctx, req)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *productUCMock) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	args := m.Called(ctx, id, patch)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *productUCMock) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *productUCMock) AddImages(ctx context.Context, req *usecase.AddImagesReq) ([]domain.Image, error) {
	args := m.Called(ctx, req)
	images, _ := args.Get(0).([]domain.Image)
	return images, args.Error(1)
}

func (m *productUCMock) RemoveImages(ctx context.Context, req *usecase.RemoveImagesReq) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *productUCMock) UploadImages(ctx context.Context, req *usecase.UploadProductImagesReq) ([]domain.Image, error) {
	args := m.Called(ctx, req)
	images, _ := args.Get(0).([]domain.Image)
	return images, args.Error(1)
}

func (m *productUCMock) UploadsEnabled() bool {
	return m.uploads
}

func (m *productUCMock) UpdateThumbnail(ctx context.Context, productID, newImageID string) (*catalog.SwapResult, error) {
	args := m.Called(ctx, productID, newImageID)
	res, _ := args.Get(0).(*catalog.SwapResult)
	return res, args.Error(1)
}

func (m *productUCMock) SimilarProducts(ctx context.Context, productID string) (*usecase.SimilarProductsRes, error) {
	args := m.Called(ctx, productID)
	res, _ := args.Get(0).(*usecase.SimilarProductsRes)
	return res, args.Error(1)
}

func (m *productUCMock) AddSimilar(ctx context.Context, pairs []domain.SimilarityEdge) (int64, error) {
	args := m.Called(ctx, pairs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *productUCMock) RemoveSimilar(ctx context.Context, productID, similarProductID string) error {
	return m.Called(ctx, productID, similarProductID).Error(0)
}

type commentUCMock struct {
	mock.Mock
}

func (m *commentUCMock) ListComments(ctx context.Context) ([]domain.Comment, error) {
	args := m.Called(ctx)
	comments, _ := args.Get(0).([]domain.Comment)
	return comments, args.Error(1)
}

func (m *commentUCMock) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	comment, _ := args.Get(0).(*domain.Comment)
	return comment, args.Error(1)
}

func (m *commentUCMock) CreateComment(ctx context.Context, req *usecase.CreateCommentReq) (*domain.Comment, error) {
	args := m.Called(ctx, req)
	comment, _ := args.Get(0).(*domain.Comment)
	return comment, args.Error(1)
}

func (m *commentUCMock) UpdateComment(ctx context.Context, req *usecase.UpdateCommentReq) error {
	return m.Called(ctx, req).Error(0)
}

func (m *commentUCMock) DeleteComment(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type testServer struct {
	handler  *chi.Mux
	products *productUCMock
	comments *commentUCMock
}

func newTestServer(uploads bool, commentsPerMin int) *testServer {
	products := &productUCMock{uploads: uploads}
	comments := &commentUCMock{}

	httpCfg := &cfg.HTTPConfig{
		Port:           "0",
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		AllowedOrigins: []string{"http://localhost:3000"},
		CommentsPerMin: commentsPerMin,
	}
	minioCfg := &cfg.MinIOCfg{UploadImagesLimit: 2, MaxImageSize: 1 << 10}

	mux := chi.NewRouter()
	NewRouter(mux, logger.NewSlogLoggerWithWriter(io.Discard, "error", "json"), httpCfg, minioCfg).Init(products, comments)

	return &testServer{handler: mux, products: products, comments: comments}
}
