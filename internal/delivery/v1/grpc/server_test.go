package grpc

import (
	"context"
	"io"
	"net"
	"testing"

	"github.com/Maria-Yarosh/shop.project.SF/internal/cfg"
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/internal/usecase"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	productID = "0b6a2b8e-1f33-4a5b-9d7e-5d4f3c2b1a00"
	otherID   = "7c1d9e2f-3a4b-4c5d-8e6f-9a0b1c2d3e4f"
)

// stubProductUC реализует только то, что вызывает gRPC; остальные методы паникуют.
type stubProductUC struct {
	usecase.ProductUC
	products map[string]*domain.Product
	similar  map[string][]domain.SimilarProduct
	panicky  bool
}

func (s *stubProductUC) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	if s.panicky {
		panic("boom")
	}
	if id == "bad" {
		return nil, e.Validation("product", "Product id is not UUID")
	}

	product, ok := s.products[id]
	if !ok {
		return nil, e.NotFound("product", id, "Product with id "+id+" is not found")
	}
	return product, nil
}

func (s *stubProductUC) SimilarProducts(_ context.Context, id string) (*usecase.SimilarProductsRes, error) {
	return &usecase.SimilarProductsRes{SimilarProducts: s.similar[id]}, nil
}

func startServer(t *testing.T, uc usecase.ProductUC) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := NewGRPCServer(&cfg.GRPCConfig{NetworkMode: "tcp"}, logger.NewSlogLoggerWithWriter(io.Discard, "error", "json"))
	srv.RegisterServices(uc)

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() { _ = srv.Stop(context.Background()) })

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestGetProduct(t *testing.T) {
	lamp := domain.NewProduct(productID, "Lamp", "Desk lamp", decimal.RequireFromString("19.99"))
	lamp.Images = []domain.Image{*domain.NewImage(otherID, "http://img/1.png", productID, true)}
	lamp.Thumbnail = &lamp.Images[0]

	conn := startServer(t, &stubProductUC{products: map[string]*domain.Product{productID: lamp}})
	client := NewCatalogServiceClient(conn)

	res, err := client.GetProduct(context.Background(), wrapperspb.String(productID))
	require.NoError(t, err)

	fields := res.AsMap()
	assert.Equal(t, productID, fields["id"])
	assert.Equal(t, "Lamp", fields["title"])
	assert.Equal(t, "19.99", fields["price"])
	assert.Equal(t, otherID, fields["thumbnail"].(map[string]any)["id"])
}

func TestGetProduct_ErrorCodes(t *testing.T) {
	conn := startServer(t, &stubProductUC{products: map[string]*domain.Product{}})
	client := NewCatalogServiceClient(conn)

	_, err := client.GetProduct(context.Background(), wrapperspb.String(productID))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.GetProduct(context.Background(), wrapperspb.String("bad"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, "Product id is not UUID", status.Convert(err).Message())
}

func TestGetProduct_RecoversPanic(t *testing.T) {
	conn := startServer(t, &stubProductUC{panicky: true})

	_, err := NewCatalogServiceClient(conn).GetProduct(context.Background(), wrapperspb.String(productID))
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestGetSimilarProducts(t *testing.T) {
	conn := startServer(t, &stubProductUC{similar: map[string][]domain.SimilarProduct{
		productID: {{ID: otherID, Title: "Shade", Price: decimal.NewFromInt(5)}},
	}})

	res, err := NewCatalogServiceClient(conn).GetSimilarProducts(context.Background(), wrapperspb.String(productID))
	require.NoError(t, err)

	similar := res.AsMap()["similarProducts"].([]any)
	require.Len(t, similar, 1)
	assert.Equal(t, otherID, similar[0].(map[string]any)["id"])
}

func TestHealth(t *testing.T) {
	conn := startServer(t, &stubProductUC{})

	res, err := healthpb.NewHealthClient(conn).Check(context.Background(),
		&healthpb.HealthCheckRequest{Service: catalogServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, res.GetStatus())
}

func TestGRPCErrorResponse(t *testing.T) {
	assert.Equal(t, codes.AlreadyExists, status.Code(GRPCErrorResponse(e.Conflict("comment", "", "dup"))))
	assert.Equal(t, codes.Internal, status.Code(GRPCErrorResponse(e.Storage("product", io.EOF))))
	assert.Equal(t, codes.Internal, status.Code(GRPCErrorResponse(io.EOF)))
}
