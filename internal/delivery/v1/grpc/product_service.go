package grpc

import (
	"context"

	"github.com/Maria-Yarosh/shop.project.SF/internal/usecase"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type ProductService struct {
	prUC   usecase.ProductUC
	logger logger.Logger
}

func NewProductService(prUC usecase.ProductUC, logger logger.Logger) *ProductService {
	return &ProductService{prUC: prUC, logger: logger}
}

func (g *ProductService) GetProduct(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	const op = "grpc.GetProduct"

	product, err := g.prUC.GetProduct(ctx, req.GetValue())
	if err != nil {
		g.logFailure(op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	res, err := toStruct(product)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s: encode product", op)
		return nil, status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}

	return res, nil
}

func (g *ProductService) GetSimilarProducts(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	const op = "grpc.GetSimilarProducts"

	similar, err := g.prUC.SimilarProducts(ctx, req.GetValue())
	if err != nil {
		g.logFailure(op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	res, err := toStruct(similar)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s: encode similar products", op)
		return nil, status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}

	return res, nil
}

func (g *ProductService) logFailure(op string, err error) {
	if kind, ok := e.KindOf(err); ok && kind != e.KindStorage {
		g.logger.Warnf("%s: %v", op, err)
		return
	}

	g.logger.Errorf(e.Wrap(op, err), "%s", op)
}
