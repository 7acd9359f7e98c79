package grpc

import (
	"errors"

	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/goccy/go-json"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// GRPCErrorResponse переводит ошибку предметной области в статус gRPC.
func GRPCErrorResponse(err error) error {
	var de *e.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case e.KindValidation:
			return status.Error(codes.InvalidArgument, de.Error())
		case e.KindNotFound:
			return status.Error(codes.NotFound, de.Error())
		case e.KindConflict:
			return status.Error(codes.AlreadyExists, de.Error())
		}
	}

	return status.Error(codes.Internal, e.ErrInternalServerError.Error())
}

// toStruct переводит значение в structpb.Struct через его JSON-представление,
// поэтому поля называются так же, как в HTTP API.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	return structpb.NewStruct(fields)
}
