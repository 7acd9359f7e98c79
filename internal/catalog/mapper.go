package catalog

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Row — одна строка хранилища: имя колонки -> значение.
type Row map[string]any

// Колонки таблиц хранилища.
const (
	colProductID        = "product_id"
	colTitle            = "title"
	colDescription      = "description"
	colPrice            = "price"
	colCommentID        = "comment_id"
	colName             = "name"
	colEmail            = "email"
	colBody             = "body"
	colImageID          = "image_id"
	colURL              = "url"
	colMain             = "main"
	colObjectKey        = "object_key"
	colSimilarProductID = "similar_product_id"
)

// MapProduct преобразует строку таблицы products в товар.
// Пустые title/description становятся пустой строкой, пустая цена — нулём.
func MapProduct(row Row) (domain.Product, error) {
	const op = "catalog.MapProduct"

	id, err := idColumn(row, colProductID)
	if err != nil {
		return domain.Product{}, e.Wrap(op, err)
	}

	title, err := textColumn(row, colTitle)
	if err != nil {
		return domain.Product{}, e.Wrap(op, err)
	}

	description, err := textColumn(row, colDescription)
	if err != nil {
		return domain.Product{}, e.Wrap(op, err)
	}

	price, err := toDecimal(row[colPrice])
	if err != nil {
		return domain.Product{}, e.Wrap(op, fmt.Errorf("%w: column %s: %v", e.ErrMalformedRow, colPrice, err))
	}

	return *domain.NewProduct(id, title, description, price), nil
}

// MapComment преобразует строку таблицы comments в комментарий.
func MapComment(row Row) (domain.Comment, error) {
	const op = "catalog.MapComment"

	id, err := idColumn(row, colCommentID)
	if err != nil {
		return domain.Comment{}, e.Wrap(op, err)
	}

	productID, err := idColumn(row, colProductID)
	if err != nil {
		return domain.Comment{}, e.Wrap(op, err)
	}

	var fields [3]string
	for i, col := range [...]string{colName, colEmail, colBody} {
		if fields[i], err = textColumn(row, col); err != nil {
			return domain.Comment{}, e.Wrap(op, err)
		}
	}

	return *domain.NewComment(id, fields[0], fields[1], fields[2], productID), nil
}

// MapImage преобразует строку таблицы images в изображение.
func MapImage(row Row) (domain.Image, error) {
	const op = "catalog.MapImage"

	id, err := idColumn(row, colImageID)
	if err != nil {
		return domain.Image{}, e.Wrap(op, err)
	}

	productID, err := idColumn(row, colProductID)
	if err != nil {
		return domain.Image{}, e.Wrap(op, err)
	}

	url, err := textColumn(row, colURL)
	if err != nil {
		return domain.Image{}, e.Wrap(op, err)
	}

	main, err := toBool(row[colMain])
	if err != nil {
		return domain.Image{}, e.Wrap(op, fmt.Errorf("%w: column %s: %v", e.ErrMalformedRow, colMain, err))
	}

	objectKey, err := textColumn(row, colObjectKey)
	if err != nil {
		return domain.Image{}, e.Wrap(op, err)
	}

	image := domain.NewImage(id, url, productID, main)
	image.ObjectKey = objectKey
	return *image, nil
}

// MapSimilarProduct преобразует строку выборки похожих товаров в краткое представление.
func MapSimilarProduct(row Row) (domain.SimilarProduct, error) {
	p, err := MapProduct(row)
	if err != nil {
		return domain.SimilarProduct{}, err
	}

	return domain.SimilarProduct{ID: p.ID, Title: p.Title, Description: p.Description, Price: p.Price}, nil
}

// MapProducts, MapComments и MapImages применяют маппер поэлементно, сохраняя порядок.
func MapProducts(rows []Row) ([]domain.Product, error) {
	return mapRows(rows, MapProduct)
}

func MapComments(rows []Row) ([]domain.Comment, error) {
	return mapRows(rows, MapComment)
}

func MapImages(rows []Row) ([]domain.Image, error) {
	return mapRows(rows, MapImage)
}

func MapSimilarProducts(rows []Row) ([]domain.SimilarProduct, error) {
	return mapRows(rows, MapSimilarProduct)
}

func mapRows[T any](rows []Row, mapOne func(Row) (T, error)) ([]T, error) {
	result := make([]T, 0, len(rows))
	for i, row := range rows {
		entity, err := mapOne(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		result = append(result, entity)
	}

	return result, nil
}

// idColumn читает обязательный идентификатор. pgx отдаёт uuid как [16]byte.
func idColumn(row Row, col string) (string, error) {
	switch v := row[col].(type) {
	case string:
		if v == "" {
			return "", fmt.Errorf("%w: column %s is empty", e.ErrMalformedRow, col)
		}
		return v, nil
	case [16]byte:
		return uuid.UUID(v).String(), nil
	case uuid.UUID:
		return v.String(), nil
	case []byte:
		if len(v) == 0 {
			return "", fmt.Errorf("%w: column %s is empty", e.ErrMalformedRow, col)
		}
		return string(v), nil
	case nil:
		return "", fmt.Errorf("%w: column %s is missing", e.ErrMalformedRow, col)
	default:
		return "", fmt.Errorf("%w: column %s has type %T", e.ErrMalformedRow, col, v)
	}
}

// textColumn читает необязательный текст, NULL превращается в "".
func textColumn(row Row, col string) (string, error) {
	switch v := row[col].(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("%w: column %s has type %T", e.ErrMalformedRow, col, v)
	}
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return n, nil
	case pgtype.Numeric:
		if !n.Valid || n.NaN || n.Int == nil {
			return decimal.Zero, nil
		}
		return decimal.NewFromBigInt(new(big.Int).Set(n.Int), n.Exp), nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case float32:
		return decimal.NewFromFloat32(n), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case string:
		if strings.TrimSpace(n) == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(n)
	case []byte:
		return toDecimal(string(n))
	default:
		return decimal.Zero, fmt.Errorf("unsupported numeric type %T", v)
	}
}

// toBool принимает bool, числовые флаги (tinyint) и их текстовые формы.
func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	case int64:
		return b != 0, nil
	case int32:
		return b != 0, nil
	case int16:
		return b != 0, nil
	case int8:
		return b != 0, nil
	case int:
		return b != 0, nil
	case string:
		return strconv.ParseBool(b)
	case []byte:
		return strconv.ParseBool(string(b))
	default:
		return false, fmt.Errorf("unsupported boolean type %T", v)
	}
}
