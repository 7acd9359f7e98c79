package pgdb

import (
	"context"

	"github.com/Maria-Yarosh/shop.project.SF/internal/catalog"
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/tr"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const imageColumns = "image_id, url, product_id, main, object_key"

// ImageRepo хранит строки изображений товаров.
type ImageRepo struct {
	pool *pgxpool.Pool
}

func NewImageRepo(pool *pgxpool.Pool) *ImageRepo {
	return &ImageRepo{pool: pool}
}

func (i *ImageRepo) All(ctx context.Context) ([]catalog.Row, error) {
	return i.query(ctx, `SELECT `+imageColumns+` FROM images ORDER BY seq`)
}

func (i *ImageRepo) ByProduct(ctx context.Context, productID string) ([]catalog.Row, error) {
	return i.query(ctx, `SELECT `+imageColumns+` FROM images WHERE product_id = $1 ORDER BY seq`, productID)
}

func (i *ImageRepo) MainImages(ctx context.Context, productID string) ([]catalog.Row, error) {
	return i.query(ctx, `SELECT `+imageColumns+` FROM images WHERE product_id = $1 AND main ORDER BY seq`, productID)
}

func (i *ImageRepo) ProductImage(ctx context.Context, productID, imageID string) ([]catalog.Row, error) {
	return i.query(ctx, `SELECT `+imageColumns+` FROM images WHERE product_id = $1 AND image_id = $2`, productID, imageID)
}

// SwapMain снимает main со старой обложки и ставит на новую одним UPDATE,
// так что ни в какой момент у товара не бывает двух обложек или ни одной.
func (i *ImageRepo) SwapMain(ctx context.Context, productID, oldID, newID string) (int64, error) {
	query := `
		UPDATE images
		SET main = CASE
			WHEN image_id = $2 THEN FALSE
			WHEN image_id = $3 THEN TRUE
			ELSE main
		END
		WHERE product_id = $1 AND image_id IN ($2, $3)
	`

	tag, err := tr.QuerierFromCtx(ctx, i.pool).Exec(ctx, query, productID, oldID, newID)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected(), nil
}

// Insert вставляет изображения одним запросом в порядке среза.
func (i *ImageRepo) Insert(ctx context.Context, images []domain.Image) error {
	if len(images) == 0 {
		return nil
	}

	builder := sq.Insert("images").
		Columns("image_id", "url", "product_id", "main", "object_key").
		PlaceholderFormat(sq.Dollar)
	for _, img := range images {
		builder = builder.Values(img.ID, img.URL, img.ProductID, img.Main, nullableText(img.ObjectKey))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tr.QuerierFromCtx(ctx, i.pool).Exec(ctx, query, args...); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteByIDs удаляет изображения только указанного товара и возвращает удалённые строки.
func (i *ImageRepo) DeleteByIDs(ctx context.Context, productID string, ids []string) ([]catalog.Row, error) {
	imageIDs, err := parseUUIDs(ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return i.query(ctx,
		`DELETE FROM images WHERE product_id = $1 AND image_id = ANY($2) RETURNING `+imageColumns,
		productID, imageIDs)
}

// DeleteByProduct удаляет все изображения товара и возвращает удалённые строки.
func (i *ImageRepo) DeleteByProduct(ctx context.Context, productID string) ([]catalog.Row, error) {
	return i.query(ctx, `DELETE FROM images WHERE product_id = $1 RETURNING `+imageColumns, productID)
}

func (i *ImageRepo) query(ctx context.Context, query string, args ...any) ([]catalog.Row, error) {
	rows, err := tr.QuerierFromCtx(ctx, i.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := collectRows(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
