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

// SimilarityRepo хранит рёбра таблицы product_similarity.
type SimilarityRepo struct {
	pool *pgxpool.Pool
}

func NewSimilarityRepo(pool *pgxpool.Pool) *SimilarityRepo {
	return &SimilarityRepo{pool: pool}
}

// FindNeighbors возвращает товары, связанные с productID в любом направлении.
func (s *SimilarityRepo) FindNeighbors(ctx context.Context, productID string) ([]catalog.Row, error) {
	query := `
		SELECT p.product_id, p.title, p.description, p.price
		FROM products p
		WHERE p.product_id IN (
			SELECT similar_product_id FROM product_similarity WHERE product_id = $1
			UNION
			SELECT product_id FROM product_similarity WHERE similar_product_id = $1
		)
		ORDER BY p.seq
	`

	rows, err := tr.QuerierFromCtx(ctx, s.pool).Query(ctx, query, productID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := collectRows(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// InsertEdges вставляет рёбра как есть; уже существующие пропускаются уникальным индексом.
func (s *SimilarityRepo) InsertEdges(ctx context.Context, edges []domain.SimilarityEdge) (int64, error) {
	if len(edges) == 0 {
		return 0, nil
	}

	builder := sq.Insert("product_similarity").
		Columns("product_id", "similar_product_id").
		Suffix("ON CONFLICT (product_id, similar_product_id) DO NOTHING").
		PlaceholderFormat(sq.Dollar)
	for _, edge := range edges {
		builder = builder.Values(edge.ProductID, edge.SimilarProductID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	tag, err := tr.QuerierFromCtx(ctx, s.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected(), nil
}

func (s *SimilarityRepo) DeleteEdge(ctx context.Context, a, b string) (int64, error) {
	query := `
		DELETE FROM product_similarity
		WHERE (product_id = $1 AND similar_product_id = $2)
		   OR (product_id = $2 AND similar_product_id = $1)
	`

	tag, err := tr.QuerierFromCtx(ctx, s.pool).Exec(ctx, query, a, b)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected(), nil
}

func (s *SimilarityRepo) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	query := `DELETE FROM product_similarity WHERE product_id = $1 OR similar_product_id = $1`

	tag, err := tr.QuerierFromCtx(ctx, s.pool).Exec(ctx, query, productID)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected(), nil
}
