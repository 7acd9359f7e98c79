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

const commentColumns = "comment_id, name, email, body, product_id"

// CommentRepo реализует репозиторий комментариев поверх PostgreSQL.
type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

func (c *CommentRepo) All(ctx context.Context) ([]catalog.Row, error) {
	return c.query(ctx, `SELECT `+commentColumns+` FROM comments ORDER BY seq`)
}

func (c *CommentRepo) ByID(ctx context.Context, id string) ([]catalog.Row, error) {
	return c.query(ctx, `SELECT `+commentColumns+` FROM comments WHERE comment_id = $1`, id)
}

func (c *CommentRepo) ByProduct(ctx context.Context, productID string) ([]catalog.Row, error) {
	return c.query(ctx, `SELECT `+commentColumns+` FROM comments WHERE product_id = $1 ORDER BY seq`, productID)
}

func (c *CommentRepo) Create(ctx context.Context, comment domain.Comment) error {
	q := tr.QuerierFromCtx(ctx, c.pool)

	query := `
		INSERT INTO comments (comment_id, name, email, body, product_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := q.Exec(ctx, query, comment.ID, comment.Name, comment.Email, comment.Body, comment.ProductID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Update меняет только заданные в patch поля.
func (c *CommentRepo) Update(ctx context.Context, id string, patch domain.CommentPatch) (int64, error) {
	set := make(map[string]any, 3)
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Body != nil {
		set["body"] = *patch.Body
	}

	query, args, err := sq.Update("comments").
		SetMap(set).
		Where(sq.Eq{"comment_id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	tag, err := tr.QuerierFromCtx(ctx, c.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected(), nil
}

func (c *CommentRepo) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := tr.QuerierFromCtx(ctx, c.pool).Exec(ctx, `DELETE FROM comments WHERE comment_id = $1`, id)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected(), nil
}

func (c *CommentRepo) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	tag, err := tr.QuerierFromCtx(ctx, c.pool).Exec(ctx, `DELETE FROM comments WHERE product_id = $1`, productID)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected(), nil
}

func (c *CommentRepo) query(ctx context.Context, query string, args ...any) ([]catalog.Row, error) {
	rows, err := tr.QuerierFromCtx(ctx, c.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := collectRows(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
