package pgdb

import (
	"context"
	"errors"

	"github.com/Maria-Yarosh/shop.project.SF/internal/catalog"
	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/internal/repository/pgdb/converter"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productColumns = "product_id, title, description, price"

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

func (p *ProductRepo) All(ctx context.Context) ([]catalog.Row, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY seq`

	return p.query(ctx, query)
}

func (p *ProductRepo) ByID(ctx context.Context, id string) ([]catalog.Row, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`

	return p.query(ctx, query, id)
}

// LockByID берёт блокировку строки товара до конца текущей транзакции.
func (p *ProductRepo) LockByID(ctx context.Context, id string) (bool, error) {
	q := tr.QuerierFromCtx(ctx, p.pool)

	var one int
	err := q.QueryRow(ctx, `SELECT 1 FROM products WHERE product_id = $1 FOR UPDATE`, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return true, nil
}

// Search выполняет запрос, собранный catalog.CompileFilter.
func (p *ProductRepo) Search(ctx context.Context, query string, args []any) ([]catalog.Row, error) {
	return p.query(ctx, query, args...)
}

func (p *ProductRepo) Create(ctx context.Context, product domain.Product) error {
	q := tr.QuerierFromCtx(ctx, p.pool)
	model := p.conv.ToModel(&product)

	query := `
		INSERT INTO products (product_id, title, description, price)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := q.Exec(ctx, query, model.ID, model.Title, model.Description, model.Price); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Update перезаписывает title, description и price; возвращает число изменённых строк.
func (p *ProductRepo) Update(ctx context.Context, product domain.Product) (int64, error) {
	q := tr.QuerierFromCtx(ctx, p.pool)
	model := p.conv.ToModel(&product)

	query := `
		UPDATE products
		SET title = $2, description = $3, price = $4, updated_at = NOW()
		WHERE product_id = $1
	`

	tag, err := q.Exec(ctx, query, model.ID, model.Title, model.Description, model.Price)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected(), nil
}

func (p *ProductRepo) Delete(ctx context.Context, id string) (int64, error) {
	q := tr.QuerierFromCtx(ctx, p.pool)

	tag, err := q.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected(), nil
}

func (p *ProductRepo) query(ctx context.Context, query string, args ...any) ([]catalog.Row, error) {
	q := tr.QuerierFromCtx(ctx, p.pool)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := collectRows(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
