package usecase

import (
	"context"

	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// TxRunner выполняет fn в одной транзакции; репозитории берут её из контекста.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PgTxRunner открывает транзакции PostgreSQL через go-transaction-manager.
type PgTxRunner struct {
	db transaction.Transactional
}

func NewPgTxRunner(db transaction.Transactional) *PgTxRunner {
	return &PgTxRunner{db: db}
}

func (r *PgTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	const op = "PgTxRunner.WithinTx"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, r.db)
	if err != nil {
		return e.Wrap(op, e.Storage("transaction", err))
	}
	// При ошибке транзакция откатывается
	defer func() {
		if err != nil && tx.IsActive() {
			_ = tx.Rollback(ctx)
		}
	}()

	ctx = tr.WithTx(ctx, tx.Transaction())

	if err = fn(ctx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, e.Storage("transaction", err))
	}

	return nil
}
