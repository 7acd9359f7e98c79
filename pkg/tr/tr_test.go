package tr

import (
	"context"
	"testing"

	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

// fakeTx реализует pgx.Tx только ради проверки типа.
type fakeTx struct {
	pgx.Tx
}

func TestTxFromCtx(t *testing.T) {
	_, err := TxFromCtx(context.Background())
	assert.ErrorIs(t, err, e.ErrTransactionNotFound)

	tx := &fakeTx{}
	got, err := TxFromCtx(WithTx(context.Background(), tx))
	assert.NoError(t, err)
	assert.Same(t, tx, got)
}

func TestTxFromCtx_WrongType(t *testing.T) {
	_, err := TxFromCtx(WithTx(context.Background(), "not a tx"))
	assert.ErrorIs(t, err, e.ErrTransactionNotFound)
}

func TestQuerierFromCtx(t *testing.T) {
	pool := &fakeTx{}
	assert.Same(t, pool, QuerierFromCtx(context.Background(), pool))

	tx := &fakeTx{}
	assert.Same(t, tx, QuerierFromCtx(WithTx(context.Background(), tx), pool))
}
