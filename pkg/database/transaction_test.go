package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTx implements only Commit and Rollback; any other pgx.Tx call panics on the nil embed.
type recordingTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *recordingTx) Commit(ctx context.Context) error {
	t.committed = true
	return t.commitErr
}

func (t *recordingTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type stubBeginner struct {
	tx  *recordingTx
	err error
}

func (b *stubBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestWithTransaction_Commit(t *testing.T) {
	b := &stubBeginner{tx: &recordingTx{}}

	err := WithTransaction(context.Background(), b, func(tx pgx.Tx) error { return nil })

	require.NoError(t, err)
	assert.True(t, b.tx.committed)
	assert.False(t, b.tx.rolledBack)
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	b := &stubBeginner{tx: &recordingTx{}}
	boom := errors.New("boom")

	err := WithTransaction(context.Background(), b, func(tx pgx.Tx) error { return boom })

	require.ErrorIs(t, err, boom)
	assert.False(t, b.tx.committed)
	assert.True(t, b.tx.rolledBack)
}

func TestWithTransaction_RollbackOnCommitFailure(t *testing.T) {
	commitErr := errors.New("serialization failure")
	b := &stubBeginner{tx: &recordingTx{commitErr: commitErr}}

	err := WithTransaction(context.Background(), b, func(tx pgx.Tx) error { return nil })

	require.ErrorIs(t, err, commitErr)
	assert.True(t, b.tx.rolledBack)
}

func TestWithTransaction_RollbackOnPanic(t *testing.T) {
	b := &stubBeginner{tx: &recordingTx{}}

	assert.Panics(t, func() {
		_ = WithTransaction(context.Background(), b, func(tx pgx.Tx) error { panic("bad") })
	})
	assert.True(t, b.tx.rolledBack)
	assert.False(t, b.tx.committed)
}

func TestWithTransaction_BeginFailure(t *testing.T) {
	beginErr := errors.New("pool exhausted")
	b := &stubBeginner{err: beginErr}

	called := false
	err := WithTransaction(context.Background(), b, func(tx pgx.Tx) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, beginErr)
	assert.False(t, called)
}

func TestWithTransactionResult(t *testing.T) {
	b := &stubBeginner{tx: &recordingTx{}}

	got, err := WithTransactionResult(context.Background(), b, func(tx pgx.Tx) (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	b = &stubBeginner{tx: &recordingTx{}}
	got, err = WithTransactionResult(context.Background(), b, func(tx pgx.Tx) (int, error) { return 7, errors.New("nope") })
	require.Error(t, err)
	assert.Zero(t, got)
}
