package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	Tx
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (b fakeBeginner) Begin(context.Context) (Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	require.NoError(t, WithTx(context.Background(), fakeBeginner{tx: tx}, func(Tx) error { return nil }))
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	boom := errors.New("boom")

	tx := &fakeTx{}
	err := WithTx(context.Background(), fakeBeginner{tx: tx}, func(Tx) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)

	tx = &fakeTx{commitErr: boom}
	err = WithTx(context.Background(), fakeBeginner{tx: tx}, func(Tx) error { return nil })
	require.ErrorIs(t, err, boom)
	assert.True(t, tx.rolledBack)

	err = WithTx(context.Background(), fakeBeginner{err: boom}, func(Tx) error {
		t.Fatal("fn must not run without a transaction")
		return nil
	})
	require.ErrorIs(t, err, boom)
}
