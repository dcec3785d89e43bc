package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func dbWithTx(tx *FakeTx) *FakeDB {
	return &FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return tx, nil }}
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	tx := &FakeTx{ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}}
	err := WithTx(context.Background(), dbWithTx(tx), func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, "INSERT")
		return err
	})
	require.NoError(t, err)
	require.True(t, tx.Committed)
	require.False(t, tx.RolledBack)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	tx := &FakeTx{}
	boom := errors.New("boom")
	err := WithTx(context.Background(), dbWithTx(tx), func(context.Context, pgx.Tx) error { return boom })
	require.ErrorIs(t, err, boom)
	require.True(t, tx.RolledBack)
	require.False(t, tx.Committed)
}

func TestWithTxRollbackFailureIsJoined(t *testing.T) {
	rbErr := errors.New("conn lost")
	tx := &FakeTx{RollbackFn: func(context.Context) error { return rbErr }}
	boom := errors.New("boom")
	err := WithTx(context.Background(), dbWithTx(tx), func(context.Context, pgx.Tx) error { return boom })
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, err, rbErr)

	tx = &FakeTx{RollbackFn: func(context.Context) error { return pgx.ErrTxClosed }}
	err = WithTx(context.Background(), dbWithTx(tx), func(context.Context, pgx.Tx) error { return boom })
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, pgx.ErrTxClosed)
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	tx := &FakeTx{}
	require.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), dbWithTx(tx), func(context.Context, pgx.Tx) error { panic("kaput") })
	})
	require.True(t, tx.RolledBack)
	require.False(t, tx.Committed)
}

func TestWithTxBeginAndCommitErrors(t *testing.T) {
	db := &FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return nil, errors.New("no conn") }}
	called := false
	err := WithTx(context.Background(), db, func(context.Context, pgx.Tx) error { called = true; return nil })
	require.ErrorContains(t, err, "begin tx")
	require.False(t, called)

	tx := &FakeTx{CommitFn: func(context.Context) error { return errors.New("serialization") }}
	err = WithTx(context.Background(), dbWithTx(tx), func(context.Context, pgx.Tx) error { return nil })
	require.ErrorContains(t, err, "commit tx")
}

func TestWithTxRollbackIgnoresCanceledContext(t *testing.T) {
	var rbCtxErr error
	tx := &FakeTx{RollbackFn: func(ctx context.Context) error { rbCtxErr = ctx.Err(); return nil }}
	ctx, cancel := context.WithCancel(context.Background())
	err := WithTx(ctx, dbWithTx(tx), func(context.Context, pgx.Tx) error {
		cancel()
		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, tx.RolledBack)
	require.NoError(t, rbCtxErr)
}
