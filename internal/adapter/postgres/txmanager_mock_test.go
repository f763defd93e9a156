package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxManager_CommitsOnSuccess(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM languages").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	tm := NewTxManager(mock)
	err = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := QuerierFromCtx(ctx, mock)
		_, err := q.Exec(ctx, "DELETE FROM languages WHERE english_name = $1", "Tahlan")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := errors.New("pipeline failed")
	err = NewTxManager(mock).RunInTx(context.Background(), func(context.Context) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_BeginFailure(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err = NewTxManager(mock).RunInTx(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "begin transaction")
	assert.False(t, called)
}

func TestQuerierFromCtx_FallbackWithoutTx(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.Same(t, Querier(mock), QuerierFromCtx(context.Background(), mock))
}
