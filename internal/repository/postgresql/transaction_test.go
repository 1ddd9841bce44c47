package postgresql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTransaction_CommitsOnSuccess(t *testing.T) {
	mock, db := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	var sawTx bool
	err := WithTransaction(context.Background(), db, func(txCtx context.Context) error {
		sawTx = GetQuerier(txCtx, db) != db.Pool
		return nil
	})
	require.NoError(t, err)

	assert.True(t, sawTx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	mock, db := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := WithTransaction(context.Background(), db, func(txCtx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollsBackOnPanic(t *testing.T) {
	mock, db := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = WithTransaction(context.Background(), db, func(txCtx context.Context) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuerier_FallsBackToPool(t *testing.T) {
	_, db := newMockDB(t)

	q := GetQuerier(context.Background(), db)
	assert.Equal(t, db.Pool, q)
}
