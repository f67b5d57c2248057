package simpletxmanager

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akaisui/car-repair-backend-sub000/pkg/dbmetrics"
)

// fakeTx транзакция с настраиваемой ошибкой коммита
type fakeTx struct {
	commitErr error
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	return nil
}

type fakeBeginner struct {
	begins     int
	commitErrs []error
}

func (b *fakeBeginner) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	var commitErr error
	if b.begins < len(b.commitErrs) {
		commitErr = b.commitErrs[b.begins]
	}
	b.begins++
	return &fakeTx{commitErr: commitErr}, nil
}

func serializationErr() *pq.Error {
	return &pq.Error{Code: "40001"}
}

// Ретрай при конфликте сериализации работает одинаково
// с менеджером на метриках и без них
func TestDoSerializable_RetriesOnCommitConflict(t *testing.T) {
	beginner := &fakeBeginner{commitErrs: []error{serializationErr(), serializationErr(), serializationErr()}}
	m := &TransactionManager{db: beginner}

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.Error(t, err)

	assert.Equal(t, maxSerializableRetries, beginner.begins)
	assert.ErrorIs(t, err, ErrTransaction)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, serializationFailureCode, string(pqErr.Code))
}

func TestDoSerializable_SucceedsAfterConflict(t *testing.T) {
	beginner := &fakeBeginner{commitErrs: []error{serializationErr(), nil}}
	m := &TransactionManager{db: beginner}

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, beginner.begins)
}
