package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akaisui/car-repair-backend-sub000/pkg/dbmetrics"
)

// fakeTx транзакция с настраиваемой ошибкой коммита
type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
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
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

// fakeBeginner выдаёт по одной транзакции на попытку,
// ошибки коммита берутся из commitErrs по порядку
type fakeBeginner struct {
	begins     int
	commitErrs []error
	txs        []*fakeTx
}

func (b *fakeBeginner) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	var commitErr error
	if b.begins < len(b.commitErrs) {
		commitErr = b.commitErrs[b.begins]
	}
	b.begins++

	tx := &fakeTx{commitErr: commitErr}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func serializationErr() *pq.Error {
	return &pq.Error{Code: "40001"}
}

func TestDoSerializable_RetriesOnCommitConflict(t *testing.T) {
	beginner := &fakeBeginner{commitErrs: []error{serializationErr(), serializationErr(), serializationErr()}}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.Error(t, err)

	// Все попытки исчерпаны, конфликт сериализации виден сквозь обёртку
	assert.Equal(t, maxSerializableRetries, beginner.begins)
	assert.ErrorIs(t, err, ErrTransaction)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, serializationFailureCode, string(pqErr.Code))
}

func TestDoSerializable_SucceedsAfterConflict(t *testing.T) {
	beginner := &fakeBeginner{commitErrs: []error{serializationErr(), nil}}
	m := NewTransactionManager(beginner)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, beginner.begins)
	assert.Equal(t, 2, calls)
	assert.True(t, beginner.txs[1].committed)
}

func TestDoSerializable_NoRetryOnOtherCommitError(t *testing.T) {
	beginner := &fakeBeginner{commitErrs: []error{errors.New("connection reset")}}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.Error(t, err)

	assert.Equal(t, 1, beginner.begins)
	assert.ErrorIs(t, err, ErrTransaction)
}

func TestDoSerializable_RetriesOnStatementConflict(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	errInternal := errors.New("internal error")

	// Конфликт на запросе внутри транзакции, обёрнутый в цепочку через %w
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("%w: failed to get appointments: %w", errInternal, serializationErr())
	})
	require.Error(t, err)

	assert.Equal(t, maxSerializableRetries, beginner.begins)
	assert.ErrorIs(t, err, errInternal)
	for _, tx := range beginner.txs {
		assert.True(t, tx.rolledBack)
	}
}

func TestDoSerializable_FnErrorReturnedAsIs(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	errBusiness := errors.New("slot unavailable")

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	assert.Equal(t, 1, beginner.begins)
	require.Len(t, beginner.txs, 1)
	assert.True(t, beginner.txs[0].rolledBack)
	assert.False(t, beginner.txs[0].committed)
}
