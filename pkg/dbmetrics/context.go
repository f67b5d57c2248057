package dbmetrics

import "context"

// ctxKey тип ключа контекста для хранения активной транзакции
type ctxKey struct{}

var executorKey ctxKey

// WithExecutor кладёт транзакцию в контекст
// Используется transaction manager'ами, чтобы репозитории прозрачно
// выполняли запросы внутри активной транзакции
func WithExecutor(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, executorKey, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть,
// иначе переданный по умолчанию executor
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(executorKey).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction проверяет, выполняется ли запрос внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(executorKey).(TxExecutor)
	return ok
}
