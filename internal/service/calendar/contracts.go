package calendar

import (
	"context"
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListByDateRange получает записи за период, включая отменённые
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
	CountGroupByStatus(ctx context.Context, from, to *time.Time) (map[domain.AppointmentStatus]int64, error)
	CountGroupByService(ctx context.Context, from, to *time.Time, limit uint64) ([]domain.ServiceCount, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
