package reschedule_appointment

import (
	"context"
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// ListByDate получает неотменённые записи на дату, внутри транзакции - с блокировкой FOR UPDATE
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	UpdateByID(ctx context.Context, id int64, upd *domain.AppointmentUpdate) (*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
