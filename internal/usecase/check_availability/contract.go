package check_availability

import (
	"context"
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListByDate получает неотменённые записи на дату вместе с длительностями услуг
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
