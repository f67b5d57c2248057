package appointments

import (
	"context"
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/internal/integrations/notifyservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByCode(ctx context.Context, code string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter, page domain.AppointmentPage) ([]*domain.Appointment, error)
	Count(ctx context.Context, filter domain.AppointmentFilter) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, notes *string) (*domain.Appointment, error)
	ListForReminder(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	MarkReminderSent(ctx context.Context, id int64) error
}

// EventPublisher интерфейс публикации событий записи
type EventPublisher interface {
	PublishEventAsync(event *notifyservice.AppointmentEvent)
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
