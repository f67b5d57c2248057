package book_appointment

import (
	"context"
	"math/rand"
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/internal/integrations/notifyservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, ap *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// ListByDate получает неотменённые записи на дату, внутри транзакции - с блокировкой FOR UPDATE
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий записи
// Публикация не блокирует путь бронирования
type EventPublisher interface {
	PublishEventAsync(event *notifyservice.AppointmentEvent)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RandomSource интерфейс источника случайных чисел (для тестирования генерации кодов)
type RandomSource interface {
	Intn(n int) int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// MathRandSource источник случайных чисел для production
type MathRandSource struct{}

// Intn возвращает случайное число в [0, n)
func (s *MathRandSource) Intn(n int) int {
	return rand.Intn(n)
}
