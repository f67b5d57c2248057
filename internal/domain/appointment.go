package domain

import (
	"time"

	"github.com/akaisui/car-repair-backend-sub000/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// Appointment represents a repair-shop appointment
type Appointment struct {
	ID   int64
	Code string // Читаемый код записи, формат LH<ГГММДД><3 цифры>

	CustomerID *int64 // nil для гостевых записей без аккаунта
	VehicleID  *int64 // nil, если автомобиль не привязан
	ServiceID  *int64 // nil, если услуга не выбрана при записи

	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала слота
	Status    AppointmentStatus

	Notes        *string
	ReminderSent bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Denormalized display data (joined by the repository)
	CustomerName           *string
	CustomerPhone          *string
	VehicleLicensePlate    *string
	ServiceName            *string
	ServiceDurationMinutes *int
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsActive returns true if the appointment occupies its time slot
// Отменённые записи слот не занимают
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// DurationMinutes returns the service duration for overlap testing
// Записи без привязанной услуги занимают слот по умолчанию
func (a *Appointment) DurationMinutes() int {
	if a.ServiceDurationMinutes == nil || *a.ServiceDurationMinutes <= 0 {
		return DefaultServiceDurationMinutes
	}
	return *a.ServiceDurationMinutes
}

// AppointmentFilter фильтр для поиска записей
type AppointmentFilter struct {
	CustomerID *int64             // Фильтр по клиенту (опционально)
	VehicleID  *int64             // Фильтр по автомобилю (опционально)
	ServiceID  *int64             // Фильтр по услуге (опционально)
	Status     *AppointmentStatus // Фильтр по статусу (опционально)
	DateFrom   *time.Time         // Начало периода (опционально)
	DateTo     *time.Time         // Конец периода (опционально)
	Search     *string            // Поиск по имени/телефону клиента, госномеру, услуге или коду записи
}

// AppointmentPage пагинация и сортировка для поиска записей
type AppointmentPage struct {
	Limit   uint64
	Offset  uint64
	OrderBy string // Пустое значение означает сортировку по умолчанию date DESC, start_time DESC
}

// AppointmentUpdate частичное обновление записи
// Только непустые поля попадают в UPDATE
type AppointmentUpdate struct {
	CustomerID *int64
	VehicleID  *int64
	ServiceID  *int64
	Date       *time.Time
	StartTime  *types.TimeString
	Status     *AppointmentStatus
	Notes      *string
}

// IsEmpty returns true if the update contains no fields
func (u *AppointmentUpdate) IsEmpty() bool {
	return u.CustomerID == nil &&
		u.VehicleID == nil &&
		u.ServiceID == nil &&
		u.Date == nil &&
		u.StartTime == nil &&
		u.Status == nil &&
		u.Notes == nil
}
