package book_appointment

import (
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerID *int64
	VehicleID  *int64
	ServiceID  *int64
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала (например, "10:00")
	Status     *string          // Начальный статус (опционально, по умолчанию pending)
	Notes      *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID           int64
	Code         string
	CustomerID   *int64
	VehicleID    *int64
	ServiceID    *int64
	Date         time.Time
	StartTime    types.TimeString
	Status       domain.AppointmentStatus
	Notes        *string
	ReminderSent bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// responseFromDomain конвертирует доменную модель записи в модель ответа
func responseFromDomain(ap *domain.Appointment) *Response {
	return &Response{
		ID:           ap.ID,
		Code:         ap.Code,
		CustomerID:   ap.CustomerID,
		VehicleID:    ap.VehicleID,
		ServiceID:    ap.ServiceID,
		Date:         ap.Date,
		StartTime:    ap.StartTime,
		Status:       ap.Status,
		Notes:        ap.Notes,
		ReminderSent: ap.ReminderSent,
		CreatedAt:    ap.CreatedAt,
		UpdatedAt:    ap.UpdatedAt,
	}
}
