package reschedule_appointment

import (
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64
	Date          time.Time        // Новая дата записи
	StartTime     types.TimeString // Новое время начала
	Reason        *string          // Причина переноса (опционально, дописывается в заметки)
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID        int64
	Code      string
	Date      time.Time
	StartTime types.TimeString
	Status    domain.AppointmentStatus
	Notes     *string
	UpdatedAt time.Time
}

// responseFromDomain конвертирует доменную модель записи в модель ответа
func responseFromDomain(ap *domain.Appointment) *Response {
	return &Response{
		ID:        ap.ID,
		Code:      ap.Code,
		Date:      ap.Date,
		StartTime: ap.StartTime,
		Status:    ap.Status,
		Notes:     ap.Notes,
		UpdatedAt: ap.UpdatedAt,
	}
}
