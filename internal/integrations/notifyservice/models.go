package notifyservice

import (
	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
)

// Event types
const (
	EventAppointmentCreated   = "appointment.created"
	EventAppointmentConfirmed = "appointment.confirmed"
	EventAppointmentReminder  = "appointment.reminder"
)

// AppointmentEvent событие записи для сервиса уведомлений
type AppointmentEvent struct {
	Type            string  `json:"type"`
	AppointmentID   int64   `json:"appointmentId"`
	AppointmentCode string  `json:"appointmentCode"`
	CustomerID      *int64  `json:"customerId,omitempty"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	ServiceName     *string `json:"serviceName,omitempty"`
}

// NewAppointmentEvent создает событие указанного типа из доменной записи
func NewAppointmentEvent(eventType string, ap *domain.Appointment) *AppointmentEvent {
	return &AppointmentEvent{
		Type:            eventType,
		AppointmentID:   ap.ID,
		AppointmentCode: ap.Code,
		CustomerID:      ap.CustomerID,
		Date:            ap.Date.Format(domain.DateFormat),
		StartTime:       ap.StartTime.String(),
		ServiceName:     ap.ServiceName,
	}
}
