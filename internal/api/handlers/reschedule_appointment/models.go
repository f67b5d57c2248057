package reschedule_appointment

import (
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	rescheduleAppointment "github.com/akaisui/car-repair-backend-sub000/internal/usecase/reschedule_appointment"
	"github.com/akaisui/car-repair-backend-sub000/pkg/types"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	AppointmentDate string  `json:"appointmentDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`       // "10:00"
	Reason          *string `json:"reason,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	Code            string  `json:"code"`
	AppointmentDate string  `json:"appointmentDate"`
	StartTime       string  `json:"startTime"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		Date:          date,
		StartTime:     startTime,
		Reason:        r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		Code:            resp.Code,
		AppointmentDate: resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		Status:          string(resp.Status),
		Notes:           resp.Notes,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
