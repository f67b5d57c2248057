package create_appointment

import (
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	bookAppointment "github.com/akaisui/car-repair-backend-sub000/internal/usecase/book_appointment"
	"github.com/akaisui/car-repair-backend-sub000/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	CustomerID      *int64  `json:"customerId,omitempty"`
	VehicleID       *int64  `json:"vehicleId,omitempty"`
	ServiceID       *int64  `json:"serviceId,omitempty"`
	AppointmentDate string  `json:"appointmentDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`       // "10:00"
	Status          *string `json:"status,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	Code            string  `json:"code"`
	CustomerID      *int64  `json:"customerId,omitempty"`
	VehicleID       *int64  `json:"vehicleId,omitempty"`
	ServiceID       *int64  `json:"serviceId,omitempty"`
	AppointmentDate string  `json:"appointmentDate"`
	StartTime       string  `json:"startTime"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	ReminderSent    bool    `json:"reminderSent"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*bookAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		CustomerID: r.CustomerID,
		VehicleID:  r.VehicleID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
		Status:     r.Status,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		Code:            resp.Code,
		CustomerID:      resp.CustomerID,
		VehicleID:       resp.VehicleID,
		ServiceID:       resp.ServiceID,
		AppointmentDate: resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		Status:          string(resp.Status),
		Notes:           resp.Notes,
		ReminderSent:    resp.ReminderSent,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
