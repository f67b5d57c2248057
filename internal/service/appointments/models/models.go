package models

import (
	"errors"
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// SearchRequest запрос на поиск записей с фильтрацией и пагинацией
type SearchRequest struct {
	CustomerID *int64     `json:"customerId,omitempty"`
	VehicleID  *int64     `json:"vehicleId,omitempty"`
	ServiceID  *int64     `json:"serviceId,omitempty"`
	Status     *string    `json:"status,omitempty"`
	DateFrom   *time.Time `json:"dateFrom,omitempty"`
	DateTo     *time.Time `json:"dateTo,omitempty"`
	Search     *string    `json:"search,omitempty"` // Поиск по имени, телефону, госномеру, услуге и коду
	Limit      *uint64    `json:"limit,omitempty"`
	Offset     *uint64    `json:"offset,omitempty"`
	OrderBy    *string    `json:"orderBy,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *SearchRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		CustomerID: r.CustomerID,
		VehicleID:  r.VehicleID,
		ServiceID:  r.ServiceID,
		DateFrom:   r.DateFrom,
		DateTo:     r.DateTo,
		Search:     r.Search,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainPage конвертирует параметры пагинации в domain модель
func (r *SearchRequest) ToDomainPage() domain.AppointmentPage {
	page := domain.AppointmentPage{
		Limit: domain.DefaultSearchLimit,
	}

	if r.Limit != nil {
		page.Limit = *r.Limit
	}
	if r.Offset != nil {
		page.Offset = *r.Offset
	}
	if r.OrderBy != nil {
		page.OrderBy = *r.OrderBy
	}

	return page
}

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID           int64   `json:"id"`
	Code         string  `json:"code"`
	CustomerID   *int64  `json:"customerId,omitempty"`
	VehicleID    *int64  `json:"vehicleId,omitempty"`
	ServiceID    *int64  `json:"serviceId,omitempty"`
	Date         string  `json:"appointmentDate"` // "2025-10-15"
	StartTime    string  `json:"startTime"`       // "10:00"
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
	ReminderSent bool    `json:"reminderSent"`

	// Денормализованные данные
	CustomerName           *string `json:"customerName,omitempty"`
	CustomerPhone          *string `json:"customerPhone,omitempty"`
	VehicleLicensePlate    *string `json:"licensePlate,omitempty"`
	ServiceName            *string `json:"serviceName,omitempty"`
	ServiceDurationMinutes *int    `json:"serviceDurationMinutes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей и общим количеством
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(ap *domain.Appointment) *AppointmentResponse {
	if ap == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:                     ap.ID,
		Code:                   ap.Code,
		CustomerID:             ap.CustomerID,
		VehicleID:              ap.VehicleID,
		ServiceID:              ap.ServiceID,
		Date:                   ap.Date.Format(domain.DateFormat),
		StartTime:              ap.StartTime.String(),
		Status:                 string(ap.Status),
		Notes:                  ap.Notes,
		ReminderSent:           ap.ReminderSent,
		CustomerName:           ap.CustomerName,
		CustomerPhone:          ap.CustomerPhone,
		VehicleLicensePlate:    ap.VehicleLicensePlate,
		ServiceName:            ap.ServiceName,
		ServiceDurationMinutes: ap.ServiceDurationMinutes,
		CreatedAt:              ap.CreatedAt,
		UpdatedAt:              ap.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment, total int64) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
		Total:        total,
	}

	for _, ap := range appointments {
		if apResp := FromDomainAppointment(ap); apResp != nil {
			resp.Appointments = append(resp.Appointments, *apResp)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}

	return s, nil
}
