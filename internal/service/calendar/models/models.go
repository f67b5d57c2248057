package models

import (
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	apmodels "github.com/akaisui/car-repair-backend-sub000/internal/service/appointments/models"
)

// Request модели

// CalendarViewRequest запрос календарного представления за период
type CalendarViewRequest struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// StatisticsRequest запрос сводной статистики
// Период опционален, по умолчанию статистика считается по всем записям
type StatisticsRequest struct {
	DateFrom *time.Time `json:"dateFrom,omitempty"`
	DateTo   *time.Time `json:"dateTo,omitempty"`
}

// Response модели

// CalendarDayResponse один день календаря с записями и счётчиками
type CalendarDayResponse struct {
	Date               string                         `json:"date"` // "2025-10-15"
	Appointments       []apmodels.AppointmentResponse `json:"appointments"`
	TotalCount         int                            `json:"totalCount"`
	AvailableSlotCount int                            `json:"availableSlotCount"`
}

// CalendarViewResponse календарное представление за период
type CalendarViewResponse struct {
	StartDate string                `json:"startDate"`
	EndDate   string                `json:"endDate"`
	Days      []CalendarDayResponse `json:"days"`
}

// ServiceCountResponse количество записей по услуге
type ServiceCountResponse struct {
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Count       int64  `json:"count"`
}

// StatisticsResponse сводная статистика по записям
type StatisticsResponse struct {
	Total          int64                  `json:"total"`
	ByStatus       map[string]int64       `json:"byStatus"`
	TopServices    []ServiceCountResponse `json:"topServices"`
	Today          int64                  `json:"today"`
	ThisWeek       int64                  `json:"thisWeek"`
	ThisMonth      int64                  `json:"thisMonth"`
	CompletionRate float64                `json:"completionRate"`
}

// Методы конвертации

// FromDomainCalendarDay конвертирует доменный день календаря в DTO
func FromDomainCalendarDay(day *domain.CalendarDay) CalendarDayResponse {
	resp := CalendarDayResponse{
		Date:               day.Date.Format(domain.DateFormat),
		Appointments:       make([]apmodels.AppointmentResponse, 0, len(day.Appointments)),
		TotalCount:         day.TotalCount,
		AvailableSlotCount: day.AvailableSlotCount,
	}

	for _, ap := range day.Appointments {
		if apResp := apmodels.FromDomainAppointment(ap); apResp != nil {
			resp.Appointments = append(resp.Appointments, *apResp)
		}
	}

	return resp
}

// FromDomainStatistics конвертирует доменную статистику в DTO
func FromDomainStatistics(stats *domain.Statistics) *StatisticsResponse {
	resp := &StatisticsResponse{
		Total:          stats.Total,
		ByStatus:       make(map[string]int64, len(stats.ByStatus)),
		TopServices:    make([]ServiceCountResponse, 0, len(stats.TopServices)),
		Today:          stats.Today,
		ThisWeek:       stats.ThisWeek,
		ThisMonth:      stats.ThisMonth,
		CompletionRate: stats.CompletionRate,
	}

	for status, count := range stats.ByStatus {
		resp.ByStatus[string(status)] = count
	}

	for _, sc := range stats.TopServices {
		resp.TopServices = append(resp.TopServices, ServiceCountResponse{
			ServiceID:   sc.ServiceID,
			ServiceName: sc.ServiceName,
			Count:       sc.Count,
		})
	}

	return resp
}
