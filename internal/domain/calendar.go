package domain

import "time"

// CalendarDay агрегированное представление одного дня календаря
// Производное значение, никогда не сохраняется
type CalendarDay struct {
	Date               time.Time
	Appointments       []*Appointment
	TotalCount         int
	AvailableSlotCount int
}

// ServiceCount количество записей по услуге
type ServiceCount struct {
	ServiceID   int64
	ServiceName string
	Count       int64
}

// Statistics сводная статистика по записям
type Statistics struct {
	Total          int64
	ByStatus       map[AppointmentStatus]int64
	TopServices    []ServiceCount
	Today          int64
	ThisWeek       int64
	ThisMonth      int64
	CompletionRate float64 // completed / total * 100
}
