package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/internal/service/calendar/models"
)

// topServicesLimit количество услуг в топе статистики
const topServicesLimit = 10

// Service сервис календарных представлений и статистики
// Только чтение, агрегация выполняется поверх репозитория записей
type Service struct {
	appointmentRepo AppointmentRepository
	businessHours   domain.BusinessHours
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	appointmentRepo AppointmentRepository,
	businessHours domain.BusinessHours,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		businessHours:   businessHours,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetCalendarView строит календарное представление за период
// Каждый день периода присутствует в ответе, включая дни без записей.
// Счётчик доступных слотов приблизительный: длительности услуг не учитываются,
// из дневной ёмкости вычитается количество неотменённых записей
func (s *Service) GetCalendarView(ctx context.Context, req *models.CalendarViewRequest) (*models.CalendarViewResponse, error) {
	s.logger.Info("GetCalendarView: period=%s to %s",
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}

	start := truncateToDate(req.StartDate)
	end := truncateToDate(req.EndDate)

	if end.Before(start) {
		s.logger.Warn("GetCalendarView: end date %s is before start date %s",
			end.Format(domain.DateFormat), start.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidDateRange)
	}

	appointments, err := s.appointmentRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		s.logger.Error("GetCalendarView: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetCalendarView - repository error: %v", ErrInternal, err)
	}

	// Группируем записи по дате
	byDate := make(map[string][]*domain.Appointment)
	for _, ap := range appointments {
		key := ap.Date.Format(domain.DateFormat)
		byDate[key] = append(byDate[key], ap)
	}

	resp := &models.CalendarViewResponse{
		StartDate: start.Format(domain.DateFormat),
		EndDate:   end.Format(domain.DateFormat),
		Days:      make([]models.CalendarDayResponse, 0),
	}

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		dayAppointments := byDate[date.Format(domain.DateFormat)]
		day := s.buildCalendarDay(date, dayAppointments)
		resp.Days = append(resp.Days, models.FromDomainCalendarDay(day))
	}

	s.logger.Info("GetCalendarView: built %d days with %d appointments", len(resp.Days), len(appointments))
	return resp, nil
}

// GetStatistics возвращает сводную статистику по записям
// Период опционален и влияет только на общие счётчики и топ услуг,
// счётчики сегодня/неделя/месяц всегда считаются от текущей даты
func (s *Service) GetStatistics(ctx context.Context, req *models.StatisticsRequest) (*models.StatisticsResponse, error) {
	s.logger.Info("GetStatistics: from=%v, to=%v", req.DateFrom, req.DateTo)

	byStatus, err := s.appointmentRepo.CountGroupByStatus(ctx, req.DateFrom, req.DateTo)
	if err != nil {
		s.logger.Error("GetStatistics: failed to count by status: %v", err)
		return nil, fmt.Errorf("%w: GetStatistics - failed to count by status: %v", ErrInternal, err)
	}

	var total int64
	for _, count := range byStatus {
		total += count
	}

	topServices, err := s.appointmentRepo.CountGroupByService(ctx, req.DateFrom, req.DateTo, topServicesLimit)
	if err != nil {
		s.logger.Error("GetStatistics: failed to count by service: %v", err)
		return nil, fmt.Errorf("%w: GetStatistics - failed to count by service: %v", ErrInternal, err)
	}

	now := truncateToDate(s.timeProvider.Now())

	today, err := s.countInRange(ctx, now, now)
	if err != nil {
		return nil, err
	}

	// Неделя начинается с понедельника
	weekStart := now.AddDate(0, 0, -mondayOffset(now.Weekday()))
	thisWeek, err := s.countInRange(ctx, weekStart, weekStart.AddDate(0, 0, 6))
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	thisMonth, err := s.countInRange(ctx, monthStart, monthStart.AddDate(0, 1, -1))
	if err != nil {
		return nil, err
	}

	stats := &domain.Statistics{
		Total:       total,
		ByStatus:    byStatus,
		TopServices: topServices,
		Today:       today,
		ThisWeek:    thisWeek,
		ThisMonth:   thisMonth,
	}

	if total > 0 {
		stats.CompletionRate = float64(byStatus[domain.StatusCompleted]) / float64(total) * 100
	}

	s.logger.Info("GetStatistics: total=%d, completion rate=%.1f%%", total, stats.CompletionRate)
	return models.FromDomainStatistics(stats), nil
}

// buildCalendarDay собирает агрегат одного дня календаря
// Счётчик доступных слотов считается от дневной ёмкости для любого дня,
// включая нерабочие: занятость по расписанию проверяет бронирование
func (s *Service) buildCalendarDay(date time.Time, appointments []*domain.Appointment) *domain.CalendarDay {
	day := &domain.CalendarDay{
		Date:         date,
		Appointments: appointments,
		TotalCount:   len(appointments),
	}

	active := 0
	for _, ap := range appointments {
		if ap.IsActive() {
			active++
		}
	}

	available := s.businessHours.DailySlotCount() - active
	if available < 0 {
		available = 0
	}
	day.AvailableSlotCount = available

	return day
}

// countInRange возвращает количество записей за период дат включительно
func (s *Service) countInRange(ctx context.Context, from, to time.Time) (int64, error) {
	byStatus, err := s.appointmentRepo.CountGroupByStatus(ctx, &from, &to)
	if err != nil {
		s.logger.Error("GetStatistics: failed to count in range: %v", err)
		return 0, fmt.Errorf("%w: GetStatistics - failed to count in range: %v", ErrInternal, err)
	}

	var total int64
	for _, count := range byStatus {
		total += count
	}
	return total, nil
}

// truncateToDate отбрасывает время, оставляя только дату
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mondayOffset возвращает число дней от понедельника до дня недели
func mondayOffset(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}
