package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/internal/service/calendar/models"
)

type fakeRepo struct {
	appointments []*domain.Appointment
	byStatus     map[domain.AppointmentStatus]int64
	rangeCalls   []time.Time
	topServices  []domain.ServiceCount
}

func (f *fakeRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, ap := range f.appointments {
		if !ap.Date.Before(from) && !ap.Date.After(to) {
			result = append(result, ap)
		}
	}
	return result, nil
}

func (f *fakeRepo) CountGroupByStatus(_ context.Context, from, _ *time.Time) (map[domain.AppointmentStatus]int64, error) {
	if from != nil {
		f.rangeCalls = append(f.rangeCalls, *from)
	}
	return f.byStatus, nil
}

func (f *fakeRepo) CountGroupByService(_ context.Context, _, _ *time.Time, _ uint64) ([]domain.ServiceCount, error) {
	return f.topServices, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBusinessHours(t *testing.T) domain.BusinessHours {
	t.Helper()

	// 18 слотов в рабочем дне, воскресенье выходной
	hours, err := domain.NewBusinessHours("08:00", "18:00", "12:00", "13:00", 30, []int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	return hours
}

// Среда
var testNow = time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, repo *fakeRepo) *Service {
	t.Helper()
	return NewService(repo, testBusinessHours(t), fixedTime{now: testNow}, nopLogger{})
}

func day(dayOfMonth int) time.Time {
	return time.Date(2025, 10, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func TestGetCalendarView(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{
		{ID: 1, Date: day(15), StartTime: "09:00", Status: domain.StatusConfirmed},
		{ID: 2, Date: day(15), StartTime: "10:00", Status: domain.StatusCancelled},
	}}
	svc := newTestService(t, repo)

	resp, err := svc.GetCalendarView(context.Background(), &models.CalendarViewRequest{
		StartDate: day(14),
		EndDate:   day(16),
	})
	require.NoError(t, err)

	// Каждый день периода присутствует, включая пустые
	require.Len(t, resp.Days, 3)
	assert.Equal(t, "2025-10-14", resp.Days[0].Date)
	assert.Equal(t, "2025-10-15", resp.Days[1].Date)
	assert.Equal(t, "2025-10-16", resp.Days[2].Date)

	// Пустой рабочий день: вся дневная ёмкость свободна
	assert.Equal(t, 0, resp.Days[0].TotalCount)
	assert.Equal(t, 18, resp.Days[0].AvailableSlotCount)

	// Отменённая запись видна в календаре, но слот не занимает
	assert.Equal(t, 2, resp.Days[1].TotalCount)
	assert.Len(t, resp.Days[1].Appointments, 2)
	assert.Equal(t, 17, resp.Days[1].AvailableSlotCount)
}

func TestGetCalendarView_NonWorkingDayKeepsCapacity(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})

	// Суббота - воскресенье - понедельник, пустой период:
	// счётчик слотов не зависит от рабочих дней расписания
	resp, err := svc.GetCalendarView(context.Background(), &models.CalendarViewRequest{
		StartDate: day(18),
		EndDate:   day(20),
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 3)
	for _, d := range resp.Days {
		assert.Equal(t, 18, d.AvailableSlotCount)
	}
}

func TestGetCalendarView_SingleDay(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})

	resp, err := svc.GetCalendarView(context.Background(), &models.CalendarViewRequest{
		StartDate: day(15),
		EndDate:   day(15),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Days, 1)
}

func TestGetCalendarView_InvalidRange(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})

	_, err := svc.GetCalendarView(context.Background(), &models.CalendarViewRequest{
		StartDate: day(16),
		EndDate:   day(14),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.GetCalendarView(context.Background(), &models.CalendarViewRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetStatistics(t *testing.T) {
	repo := &fakeRepo{
		byStatus: map[domain.AppointmentStatus]int64{
			domain.StatusCompleted: 5,
			domain.StatusPending:   3,
			domain.StatusCancelled: 2,
		},
		topServices: []domain.ServiceCount{
			{ServiceID: 1, ServiceName: "Замена масла", Count: 4},
			{ServiceID: 2, ServiceName: "Шиномонтаж", Count: 3},
		},
	}
	svc := newTestService(t, repo)

	resp, err := svc.GetStatistics(context.Background(), &models.StatisticsRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.Total)
	assert.Equal(t, int64(5), resp.ByStatus["completed"])
	assert.InDelta(t, 50.0, resp.CompletionRate, 0.001)

	require.Len(t, resp.TopServices, 2)
	assert.Equal(t, "Замена масла", resp.TopServices[0].ServiceName)

	// Сегодня, начало недели (понедельник) и начало месяца
	require.Len(t, repo.rangeCalls, 3)
	assert.Equal(t, day(15), repo.rangeCalls[0])
	assert.Equal(t, day(13), repo.rangeCalls[1])
	assert.Equal(t, day(1), repo.rangeCalls[2])
}

func TestGetStatistics_EmptyHasZeroCompletionRate(t *testing.T) {
	svc := newTestService(t, &fakeRepo{byStatus: map[domain.AppointmentStatus]int64{}})

	resp, err := svc.GetStatistics(context.Background(), &models.StatisticsRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(0), resp.Total)
	assert.Zero(t, resp.CompletionRate)
}
