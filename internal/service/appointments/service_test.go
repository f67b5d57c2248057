package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	appointmentRepo "github.com/akaisui/car-repair-backend-sub000/internal/infra/storage/appointment"
	"github.com/akaisui/car-repair-backend-sub000/internal/integrations/notifyservice"
	"github.com/akaisui/car-repair-backend-sub000/internal/service/appointments/models"
	"github.com/akaisui/car-repair-backend-sub000/pkg/ptr"
)

type fakeRepo struct {
	appointments    []*domain.Appointment
	lastStatus      domain.AppointmentStatus
	lastNotes       *string
	reminderMarked  []int64
	reminderResults []*domain.Appointment
	reminderDate    time.Time
}

func (f *fakeRepo) byID(id int64) *domain.Appointment {
	for _, ap := range f.appointments {
		if ap.ID == id {
			return ap
		}
	}
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if ap := f.byID(id); ap != nil {
		return ap, nil
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeRepo) GetByCode(_ context.Context, code string) (*domain.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.Code == code {
			return ap, nil
		}
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeRepo) List(_ context.Context, _ domain.AppointmentFilter, _ domain.AppointmentPage) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeRepo) Count(_ context.Context, _ domain.AppointmentFilter) (int64, error) {
	return int64(len(f.appointments)), nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus, notes *string) (*domain.Appointment, error) {
	ap := f.byID(id)
	if ap == nil {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}

	f.lastStatus = status
	f.lastNotes = notes

	updated := *ap
	updated.Status = status
	if notes != nil {
		updated.Notes = notes
	}
	return &updated, nil
}

func (f *fakeRepo) ListForReminder(_ context.Context, date time.Time) ([]*domain.Appointment, error) {
	f.reminderDate = date
	return f.reminderResults, nil
}

func (f *fakeRepo) MarkReminderSent(_ context.Context, id int64) error {
	f.reminderMarked = append(f.reminderMarked, id)
	return nil
}

type fakeEvents struct {
	published []*notifyservice.AppointmentEvent
}

func (f *fakeEvents) PublishEventAsync(event *notifyservice.AppointmentEvent) {
	f.published = append(f.published, event)
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

var testNow = time.Date(2025, 10, 14, 10, 0, 0, 0, time.UTC)

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:        1,
		Code:      "LH251014001",
		Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		Status:    domain.StatusPending,
	}
}

func newTestService(repo *fakeRepo, events *fakeEvents) *Service {
	return NewService(repo, events, fixedTime{now: testNow}, nopLogger{})
}

func TestGetByID(t *testing.T) {
	svc := newTestService(&fakeRepo{appointments: []*domain.Appointment{testAppointment()}}, &fakeEvents{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "LH251014001", resp.Code)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByCode(t *testing.T) {
	svc := newTestService(&fakeRepo{appointments: []*domain.Appointment{testAppointment()}}, &fakeEvents{})

	resp, err := svc.GetByCode(context.Background(), "LH251014001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByCode(context.Background(), "LH000000000")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = svc.GetByCode(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearch(t *testing.T) {
	svc := newTestService(&fakeRepo{appointments: []*domain.Appointment{testAppointment()}}, &fakeEvents{})

	resp, err := svc.Search(context.Background(), &models.SearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Appointments, 1)

	_, err = svc.Search(context.Background(), &models.SearchRequest{Status: ptr.Ptr("unknown")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	ap := testAppointment()
	ap.Notes = ptr.Ptr("Замена масла")
	repo := &fakeRepo{appointments: []*domain.Appointment{ap}}
	svc := newTestService(repo, &fakeEvents{})

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelRequest{Reason: ptr.Ptr("машина продана")})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, repo.lastNotes)
	assert.Equal(t, "Замена масла\nПричина отмены: машина продана", *repo.lastNotes)
}

func TestCancel_WithoutReason(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{testAppointment()}}
	svc := newTestService(repo, &fakeEvents{})

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelRequest{})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Nil(t, repo.lastNotes)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeEvents{})

	_, err := svc.Cancel(context.Background(), 99, &models.CancelRequest{})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdateStatus(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{testAppointment()}}
	events := &fakeEvents{}
	svc := newTestService(repo, events)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "in_progress"})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", resp.Status)
	assert.Empty(t, events.published)

	_, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "unknown"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), 99, &models.UpdateStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdateStatus_ConfirmedPublishesEvent(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{testAppointment()}}
	events := &fakeEvents{}
	svc := newTestService(repo, events)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	require.Len(t, events.published, 1)
	assert.Equal(t, notifyservice.EventAppointmentConfirmed, events.published[0].Type)
}

func TestUpdateStatus_CancelledCanBeReactivated(t *testing.T) {
	ap := testAppointment()
	ap.Status = domain.StatusCancelled
	repo := &fakeRepo{appointments: []*domain.Appointment{ap}}
	svc := newTestService(repo, &fakeEvents{})

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
}

func TestRemindersDue(t *testing.T) {
	repo := &fakeRepo{reminderResults: []*domain.Appointment{testAppointment()}}
	svc := newTestService(repo, &fakeEvents{})

	resp, err := svc.RemindersDue(context.Background(), 24)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)

	// Целевая дата - текущее время плюс горизонт напоминания, усечённая до даты
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), repo.reminderDate)

	_, err = svc.RemindersDue(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkReminderSent(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{testAppointment()}}
	events := &fakeEvents{}
	svc := newTestService(repo, events)

	require.NoError(t, svc.MarkReminderSent(context.Background(), 1))
	assert.Equal(t, []int64{1}, repo.reminderMarked)

	require.Len(t, events.published, 1)
	assert.Equal(t, notifyservice.EventAppointmentReminder, events.published[0].Type)
}

func TestMarkReminderSent_Idempotent(t *testing.T) {
	ap := testAppointment()
	ap.ReminderSent = true
	repo := &fakeRepo{appointments: []*domain.Appointment{ap}}
	events := &fakeEvents{}
	svc := newTestService(repo, events)

	// Повторная пометка не трогает хранилище и не шлёт событие
	require.NoError(t, svc.MarkReminderSent(context.Background(), 1))
	assert.Empty(t, repo.reminderMarked)
	assert.Empty(t, events.published)
}

func TestMarkReminderSent_NotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeEvents{})

	err := svc.MarkReminderSent(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
