package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	appointmentstorage "github.com/akaisui/car-repair-backend-sub000/internal/infra/storage/appointment"
	"github.com/akaisui/car-repair-backend-sub000/pkg/ptr"
)

type fakeRepo struct {
	appointments []*domain.Appointment
	lastUpdate   *domain.AppointmentUpdate
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == id {
			return ap, nil
		}
	}
	return nil, appointmentstorage.ErrAppointmentNotFound
}

func (f *fakeRepo) ListByDate(_ context.Context, date time.Time) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, ap := range f.appointments {
		if ap.Date.Equal(date) {
			result = append(result, ap)
		}
	}
	return result, nil
}

func (f *fakeRepo) UpdateByID(_ context.Context, id int64, upd *domain.AppointmentUpdate) (*domain.Appointment, error) {
	f.lastUpdate = upd

	for _, ap := range f.appointments {
		if ap.ID == id {
			updated := *ap
			if upd.Date != nil {
				updated.Date = *upd.Date
			}
			if upd.StartTime != nil {
				updated.StartTime = *upd.StartTime
			}
			if upd.Status != nil {
				updated.Status = *upd.Status
			}
			if upd.Notes != nil {
				updated.Notes = upd.Notes
			}
			updated.UpdatedAt = time.Now()
			return &updated, nil
		}
	}
	return nil, appointmentstorage.ErrAppointmentNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBusinessHours(t *testing.T) domain.BusinessHours {
	t.Helper()

	hours, err := domain.NewBusinessHours("08:00", "18:00", "12:00", "13:00", 30, []int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	return hours
}

var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func newTestUseCase(t *testing.T, repo *fakeRepo) *UseCase {
	t.Helper()
	return NewUseCase(repo, fakeTxManager{}, testBusinessHours(t), nopLogger{})
}

func TestExecute_MovesAndConfirms(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{{
		ID:        1,
		Date:      testDate,
		StartTime: "09:00",
		Status:    domain.StatusPending,
	}}}
	uc := newTestUseCase(t, repo)

	newDate := testDate.AddDate(0, 0, 1)
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		Date:          newDate,
		StartTime:     "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, newDate, resp.Date)
	assert.Equal(t, "14:00", resp.StartTime.String())
	// Перенос подтверждает запись независимо от прежнего статуса
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
}

func TestExecute_OwnSlotDoesNotBlock(t *testing.T) {
	// Перенос на свой же слот разрешён, запись себя не блокирует
	repo := &fakeRepo{appointments: []*domain.Appointment{{
		ID:        1,
		Date:      testDate,
		StartTime: "09:00",
		Status:    domain.StatusConfirmed,
	}}}
	uc := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		Date:          testDate,
		StartTime:     "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
}

func TestExecute_TargetSlotTaken(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{
		{ID: 1, Date: testDate, StartTime: "09:00", Status: domain.StatusPending},
		{ID: 2, Date: testDate, StartTime: "14:00", Status: domain.StatusConfirmed},
	}}
	uc := newTestUseCase(t, repo)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		Date:          testDate,
		StartTime:     "14:00",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{
		{ID: 1, Date: testDate, StartTime: "09:00", Status: domain.StatusPending},
		{ID: 2, Date: testDate, StartTime: "14:00", Status: domain.StatusCancelled},
	}}
	uc := newTestUseCase(t, repo)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		Date:          testDate,
		StartTime:     "14:00",
	})
	assert.NoError(t, err)
}

func TestExecute_ReasonAppendedToNotes(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{{
		ID:        1,
		Date:      testDate,
		StartTime: "09:00",
		Status:    domain.StatusPending,
		Notes:     ptr.Ptr("Стук в подвеске"),
	}}}
	uc := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		Date:          testDate,
		StartTime:     "14:00",
		Reason:        ptr.Ptr("клиент попросил позже"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Notes)
	assert.Equal(t, "Стук в подвеске\nПричина переноса: клиент попросил позже", *resp.Notes)
}

func TestExecute_NotFound(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 99,
		Date:          testDate,
		StartTime:     "14:00",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_OffBoundaryTime(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{{
		ID:        1,
		Date:      testDate,
		StartTime: "09:00",
		Status:    domain.StatusPending,
	}}}
	uc := newTestUseCase(t, repo)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		Date:          testDate,
		StartTime:     "14:10",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 0, Date: testDate, StartTime: "14:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{AppointmentID: 1, StartTime: "14:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{AppointmentID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
