package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/pkg/ptr"
	"github.com/akaisui/car-repair-backend-sub000/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) ListByDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return f.appointments, f.err
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

func testDate() time.Time {
	// Среда
	return time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
}

func appointment(start string, durationMinutes int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:                     1,
		Date:                   testDate(),
		StartTime:              types.TimeString(start),
		Status:                 status,
		ServiceDurationMinutes: ptr.Ptr(durationMinutes),
	}
}

func slotsByTime(slots []domain.TimeSlot) map[types.TimeString]bool {
	result := make(map[types.TimeString]bool, len(slots))
	for _, s := range slots {
		result[s.StartTime] = s.Available
	}
	return result
}

func TestExecute_AllSlotsFree(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, testBusinessHours(t), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate()})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 18)

	for _, slot := range resp.Slots {
		assert.True(t, slot.Available, "slot %s should be free", slot.StartTime)
	}
}

func TestExecute_LongServiceBlocksFollowingSlot(t *testing.T) {
	// Услуга на 60 минут с началом в 09:00 занимает слоты 09:00 и 09:30
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		appointment("09:00", 60, domain.StatusConfirmed),
	}}
	uc := NewUseCase(repo, testBusinessHours(t), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate()})
	require.NoError(t, err)

	availability := slotsByTime(resp.Slots)
	assert.True(t, availability["08:30"], "slot before the appointment stays free")
	assert.False(t, availability["09:00"])
	assert.False(t, availability["09:30"])
	assert.True(t, availability["10:00"], "slot at the appointment end stays free")
}

func TestExecute_DefaultDurationWithoutService(t *testing.T) {
	// Запись без услуги занимает один слот по умолчанию
	ap := appointment("10:00", 0, domain.StatusPending)
	ap.ServiceDurationMinutes = nil

	uc := NewUseCase(&fakeAppointmentRepo{appointments: []*domain.Appointment{ap}}, testBusinessHours(t), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate()})
	require.NoError(t, err)

	availability := slotsByTime(resp.Slots)
	assert.False(t, availability["10:00"])
	assert.True(t, availability["10:30"])
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		appointment("09:00", 60, domain.StatusCancelled),
	}}
	uc := NewUseCase(repo, testBusinessHours(t), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate()})
	require.NoError(t, err)

	availability := slotsByTime(resp.Slots)
	assert.True(t, availability["09:00"])
	assert.True(t, availability["09:30"])
}

func TestExecute_TimeFilter(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		appointment("09:00", 30, domain.StatusPending),
	}}
	uc := NewUseCase(repo, testBusinessHours(t), nopLogger{})

	requested := types.TimeString("09:00")
	resp, err := uc.Execute(context.Background(), &Request{Date: testDate(), Time: &requested})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, requested, resp.Slots[0].StartTime)
	assert.False(t, resp.Slots[0].Available)
}

func TestExecute_TimeFilterOffBoundary(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, testBusinessHours(t), nopLogger{})

	// 09:15 не является границей слота
	requested := types.TimeString("09:15")
	resp, err := uc.Execute(context.Background(), &Request{Date: testDate(), Time: &requested})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, testBusinessHours(t), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := types.TimeString("9am")
	_, err = uc.Execute(context.Background(), &Request{Date: testDate(), Time: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
