package book_appointment

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/internal/integrations/notifyservice"
	"github.com/akaisui/car-repair-backend-sub000/pkg/ptr"
)

type fakeRepo struct {
	appointments  []*domain.Appointment
	existingCodes map[string]bool
	created       *domain.Appointment
	codeChecks    int
}

func (f *fakeRepo) Create(_ context.Context, ap *domain.Appointment) (*domain.Appointment, error) {
	created := *ap
	created.ID = 42
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == id {
			return ap, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListByDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeRepo) CodeExists(_ context.Context, code string) (bool, error) {
	f.codeChecks++
	return f.existingCodes[code], nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

type fixedRand struct {
	values []int
	idx    int
}

func (f *fixedRand) Intn(_ int) int {
	v := f.values[f.idx%len(f.values)]
	f.idx++
	return v
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

// Среда, рабочий день
var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

// Сутки до записи
var testNow = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)

func newTestUseCase(t *testing.T, repo *fakeRepo, events *fakeEvents) *UseCase {
	t.Helper()

	if repo.existingCodes == nil {
		repo.existingCodes = map[string]bool{}
	}

	return NewUseCase(
		repo,
		fakeTxManager{},
		events,
		testBusinessHours(t),
		fixedTime{now: testNow},
		&fixedRand{values: []int{7}},
		nopLogger{},
	)
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeRepo{}
	events := &fakeEvents{}
	uc := newTestUseCase(t, repo, events)

	resp, err := uc.Execute(context.Background(), &Request{
		CustomerID: ptr.Ptr(int64(5)),
		Date:       testDate,
		StartTime:  "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Regexp(t, regexp.MustCompile(`^LH\d{6}\d{3}$`), resp.Code)
	// Дата в коде берётся из текущего дня, не из даты записи
	assert.Equal(t, "LH251014007", resp.Code)

	require.Len(t, events.published, 1)
	assert.Equal(t, notifyservice.EventAppointmentCreated, events.published[0].Type)
	assert.Equal(t, int64(42), events.published[0].AppointmentID)
}

func TestExecute_ExplicitStatus(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(t, repo, &fakeEvents{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		StartTime: "10:00",
		Status:    ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
}

func TestExecute_SlotTaken(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{{
		ID:        1,
		Date:      testDate,
		StartTime: "10:00",
		Status:    domain.StatusPending,
	}}}
	uc := newTestUseCase(t, repo, &fakeEvents{})

	_, err := uc.Execute(context.Background(), &Request{Date: testDate, StartTime: "10:00"})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_SlotInsideLongService(t *testing.T) {
	// Услуга на 60 минут с началом в 09:00 блокирует и слот 09:30
	repo := &fakeRepo{appointments: []*domain.Appointment{{
		ID:                     1,
		Date:                   testDate,
		StartTime:              "09:00",
		Status:                 domain.StatusConfirmed,
		ServiceDurationMinutes: ptr.Ptr(60),
	}}}
	uc := newTestUseCase(t, repo, &fakeEvents{})

	_, err := uc.Execute(context.Background(), &Request{Date: testDate, StartTime: "09:30"})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// Слот сразу после окончания услуги свободен
	_, err = uc.Execute(context.Background(), &Request{Date: testDate, StartTime: "10:00"})
	assert.NoError(t, err)
}

func TestExecute_OffBoundaryTime(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{}, &fakeEvents{})

	_, err := uc.Execute(context.Background(), &Request{Date: testDate, StartTime: "10:15"})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_NonWorkingDay(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{}, &fakeEvents{})

	sunday := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{Date: sunday, StartTime: "10:00"})
	assert.ErrorIs(t, err, ErrNonWorkingDay)
}

func TestExecute_PastDateTime(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{}, &fakeEvents{})

	yesterday := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{Date: yesterday, StartTime: "10:00"})
	assert.ErrorIs(t, err, ErrPastDateTime)
}

func TestExecute_InvalidStatus(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{}, &fakeEvents{})

	_, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		StartTime: "10:00",
		Status:    ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestExecute_CodeCollisionRetried(t *testing.T) {
	repo := &fakeRepo{existingCodes: map[string]bool{
		"LH251014001": true,
		"LH251014002": true,
	}}
	events := &fakeEvents{}

	uc := NewUseCase(
		repo,
		fakeTxManager{},
		events,
		testBusinessHours(t),
		fixedTime{now: testNow},
		&fixedRand{values: []int{1, 2, 3}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, StartTime: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, "LH251014003", resp.Code)
	assert.Equal(t, 3, repo.codeChecks)
}

func TestExecute_CodeGenerationExhausted(t *testing.T) {
	repo := &fakeRepo{existingCodes: map[string]bool{"LH251014007": true}}

	uc := newTestUseCase(t, repo, &fakeEvents{})

	_, err := uc.Execute(context.Background(), &Request{Date: testDate, StartTime: "10:00"})
	assert.ErrorIs(t, err, ErrCodeGenerationExhausted)
	assert.Equal(t, domain.MaxCodeGenerationAttempts, repo.codeChecks)
}
