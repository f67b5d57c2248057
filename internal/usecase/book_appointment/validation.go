package book_appointment

import (
	"fmt"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time format: %v", ErrInvalidInput, err)
	}

	if req.Status != nil && !domain.IsValidStatus(domain.AppointmentStatus(*req.Status)) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, *req.Status)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// slotTaken проверяет, что начало слота попадает в занятый интервал
// [start, start + duration) одной из неотменённых записей
func slotTaken(slotStart types.TimeString, appointments []*domain.Appointment) bool {
	for _, ap := range appointments {
		if !ap.IsActive() {
			continue
		}

		apEnd, err := ap.StartTime.AddMinutes(ap.DurationMinutes())
		if err != nil {
			continue
		}

		if !slotStart.IsBefore(ap.StartTime) && slotStart.IsBefore(apEnd) {
			return true
		}
	}

	return false
}

// isSlotBoundary проверяет, что время совпадает с границей одного из слотов дня
func isSlotBoundary(t types.TimeString, slotStarts []types.TimeString) bool {
	for _, s := range slotStarts {
		if s == t {
			return true
		}
	}
	return false
}
