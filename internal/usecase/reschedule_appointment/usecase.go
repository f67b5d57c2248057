package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	appointmentstorage "github.com/akaisui/car-repair-backend-sub000/internal/infra/storage/appointment"
	"github.com/akaisui/car-repair-backend-sub000/pkg/ptr"
	"github.com/akaisui/car-repair-backend-sub000/pkg/types"
)

// UseCase use case для переноса записи на другой слот
// Проверяется только доступность нового слота, рабочий день и прошедшее
// время не перепроверяются. Перенос подтверждает запись: статус
// становится confirmed независимо от прежнего
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	businessHours   domain.BusinessHours
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	businessHours domain.BusinessHours,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		businessHours:   businessHours,
		logger:          logger,
	}
}

// Execute выполняет use case переноса записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%d, date=%s, time=%s",
		req.AppointmentID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	var updated *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 2. Запись должна существовать
		current, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentstorage.ErrAppointmentNotFound) {
				return fmt.Errorf("%w: id=%d", ErrAppointmentNotFound, req.AppointmentID)
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		// 3. Новый слот должен быть доступен, сама переносимая запись
		// свой прежний слот не блокирует
		if err := uc.checkSlotAvailable(ctx, req); err != nil {
			return err
		}

		// 4. Переносим и подтверждаем запись
		upd := &domain.AppointmentUpdate{
			Date:      &req.Date,
			StartTime: &req.StartTime,
			Status:    ptr.Ptr(domain.StatusConfirmed),
		}
		if req.Reason != nil {
			upd.Notes = ptr.Ptr(appendReason(current.Notes, *req.Reason))
		}

		updated, err = uc.appointmentRepo.UpdateByID(ctx, req.AppointmentID, upd)
		if err != nil {
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("RescheduleAppointment: transaction failed: %v", err)
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%d moved to %s %s",
		updated.ID, updated.Date.Format(domain.DateFormat), updated.StartTime)

	return responseFromDomain(updated), nil
}

// checkSlotAvailable проверяет доступность нового слота, исключая саму запись
func (uc *UseCase) checkSlotAvailable(ctx context.Context, req *Request) error {
	slotStarts, err := uc.businessHours.DailySlots()
	if err != nil {
		return fmt.Errorf("%w: failed to generate daily slots: %v", ErrInternal, err)
	}

	if !isSlotBoundary(req.StartTime, slotStarts) {
		return fmt.Errorf("%w: %s is not a slot boundary", ErrSlotUnavailable, req.StartTime)
	}

	appointments, err := uc.appointmentRepo.ListByDate(ctx, req.Date)
	if err != nil {
		return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	for _, ap := range appointments {
		if ap.ID == req.AppointmentID || !ap.IsActive() {
			continue
		}

		apEnd, err := ap.StartTime.AddMinutes(ap.DurationMinutes())
		if err != nil {
			continue
		}

		if !req.StartTime.IsBefore(ap.StartTime) && req.StartTime.IsBefore(apEnd) {
			return fmt.Errorf("%w: %s at %s", ErrSlotUnavailable, req.Date.Format(domain.DateFormat), req.StartTime)
		}
	}

	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointment id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time format: %v", ErrInvalidInput, err)
	}

	return nil
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

// appendReason дописывает причину переноса к существующим заметкам
func appendReason(notes *string, reason string) string {
	line := "Причина переноса: " + reason
	if notes == nil || *notes == "" {
		return line
	}
	return *notes + "\n" + line
}
