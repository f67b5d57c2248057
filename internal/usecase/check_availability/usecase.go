package check_availability

import (
	"context"
	"fmt"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
)

// UseCase use case для проверки доступности слотов на дату
// Только чтение: дата здесь не валидируется, проверки рабочего дня
// и будущего времени принадлежат бронированию
type UseCase struct {
	appointmentRepo AppointmentRepository
	businessHours   domain.BusinessHours
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	businessHours domain.BusinessHours,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		businessHours:   businessHours,
		logger:          logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: date=%s, time=%v", req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Генерируем все слоты дня по расписанию работы
	slotStarts, err := uc.businessHours.DailySlots()
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to generate daily slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate daily slots: %v", ErrInternal, err)
	}

	// 3. Получаем неотменённые записи на дату с длительностями услуг
	appointments, err := uc.appointmentRepo.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 4. Размечаем занятость каждого слота
	slots := markAvailability(slotStarts, appointments)

	// 5. Если запрошено конкретное время - фильтруем до одного слота
	if req.Time != nil {
		slots = filterByTime(slots, *req.Time)
	}

	uc.logger.Info("CheckAvailability: date=%s, generated %d slots against %d appointments",
		req.Date.Format(domain.DateFormat), len(slots), len(appointments))

	return &Response{
		Date:  req.Date,
		Slots: slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Time != nil {
		if err := req.Time.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
