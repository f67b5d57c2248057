package book_appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/internal/integrations/notifyservice"
)

// UseCase use case для создания записи на обслуживание
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции,
// чтобы два конкурентных бронирования не заняли один слот
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	events          EventPublisher
	businessHours   domain.BusinessHours
	timeProvider    TimeProvider
	random          RandomSource
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	events EventPublisher,
	businessHours domain.BusinessHours,
	timeProvider TimeProvider,
	random RandomSource,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		events:          events,
		businessHours:   businessHours,
		timeProvider:    timeProvider,
		random:          random,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: date=%s, time=%s",
		req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	var created *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 2. Проверяем доступность слота: время должно совпадать с границей слота
		// и не попадать в занятый интервал существующей записи.
		// Проверка идёт первой: занятый слот в нерабочий день отвечает именно занятостью
		if err := uc.checkSlotAvailable(ctx, req); err != nil {
			return err
		}

		// 3. Дата должна приходиться на рабочий день
		if !uc.businessHours.IsWorkingDay(req.Date) {
			return fmt.Errorf("%w: %s", ErrNonWorkingDay, req.Date.Format(domain.DateFormat))
		}

		// 4. Дата и время должны быть в будущем
		if err := uc.checkInFuture(req); err != nil {
			return err
		}

		// 5. Генерируем уникальный код записи
		code, err := uc.generateCode(ctx, uc.timeProvider.Now())
		if err != nil {
			return err
		}

		// 6. Создаем запись
		ap := &domain.Appointment{
			Code:       code,
			CustomerID: req.CustomerID,
			VehicleID:  req.VehicleID,
			ServiceID:  req.ServiceID,
			Date:       req.Date,
			StartTime:  req.StartTime,
			Status:     domain.StatusPending,
			Notes:      req.Notes,
		}
		if req.Status != nil {
			ap.Status = domain.AppointmentStatus(*req.Status)
		}

		created, err = uc.appointmentRepo.Create(ctx, ap)
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("BookAppointment: transaction failed: %v", err)
		return nil, err
	}

	uc.logger.Info("BookAppointment: created appointment id=%d, code=%s", created.ID, created.Code)

	// 7. Публикуем событие о создании записи (вне транзакции, не блокирует ответ)
	uc.events.PublishEventAsync(notifyservice.NewAppointmentEvent(notifyservice.EventAppointmentCreated, created))

	return responseFromDomain(created), nil
}

// checkSlotAvailable проверяет доступность запрошенного слота
// Внутри транзакции записи дня читаются с блокировкой FOR UPDATE
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

	if slotTaken(req.StartTime, appointments) {
		return fmt.Errorf("%w: %s at %s", ErrSlotUnavailable, req.Date.Format(domain.DateFormat), req.StartTime)
	}

	return nil
}

// checkInFuture проверяет, что дата и время записи находятся в будущем
func (uc *UseCase) checkInFuture(req *Request) error {
	now := uc.timeProvider.Now()

	minutes, err := req.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	startAt := req.Date.Add(time.Duration(minutes) * time.Minute)
	if !startAt.After(now) {
		return fmt.Errorf("%w: %s %s", ErrPastDateTime, req.Date.Format(domain.DateFormat), req.StartTime)
	}

	return nil
}
