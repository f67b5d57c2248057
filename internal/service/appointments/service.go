package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	appointmentRepo "github.com/akaisui/car-repair-backend-sub000/internal/infra/storage/appointment"
	"github.com/akaisui/car-repair-backend-sub000/internal/integrations/notifyservice"
	"github.com/akaisui/car-repair-backend-sub000/internal/service/appointments/models"
)

// Service сервис для работы с записями на обслуживание
type Service struct {
	appointmentRepo AppointmentRepository
	events          EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	events EventPublisher,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		events:          events,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetByCode получает запись по публичному коду
func (s *Service) GetByCode(ctx context.Context, code string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByCode: fetching appointment code=%s", code)

	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	appointment, err := s.appointmentRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByCode: appointment code=%s not found", code)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// Search ищет записи с фильтрацией, текстовым поиском и пагинацией
// Текстовый поиск идёт по имени и телефону клиента, госномеру, названию услуги и коду записи
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("Search: fetching appointments, status=%v, search=%v", req.Status, req.Search)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("Search: invalid status=%v", req.Status)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	page := req.ToDomainPage()

	appointments, err := s.appointmentRepo.List(ctx, filter, page)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrInvalidOrderBy) {
			s.logger.Warn("Search: invalid order by=%s", page.OrderBy)
			return nil, fmt.Errorf("%w: invalid order by", ErrInvalidInput)
		}
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	total, err := s.appointmentRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Search: count error: %v", err)
		return nil, fmt.Errorf("%w: Search - count error: %v", ErrInternal, err)
	}

	s.logger.Info("Search: successfully fetched %d of %d appointments", len(appointments), total)
	return models.FromDomainAppointmentList(appointments, total), nil
}

// Cancel отменяет запись
// Отмена возможна из любого статуса, причина дописывается в заметки
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	var notes *string
	if req != nil && req.Reason != nil && *req.Reason != "" {
		appended := appendCancelReason(appointment.Notes, *req.Reason)
		notes = &appended
	}

	updated, err := s.appointmentRepo.UpdateStatus(ctx, id, domain.StatusCancelled, notes)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return models.FromDomainAppointment(updated), nil
}

// UpdateStatus обновляет статус записи
// Переход разрешён из любого статуса в любой, включая возврат из cancelled
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s", id, req.Status)

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	updated, err := s.appointmentRepo.UpdateStatus(ctx, id, newStatus, req.Notes)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Подтверждение записи уведомляет клиента
	if newStatus == domain.StatusConfirmed {
		s.events.PublishEventAsync(notifyservice.NewAppointmentEvent(notifyservice.EventAppointmentConfirmed, updated))
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", id, newStatus)
	return models.FromDomainAppointment(updated), nil
}

// RemindersDue возвращает записи, для которых пора отправить напоминание
// Берутся pending и confirmed записи на дату, наступающую через hoursAhead часов,
// по которым напоминание ещё не отправлялось
func (s *Service) RemindersDue(ctx context.Context, hoursAhead int) (*models.AppointmentListResponse, error) {
	s.logger.Info("RemindersDue: fetching appointments due in %d hours", hoursAhead)

	if hoursAhead <= 0 {
		return nil, fmt.Errorf("%w: hours ahead must be positive", ErrInvalidInput)
	}

	// Колонка даты сравнивается на равенство, время суток отбрасывается
	target := s.timeProvider.Now().Add(time.Duration(hoursAhead) * time.Hour)
	targetDate := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, target.Location())

	appointments, err := s.appointmentRepo.ListForReminder(ctx, targetDate)
	if err != nil {
		s.logger.Error("RemindersDue: repository error: %v", err)
		return nil, fmt.Errorf("%w: RemindersDue - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemindersDue: %d appointments due for reminder", len(appointments))
	return models.FromDomainAppointmentList(appointments, int64(len(appointments))), nil
}

// MarkReminderSent помечает запись как уведомлённую и публикует событие напоминания
// Повторный вызов для уже помеченной записи не является ошибкой
func (s *Service) MarkReminderSent(ctx context.Context, id int64) error {
	s.logger.Info("MarkReminderSent: marking appointment id=%d", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("MarkReminderSent: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("MarkReminderSent: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkReminderSent - repository error: %v", ErrInternal, err)
	}

	if appointment.ReminderSent {
		s.logger.Info("MarkReminderSent: appointment id=%d already marked", id)
		return nil
	}

	if err := s.appointmentRepo.MarkReminderSent(ctx, id); err != nil {
		s.logger.Error("MarkReminderSent: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkReminderSent - repository error: %v", ErrInternal, err)
	}

	s.events.PublishEventAsync(notifyservice.NewAppointmentEvent(notifyservice.EventAppointmentReminder, appointment))

	s.logger.Info("MarkReminderSent: successfully marked appointment id=%d", id)
	return nil
}

// appendCancelReason дописывает причину отмены к существующим заметкам
func appendCancelReason(notes *string, reason string) string {
	line := "Причина отмены: " + reason
	if notes == nil || *notes == "" {
		return line
	}
	return *notes + "\n" + line
}
