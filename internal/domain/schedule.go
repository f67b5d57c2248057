package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/akaisui/car-repair-backend-sub000/pkg/types"
)

// ErrInvalidBusinessHours возвращается при некорректной конфигурации рабочего времени
var ErrInvalidBusinessHours = errors.New("domain: invalid business hours configuration")

// BusinessHours расписание работы мастерской
// Одно значение на процесс, передаётся явно в use cases и сервисы
type BusinessHours struct {
	OpenTime    types.TimeString // Время открытия
	CloseTime   types.TimeString // Время закрытия
	BreakStart  types.TimeString // Начало перерыва
	BreakEnd    types.TimeString // Конец перерыва
	SlotMinutes int              // Шаг слота в минутах
	WorkingDays map[time.Weekday]bool
}

// NewBusinessHours создает и валидирует расписание работы
func NewBusinessHours(
	openTime, closeTime, breakStart, breakEnd string,
	slotMinutes int,
	workingDays []int,
) (BusinessHours, error) {
	open, err := types.NewTimeStringFromString(openTime)
	if err != nil {
		return BusinessHours{}, fmt.Errorf("%w: open time: %v", ErrInvalidBusinessHours, err)
	}

	close, err := types.NewTimeStringFromString(closeTime)
	if err != nil {
		return BusinessHours{}, fmt.Errorf("%w: close time: %v", ErrInvalidBusinessHours, err)
	}

	if !open.IsBefore(close) {
		return BusinessHours{}, fmt.Errorf("%w: open time %s must be before close time %s", ErrInvalidBusinessHours, open, close)
	}

	bStart, err := types.NewTimeStringFromString(breakStart)
	if err != nil {
		return BusinessHours{}, fmt.Errorf("%w: break start: %v", ErrInvalidBusinessHours, err)
	}

	bEnd, err := types.NewTimeStringFromString(breakEnd)
	if err != nil {
		return BusinessHours{}, fmt.Errorf("%w: break end: %v", ErrInvalidBusinessHours, err)
	}

	if bEnd.IsBefore(bStart) {
		return BusinessHours{}, fmt.Errorf("%w: break end %s is before break start %s", ErrInvalidBusinessHours, bEnd, bStart)
	}

	if slotMinutes <= 0 {
		return BusinessHours{}, fmt.Errorf("%w: slot minutes must be positive", ErrInvalidBusinessHours)
	}

	if len(workingDays) == 0 {
		return BusinessHours{}, fmt.Errorf("%w: at least one working day is required", ErrInvalidBusinessHours)
	}

	days := make(map[time.Weekday]bool, len(workingDays))
	for _, d := range workingDays {
		if d < 0 || d > 6 {
			return BusinessHours{}, fmt.Errorf("%w: weekday %d is out of range [0..6]", ErrInvalidBusinessHours, d)
		}
		days[time.Weekday(d)] = true
	}

	return BusinessHours{
		OpenTime:    open,
		CloseTime:   close,
		BreakStart:  bStart,
		BreakEnd:    bEnd,
		SlotMinutes: slotMinutes,
		WorkingDays: days,
	}, nil
}

// DailySlots генерирует упорядоченный список времён начала слотов на день
// От открытия с шагом SlotMinutes до закрытия, пропуская начала слотов
// внутри перерыва [BreakStart, BreakEnd). Результат одинаков для любой даты -
// фильтрация по рабочим дням выполняется отдельно через IsWorkingDay
func (h BusinessHours) DailySlots() ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)
	current := h.OpenTime

	for current.IsBefore(h.CloseTime) {
		slotEnd, err := current.AddMinutes(h.SlotMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(h.CloseTime) {
			break
		}

		if !h.inBreak(current) {
			slots = append(slots, current)
		}

		current = slotEnd
	}

	return slots, nil
}

// IsWorkingDay проверяет, что день недели даты входит в рабочие дни
func (h BusinessHours) IsWorkingDay(date time.Time) bool {
	return h.WorkingDays[date.Weekday()]
}

// DailySlotCount возвращает общее количество слотов в рабочем дне
// Используется как знаменатель доступных слотов в календарных представлениях
func (h BusinessHours) DailySlotCount() int {
	openMin, err := h.OpenTime.Minutes()
	if err != nil {
		return 0
	}
	closeMin, err := h.CloseTime.Minutes()
	if err != nil {
		return 0
	}
	breakStartMin, err := h.BreakStart.Minutes()
	if err != nil {
		return 0
	}
	breakEndMin, err := h.BreakEnd.Minutes()
	if err != nil {
		return 0
	}

	return (closeMin - openMin - (breakEndMin - breakStartMin)) / h.SlotMinutes
}

// inBreak проверяет, что начало слота попадает в перерыв [BreakStart, BreakEnd)
func (h BusinessHours) inBreak(slot types.TimeString) bool {
	if h.BreakStart == h.BreakEnd {
		return false
	}
	return !slot.IsBefore(h.BreakStart) && slot.IsBefore(h.BreakEnd)
}
