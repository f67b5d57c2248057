package check_availability

import (
	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/pkg/types"
)

// markAvailability размечает доступность каждого слота дня
// Слот недоступен, если его начало попадает в занятый интервал
// [start, start + duration) какой-либо неотменённой записи.
// Это проверка попадания начала слота в интервал, а не точного совпадения времени:
// услуга на 60 минут с началом в 09:00 блокирует слоты 09:00 И 09:30 при шаге 30 минут
func markAvailability(slotStarts []types.TimeString, appointments []*domain.Appointment) []domain.TimeSlot {
	result := make([]domain.TimeSlot, len(slotStarts))

	for i, start := range slotStarts {
		result[i] = domain.TimeSlot{
			StartTime: start,
			Available: !isOccupied(start, appointments),
		}
	}

	return result
}

// isOccupied проверяет, что начало слота занято одной из записей
func isOccupied(slotStart types.TimeString, appointments []*domain.Appointment) bool {
	for _, ap := range appointments {
		// Отменённые записи слот не занимают
		if !ap.IsActive() {
			continue
		}

		apStart := ap.StartTime
		apEnd, err := ap.StartTime.AddMinutes(ap.DurationMinutes())
		if err != nil {
			// Если не можем вычислить конец записи, пропускаем её
			continue
		}

		// Начало слота внутри [apStart, apEnd): левая граница включена, правая - нет
		if !slotStart.IsBefore(apStart) && slotStart.IsBefore(apEnd) {
			return true
		}
	}

	return false
}

// filterByTime оставляет единственный слот с указанным временем начала
// Пустой результат, если время не совпадает ни с одной границей слота
func filterByTime(slots []domain.TimeSlot, t types.TimeString) []domain.TimeSlot {
	for _, slot := range slots {
		if slot.StartTime == t {
			return []domain.TimeSlot{slot}
		}
	}
	return []domain.TimeSlot{}
}
