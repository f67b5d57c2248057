package check_availability

import (
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/pkg/types"
)

// Request модель запроса на проверку доступности слотов
type Request struct {
	Date time.Time         // Дата для проверки (без времени)
	Time *types.TimeString // Конкретное время для проверки одного слота (опционально)
}

// Response модель ответа со слотами дня
type Response struct {
	Date  time.Time
	Slots []domain.TimeSlot
}
