package get_calendar

import (
	"context"

	"github.com/akaisui/car-repair-backend-sub000/internal/service/calendar/models"
)

type CalendarService interface {
	GetCalendarView(ctx context.Context, req *models.CalendarViewRequest) (*models.CalendarViewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
