package get_statistics

import (
	"context"

	"github.com/akaisui/car-repair-backend-sub000/internal/service/calendar/models"
)

type CalendarService interface {
	GetStatistics(ctx context.Context, req *models.StatisticsRequest) (*models.StatisticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
