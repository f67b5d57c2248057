package search_appointments

import (
	"context"

	"github.com/akaisui/car-repair-backend-sub000/internal/service/appointments/models"
)

type AppointmentService interface {
	Search(ctx context.Context, req *models.SearchRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
