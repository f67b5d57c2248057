package reminders

import (
	"context"

	"github.com/akaisui/car-repair-backend-sub000/internal/service/appointments/models"
)

type AppointmentService interface {
	RemindersDue(ctx context.Context, hoursAhead int) (*models.AppointmentListResponse, error)
	MarkReminderSent(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
