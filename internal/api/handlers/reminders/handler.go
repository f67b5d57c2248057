package reminders

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/akaisui/car-repair-backend-sub000/internal/api/handlers"
	"github.com/akaisui/car-repair-backend-sub000/internal/service/appointments"
)

// defaultHoursAhead напоминание за сутки до записи
const defaultHoursAhead = 24

const (
	msgInvalidHoursAhead    = "некорректное значение hoursAhead"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /internal/appointments/reminders?hoursAhead=24
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	hoursAhead := defaultHoursAhead

	if v := r.URL.Query().Get("hoursAhead"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /internal/appointments/reminders - Invalid hoursAhead: %s", v)
			handlers.RespondBadRequest(w, msgInvalidHoursAhead)
			return
		}
		hoursAhead = parsed
	}

	result, err := h.service.RemindersDue(r.Context(), hoursAhead)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /internal/appointments/reminders - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidHoursAhead)

		default:
			h.logger.Error("GET /internal/appointments/reminders - Failed to list reminders: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /internal/appointments/reminders - %d appointments due for reminder", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleMarkSent POST /internal/appointments/{appointmentId}/reminder-sent
func (h *Handler) HandleMarkSent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /internal/appointments/{id}/reminder-sent - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	if err := h.service.MarkReminderSent(r.Context(), appointmentID); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /internal/appointments/{id}/reminder-sent - Appointment not found: id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /internal/appointments/{id}/reminder-sent - Failed to mark reminder: id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internal/appointments/{id}/reminder-sent - Reminder marked: id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
