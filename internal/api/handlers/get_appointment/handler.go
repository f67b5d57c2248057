package get_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/akaisui/car-repair-backend-sub000/internal/api/handlers"
	"github.com/akaisui/car-repair-backend-sub000/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingCode          = "код записи обязателен"
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

// Handle GET /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	appointment, err := h.service.GetByID(r.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{id} - Appointment not found: id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /appointments/{id} - Failed to get appointment: id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/{id} - Appointment retrieved successfully: id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}

// HandleByCode GET /api/v1/appointments/code/{code}
func (h *Handler) HandleByCode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	code := vars["code"]
	if code == "" {
		h.logger.Warn("GET /appointments/code/{code} - Missing code")
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	appointment, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/code/{code} - Appointment not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments/code/{code} - Invalid code: %v", err)
			handlers.RespondBadRequest(w, msgMissingCode)

		default:
			h.logger.Error("GET /appointments/code/{code} - Failed to get appointment: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/code/{code} - Appointment retrieved successfully: code=%s", code)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
