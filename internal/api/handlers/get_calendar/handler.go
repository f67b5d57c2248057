package get_calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/api/handlers"
	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/internal/service/calendar"
	"github.com/akaisui/car-repair-backend-sub000/internal/service/calendar/models"
)

const (
	msgMissingDates     = "параметры startDate и endDate обязательны"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange = "дата окончания раньше даты начала"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	startStr := query.Get("startDate")
	endStr := query.Get("endDate")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /calendar - Missing date parameters")
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, startStr)
	if err != nil {
		h.logger.Warn("GET /calendar - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := time.Parse(domain.DateFormat, endStr)
	if err != nil {
		h.logger.Warn("GET /calendar - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetCalendarView(r.Context(), &models.CalendarViewRequest{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidDateRange):
			h.logger.Warn("GET /calendar - Invalid date range: %s to %s", startStr, endStr)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("GET /calendar - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingDates)

		default:
			h.logger.Error("GET /calendar - Failed to build calendar view: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendar - Calendar view built: %s to %s, days=%d", startStr, endStr, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
