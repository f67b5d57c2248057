package get_statistics

import (
	"net/http"
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/api/handlers"
	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/internal/service/calendar/models"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/statistics?dateFrom=YYYY-MM-DD&dateTo=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.StatisticsRequest{}

	if v := query.Get("dateFrom"); v != "" {
		parsed, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /statistics - Invalid dateFrom: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.DateFrom = &parsed
	}

	if v := query.Get("dateTo"); v != "" {
		parsed, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /statistics - Invalid dateTo: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.DateTo = &parsed
	}

	result, err := h.service.GetStatistics(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /statistics - Failed to build statistics: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /statistics - Statistics built: total=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
