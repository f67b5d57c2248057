package get_availability

import (
	"errors"
	"net/http"

	"github.com/akaisui/car-repair-backend-sub000/internal/api/handlers"
	checkAvailability "github.com/akaisui/car-repair-backend-sub000/internal/usecase/check_availability"
)

const (
	msgMissingDate = "параметр date обязателен"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime = "некорректный формат времени, ожидается HH:MM"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/available-slots?date=YYYY-MM-DD&time=HH:MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /appointments/available-slots - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	timeStr := r.URL.Query().Get("time")

	useCaseReq, err := toUseCaseRequest(dateStr, timeStr)
	if err != nil {
		h.logger.Warn("GET /appointments/available-slots - Failed to parse request: %v", err)
		if timeStr != "" && dateParses(dateStr) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /appointments/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /appointments/available-slots - Failed to check availability: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/available-slots - Availability checked: date=%s, slots=%d", dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// dateParses проверяет, что строка даты корректна, чтобы уточнить сообщение об ошибке
func dateParses(dateStr string) bool {
	_, err := toUseCaseRequest(dateStr, "")
	return err == nil
}
