package create_appointment

import (
	"errors"
	"net/http"

	"github.com/akaisui/car-repair-backend-sub000/internal/api/handlers"
	bookAppointment "github.com/akaisui/car-repair-backend-sub000/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgSlotUnavailable    = "выбранный временной слот недоступен"
	msgNonWorkingDay      = "выбранная дата приходится на нерабочий день"
	msgPastDateTime       = "дата и время записи должны быть в будущем"
	msgInvalidStatus      = "недопустимый статус записи"
	msgInvalidInput       = "некорректные данные записи"
	msgCodeExhausted      = "не удалось сгенерировать код записи, попробуйте ещё раз"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: date=%s, time=%s", req.AppointmentDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, bookAppointment.ErrNonWorkingDay):
			h.logger.Warn("POST /appointments - Non-working day: date=%s", req.AppointmentDate)
			handlers.RespondBadRequest(w, msgNonWorkingDay)

		case errors.Is(err, bookAppointment.ErrPastDateTime):
			h.logger.Warn("POST /appointments - Past date/time: date=%s, time=%s", req.AppointmentDate, req.StartTime)
			handlers.RespondBadRequest(w, msgPastDateTime)

		case errors.Is(err, bookAppointment.ErrInvalidStatus):
			h.logger.Warn("POST /appointments - Invalid status: %v", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookAppointment.ErrCodeGenerationExhausted):
			h.logger.Error("POST /appointments - Code generation exhausted: date=%s", req.AppointmentDate)
			handlers.RespondError(w, http.StatusConflict, msgCodeExhausted)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: date=%s, time=%s, error=%v",
				req.AppointmentDate, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: id=%d, code=%s", result.ID, result.Code)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
