package book_appointment

import "errors"

var (
	// ErrSlotUnavailable возвращается, когда запрошенный слот занят
	// или не совпадает с границей слота расписания
	ErrSlotUnavailable = errors.New("book_appointment: slot is not available")

	// ErrNonWorkingDay возвращается, когда день недели даты не является рабочим
	ErrNonWorkingDay = errors.New("book_appointment: date is not a working day")

	// ErrPastDateTime возвращается, когда дата и время записи не в будущем
	ErrPastDateTime = errors.New("book_appointment: date and time must be in the future")

	// ErrInvalidStatus возвращается при неизвестном начальном статусе
	ErrInvalidStatus = errors.New("book_appointment: invalid appointment status")

	// ErrCodeGenerationExhausted возвращается, когда не удалось сгенерировать
	// уникальный код записи за отведённое число попыток
	ErrCodeGenerationExhausted = errors.New("book_appointment: code generation attempts exhausted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
