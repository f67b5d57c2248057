package calendar

import "errors"

var (
	// ErrInvalidDateRange возвращается при некорректном периоде календаря
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
