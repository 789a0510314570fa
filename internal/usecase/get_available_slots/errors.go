package get_available_slots

import "errors"

var (
	// ErrEventTypeNotFound возвращается, когда тип события не найден или отключен
	ErrEventTypeNotFound = errors.New("get_available_slots: event type not found")

	// ErrScheduleNotFound возвращается, когда у типа события нет расписания
	ErrScheduleNotFound = errors.New("get_available_slots: schedule not found")

	// ErrRangeTooLarge возвращается, когда диапазон дат превышает допустимый
	ErrRangeTooLarge = errors.New("get_available_slots: date range is too large")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
