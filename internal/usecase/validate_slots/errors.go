package validate_slots

import "errors"

var (
	// ErrEventTypeNotFound возвращается, когда тип события не найден или отключен
	ErrEventTypeNotFound = errors.New("validate_slots: event type not found")

	// ErrScheduleNotFound возвращается, когда у типа события нет расписания
	ErrScheduleNotFound = errors.New("validate_slots: schedule not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_slots: internal error")
)
