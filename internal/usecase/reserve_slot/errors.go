package reserve_slot

import "errors"

var (
	// ErrEventTypeNotFound возвращается, когда тип события не найден или отключен
	ErrEventTypeNotFound = errors.New("reserve_slot: event type not found")

	// ErrScheduleNotFound возвращается, когда у типа события нет расписания
	ErrScheduleNotFound = errors.New("reserve_slot: schedule not found")

	// ErrSlotNotAvailable возвращается, когда слот не предлагается или уже удерживается
	ErrSlotNotAvailable = errors.New("reserve_slot: slot is not available")

	// ErrReservationNotFound возвращается, когда удержание не найдено или истекло
	ErrReservationNotFound = errors.New("reserve_slot: reservation not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
