package create_booking

import (
	"errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrEventTypeNotFound возвращается, когда тип события не найден или отключен
	ErrEventTypeNotFound = errors.New("create_booking: event type not found")

	// ErrScheduleNotFound возвращается, когда у типа события нет расписания
	ErrScheduleNotFound = errors.New("create_booking: schedule not found")

	// ErrSlotNotAvailable возвращается, когда хотя бы один запрошенный слот недоступен
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrConcurrentBooking возвращается, когда параллельные бронирования не удалось
	// упорядочить даже после повторов транзакции
	ErrConcurrentBooking = errors.New("create_booking: concurrent booking, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ConflictError отказ в бронировании со списком конфликтов по каждому запрошенному слоту
type ConflictError struct {
	Result *domain.ValidationResult
}

func (e *ConflictError) Error() string {
	return ErrSlotNotAvailable.Error() + ": " + e.Result.Message
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrSlotNotAvailable)
func (e *ConflictError) Unwrap() error {
	return ErrSlotNotAvailable
}
