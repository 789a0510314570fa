package reserve_slot

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.EventTypeID <= 0 {
		return fmt.Errorf("%w: eventTypeID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.Spots < 0 {
		return fmt.Errorf("%w: spots must not be negative", ErrInvalidInput)
	}

	return nil
}

// validateReleaseRequest валидирует запрос на снятие удержания
func validateReleaseRequest(req *ReleaseRequest) error {
	if req.EventTypeID <= 0 {
		return fmt.Errorf("%w: eventTypeID must be positive", ErrInvalidInput)
	}

	if _, err := uuid.Parse(req.ReservationID); err != nil {
		return fmt.Errorf("%w: reservationID must be a uuid", ErrInvalidInput)
	}

	return nil
}
