package validate_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EventTypeID <= 0 {
		return fmt.Errorf("%w: eventTypeID must be positive", ErrInvalidInput)
	}

	if len(req.StartTimes) == 0 {
		return fmt.Errorf("%w: at least one start time is required", ErrInvalidInput)
	}

	if len(req.StartTimes) > domain.MaxRequestedSlots {
		return fmt.Errorf("%w: at most %d start times allowed, got %d",
			ErrInvalidInput, domain.MaxRequestedSlots, len(req.StartTimes))
	}

	for i, t := range req.StartTimes {
		if t.IsZero() {
			return fmt.Errorf("%w: start time #%d is empty", ErrInvalidInput, i)
		}
	}

	return nil
}
