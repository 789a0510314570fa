package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxRangeDays int) error {
	if req.EventTypeID <= 0 {
		return fmt.Errorf("%w: eventTypeID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	if days := rangeDays(req.StartDate, req.EndDate); days > maxRangeDays {
		return fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLarge, days, maxRangeDays)
	}

	return nil
}

// rangeDays количество дат в диапазоне, включая обе границы
func rangeDays(start, end time.Time) int {
	y, m, d := start.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = end.Date()
	to := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours()/24) + 1
}
