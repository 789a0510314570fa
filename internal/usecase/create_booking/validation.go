package create_booking

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

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

	name := strings.TrimSpace(req.AttendeeName)
	if name == "" {
		return fmt.Errorf("%w: attendeeName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxAttendeeNameLength {
		return fmt.Errorf("%w: attendeeName exceeds %d characters", ErrInvalidInput, domain.MaxAttendeeNameLength)
	}

	if _, err := mail.ParseAddress(req.AttendeeEmail); err != nil {
		return fmt.Errorf("%w: invalid attendeeEmail: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSeries проверяет, что бронирования одной серии не пересекаются друг с другом
func validateSeries(intervals []domain.Interval) error {
	if len(intervals) < 2 {
		return nil
	}

	sorted := make([]domain.Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start.Before(sorted[i-1].End) {
			return fmt.Errorf("%w: start times %s and %s overlap",
				ErrInvalidInput, sorted[i-1].Start.Format(time.RFC3339), sorted[i].Start.Format(time.RFC3339))
		}
	}

	return nil
}
