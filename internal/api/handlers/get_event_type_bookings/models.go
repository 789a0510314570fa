package get_event_type_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	eventTypeID int64,
	userID int64,
	fromStr string,
	toStr string,
	statusStr string,
	includeInactiveStr string,
) (*models.GetEventTypeBookingsRequest, error) {
	req := &models.GetEventTypeBookingsRequest{
		UserID:      userID,
		EventTypeID: eventTypeID,
	}

	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		req.To = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	// По умолчанию только активные
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
