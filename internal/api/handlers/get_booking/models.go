package get_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// BookingDetailsResponse бронирование вместе со временем в зоне отображения
type BookingDetailsResponse struct {
	*models.BookingResponse

	DisplayTimezone  string `json:"displayTimezone"`
	DisplayStartTime string `json:"displayStartTime"` // RFC3339 со смещением зоны отображения
	DisplayEndTime   string `json:"displayEndTime"`
	IsSeries         bool   `json:"isSeries"`
}

// ToBookingDetails переводит UTC время бронирования в зону loc
func ToBookingDetails(b *models.BookingResponse, loc *time.Location) (*BookingDetailsResponse, error) {
	start, err := time.Parse(time.RFC3339, b.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse start time %q: %w", b.StartTime, err)
	}
	end, err := time.Parse(time.RFC3339, b.EndTime)
	if err != nil {
		return nil, fmt.Errorf("parse end time %q: %w", b.EndTime, err)
	}

	return &BookingDetailsResponse{
		BookingResponse:  b,
		DisplayTimezone:  loc.String(),
		DisplayStartTime: start.In(loc).Format(time.RFC3339),
		DisplayEndTime:   end.In(loc).Format(time.RFC3339),
		IsSeries:         b.SeriesID != nil,
	}, nil
}
