package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StartTimes    []string `json:"startTimes"` // RFC3339; больше одного - серия
	AttendeeName  string   `json:"attendeeName"`
	AttendeeEmail string   `json:"attendeeEmail"`
	Timezone      string   `json:"timezone,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	ReservationID *string  `json:"reservationId,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	SeriesID *string           `json:"seriesId,omitempty"`
	Bookings []BookingResponse `json:"bookings"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	EventTypeID   int64   `json:"eventTypeId"`
	UserID        int64   `json:"userId"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	AttendeeName  string  `json:"attendeeName"`
	AttendeeEmail string  `json:"attendeeEmail"`
	Timezone      string  `json:"timezone"`
	SeriesID      *string `json:"seriesId,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID, eventTypeID int64) (*createBooking.Request, error) {
	startTimes, err := handlers.ParseStartTimes(r.StartTimes)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:        userID,
		EventTypeID:   eventTypeID,
		StartTimes:    startTimes,
		AttendeeName:  r.AttendeeName,
		AttendeeEmail: r.AttendeeEmail,
		Timezone:      r.Timezone,
		Notes:         r.Notes,
		ReservationID: r.ReservationID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	bookings := make([]BookingResponse, len(resp.Bookings))
	for i, b := range resp.Bookings {
		bookings[i] = BookingResponse{
			ID:            b.ID,
			EventTypeID:   b.EventTypeID,
			UserID:        b.UserID,
			StartTime:     b.StartTime.UTC().Format(time.RFC3339),
			EndTime:       b.EndTime.UTC().Format(time.RFC3339),
			Status:        b.Status,
			AttendeeName:  b.AttendeeName,
			AttendeeEmail: b.AttendeeEmail,
			Timezone:      b.Timezone,
			SeriesID:      b.SeriesID,
			Notes:         b.Notes,
			CreatedAt:     b.CreatedAt.Format(time.RFC3339),
			UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
		}
	}

	return &CreateBookingResponse{
		SeriesID: resp.SeriesID,
		Bookings: bookings,
	}
}

// ConflictResponse тело ответа 409 со списком конфликтов и альтернатив
type ConflictResponse struct {
	Code    int                                `json:"code"`
	Message string                             `json:"message"`
	Result  *handlers.ValidationResultResponse `json:"result"`
}
