package validate_slots

import (
	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	validateSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/validate_slots"
)

// ValidateSlotsRequest HTTP request model
type ValidateSlotsRequest struct {
	StartTimes    []string `json:"startTimes"` // RFC3339
	Timezone      string   `json:"timezone,omitempty"`
	ReservationID string   `json:"reservationId,omitempty"`
}

// ValidateSlotsResponse HTTP response model
type ValidateSlotsResponse struct {
	EventTypeID int64  `json:"eventTypeId"`
	Timezone    string `json:"timezone"`
	*handlers.ValidationResultResponse
	Degraded []string `json:"degraded,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateSlotsRequest) ToUseCaseRequest(eventTypeID int64) (*validateSlots.Request, error) {
	startTimes, err := handlers.ParseStartTimes(r.StartTimes)
	if err != nil {
		return nil, err
	}

	return &validateSlots.Request{
		EventTypeID:   eventTypeID,
		StartTimes:    startTimes,
		Timezone:      r.Timezone,
		ReservationID: r.ReservationID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateSlots.Response) *ValidateSlotsResponse {
	return &ValidateSlotsResponse{
		EventTypeID:              resp.EventTypeID,
		Timezone:                 resp.Timezone,
		ValidationResultResponse: handlers.FromValidationResult(resp.Result),
		Degraded:                 resp.Degraded,
	}
}
