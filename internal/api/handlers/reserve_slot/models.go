package reserve_slot

import (
	"time"

	reserveSlot "github.com/m04kA/SMC-SchedulingService/internal/usecase/reserve_slot"
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	StartTime string `json:"startTime"`       // RFC3339
	Spots     int    `json:"spots,omitempty"` // по умолчанию 1
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ReservationID string `json:"reservationId"`
	EventTypeID   int64  `json:"eventTypeId"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Spots         int    `json:"spots"`
	ExpiresAt     string `json:"expiresAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveSlotRequest) ToUseCaseRequest(userID, eventTypeID int64) (*reserveSlot.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &reserveSlot.Request{
		UserID:      userID,
		EventTypeID: eventTypeID,
		StartTime:   start.UTC(),
		Spots:       r.Spots,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *ReservationResponse {
	return &ReservationResponse{
		ReservationID: resp.ReservationID,
		EventTypeID:   resp.EventTypeID,
		Start:         resp.Start.UTC().Format(time.RFC3339),
		End:           resp.End.UTC().Format(time.RFC3339),
		Spots:         resp.Spots,
		ExpiresAt:     resp.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
