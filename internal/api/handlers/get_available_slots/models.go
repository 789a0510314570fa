package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	EventTypeID int64         `json:"eventTypeId"`
	Kind        string        `json:"kind"`
	Timezone    string        `json:"timezone"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	Days        []DayResponse `json:"days"`
	Degraded    []string      `json:"degraded,omitempty"`
}

// DayResponse слоты одной даты
type DayResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse модель временного слота
type SlotResponse struct {
	Start           string `json:"start"`        // RFC3339, UTC
	End             string `json:"end"`          // RFC3339, UTC
	DisplayStart    string `json:"displayStart"` // RFC3339 со смещением зоны показа
	DisplayEnd      string `json:"displayEnd"`
	IsAvailable     bool   `json:"isAvailable"`
	IsFullDay       bool   `json:"isFullDay"`
	CurrentBookings int    `json:"currentBookings"`
	MaxCapacity     *int   `json:"maxCapacity,omitempty"`
	RemainingSpots  *int   `json:"remainingSpots,omitempty"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(eventTypeID int64, startDateStr, endDateStr, timezone string) (*getAvailableSlots.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, startDateStr)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, endDateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		EventTypeID: eventTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
		Timezone:    timezone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, day := range resp.Days {
		slots := make([]SlotResponse, len(day.Slots))
		for i, slot := range day.Slots {
			slots[i] = SlotResponse{
				Start:           slot.Start.UTC().Format(time.RFC3339),
				End:             slot.End.UTC().Format(time.RFC3339),
				DisplayStart:    slot.DisplayStart.Format(time.RFC3339),
				DisplayEnd:      slot.DisplayEnd.Format(time.RFC3339),
				IsAvailable:     slot.IsAvailable,
				IsFullDay:       slot.IsFullDay,
				CurrentBookings: slot.CurrentBookings,
				MaxCapacity:     slot.MaxCapacity,
				RemainingSpots:  slot.RemainingSpots,
			}
		}
		days = append(days, DayResponse{Date: day.Date, Slots: slots})
	}

	return &AvailableSlotsResponse{
		EventTypeID: resp.EventTypeID,
		Kind:        resp.Kind,
		Timezone:    resp.Timezone,
		StartDate:   resp.StartDate.Format(domain.DateFormat),
		EndDate:     resp.EndDate.Format(domain.DateFormat),
		Days:        days,
		Degraded:    resp.Degraded,
	}
}
