package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// UpsertOverrideRequest запрос на создание или замену исключения расписания на дату
type UpsertOverrideRequest struct {
	UserID      int64   `json:"-"`
	EventTypeID int64   `json:"-"`
	Date        string  `json:"date"`                // YYYY-MM-DD
	IsAvailable bool    `json:"isAvailable"`         // false = дата закрыта
	StartTime   *string `json:"startTime,omitempty"` // HH:MM, обязательно при isAvailable
	EndTime     *string `json:"endTime,omitempty"`   // HH:MM, обязательно при isAvailable
}

// DeleteOverrideRequest запрос на удаление исключения
type DeleteOverrideRequest struct {
	UserID      int64
	EventTypeID int64
	Date        string // YYYY-MM-DD
}

// ToDomainOverride разбирает и проверяет исключение
func (r *UpsertOverrideRequest) ToDomainOverride() (domain.DateOverride, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return domain.DateOverride{}, fmt.Errorf("date must be YYYY-MM-DD: %v", err)
	}

	override := domain.DateOverride{Date: date, IsAvailable: r.IsAvailable}
	if !r.IsAvailable {
		return override, nil
	}

	if r.StartTime == nil || r.EndTime == nil {
		return domain.DateOverride{}, fmt.Errorf("startTime and endTime are required for an available date")
	}
	start, err := types.NewTimeStringFromString(*r.StartTime)
	if err != nil {
		return domain.DateOverride{}, fmt.Errorf("invalid startTime: %v", err)
	}
	end, err := types.NewTimeStringFromString(*r.EndTime)
	if err != nil {
		return domain.DateOverride{}, fmt.Errorf("invalid endTime: %v", err)
	}
	if !start.IsBefore(end) {
		return domain.DateOverride{}, fmt.Errorf("startTime must be before endTime")
	}

	override.StartTime = &start
	override.EndTime = &end
	return override, nil
}

// Response модели

// EventTypeResponse тип события с расписанием
type EventTypeResponse struct {
	ID                   int64             `json:"id"`
	OwnerID              int64             `json:"ownerId"`
	Title                string            `json:"title"`
	Slug                 string            `json:"slug"`
	Kind                 string            `json:"kind"`
	Description          *string           `json:"description,omitempty"`
	DurationMinutes      int               `json:"durationMinutes"`
	BufferBeforeMinutes  int               `json:"bufferBeforeMinutes"`
	BufferAfterMinutes   int               `json:"bufferAfterMinutes"`
	SlotIntervalMinutes  int               `json:"slotIntervalMinutes"`
	MaxAttendeesPerSlot  *int              `json:"maxAttendeesPerSlot,omitempty"`
	RequiresConfirmation bool              `json:"requiresConfirmation"`
	IsActive             bool              `json:"isActive"`
	Schedule             *ScheduleResponse `json:"schedule,omitempty"`
}

// ScheduleResponse расписание доступности
type ScheduleResponse struct {
	ID                        int64                  `json:"id"`
	Name                      string                 `json:"name"`
	Timezone                  string                 `json:"timezone"`
	MinBookingNoticeMinutes   int                    `json:"minBookingNoticeMinutes"`
	MaxBookingDaysInFuture    int                    `json:"maxBookingDaysInFuture"` // 0 = без ограничений
	SlotIntervalMinutes       int                    `json:"slotIntervalMinutes"`
	AutoDetectInviteeTimezone bool                   `json:"autoDetectInviteeTimezone"`
	WeeklyWindows             []WeeklyWindowResponse `json:"weeklyWindows"`
	DateOverrides             []DateOverrideResponse `json:"dateOverrides"`
}

// WeeklyWindowResponse окно недельного расписания
type WeeklyWindowResponse struct {
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DateOverrideResponse исключение на дату
type DateOverrideResponse struct {
	Date        string  `json:"date"`
	IsAvailable bool    `json:"isAvailable"`
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
}

// Методы конвертации

// FromDomainEventType конвертирует domain модель в DTO
func FromDomainEventType(e *domain.EventType) *EventTypeResponse {
	if e == nil {
		return nil
	}

	return &EventTypeResponse{
		ID:                   e.ID,
		OwnerID:              e.OwnerID,
		Title:                e.Title,
		Slug:                 e.Slug,
		Kind:                 string(e.Kind),
		Description:          e.Description,
		DurationMinutes:      e.DurationMinutes,
		BufferBeforeMinutes:  e.BufferBeforeMinutes,
		BufferAfterMinutes:   e.BufferAfterMinutes,
		SlotIntervalMinutes:  e.SlotIntervalMinutes,
		MaxAttendeesPerSlot:  e.MaxAttendeesPerSlot,
		RequiresConfirmation: e.RequiresConfirmation,
		IsActive:             e.IsActive,
		Schedule:             FromDomainSchedule(e.Schedule),
	}
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.AvailabilitySchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &ScheduleResponse{
		ID:                        s.ID,
		Name:                      s.Name,
		Timezone:                  s.Timezone,
		MinBookingNoticeMinutes:   s.MinBookingNoticeMinutes,
		MaxBookingDaysInFuture:    s.MaxBookingDaysInFuture,
		SlotIntervalMinutes:       s.SlotIntervalMinutes,
		AutoDetectInviteeTimezone: s.AutoDetectInviteeTimezone,
		WeeklyWindows:             make([]WeeklyWindowResponse, 0, len(s.WeeklyWindows)),
		DateOverrides:             make([]DateOverrideResponse, 0, len(s.DateOverrides)),
	}

	for _, w := range s.WeeklyWindows {
		resp.WeeklyWindows = append(resp.WeeklyWindows, WeeklyWindowResponse{
			DayOfWeek: w.DayOfWeek.String(),
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		})
	}

	for _, o := range s.DateOverrides {
		item := DateOverrideResponse{
			Date:        o.Date.Format(domain.DateFormat),
			IsAvailable: o.IsAvailable,
		}
		if o.StartTime != nil {
			v := o.StartTime.String()
			item.StartTime = &v
		}
		if o.EndTime != nil {
			v := o.EndTime.String()
			item.EndTime = &v
		}
		resp.DateOverrides = append(resp.DateOverrides, item)
	}

	return resp
}
