package availability

import "errors"

var (
	// ErrInvalidTimezone is returned when a zone identifier cannot be loaded
	ErrInvalidTimezone = errors.New("availability: invalid timezone")

	// ErrInvalidEventType is returned for an event type with a non-positive duration or unknown kind
	ErrInvalidEventType = errors.New("availability: invalid event type")

	// ErrMissingSchedule is returned when no availability schedule is supplied
	ErrMissingSchedule = errors.New("availability: schedule is required")

	// ErrUnsupportedKind is returned when a time-slot operation is asked for a full-day event type or vice versa
	ErrUnsupportedKind = errors.New("availability: operation not supported for this meeting kind")

	// ErrInvalidRange is returned when the end date precedes the start date
	ErrInvalidRange = errors.New("availability: end date before start date")
)
