package snapshot

import "errors"

var (
	// ErrLoadBookings возвращается, когда не удалось прочитать бронирования
	ErrLoadBookings = errors.New("snapshot: failed to load bookings")
)
