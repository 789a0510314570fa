package reserve_slot

import "time"

// Request модель запроса на временное удержание слота
type Request struct {
	UserID      int64
	EventTypeID int64
	StartTime   time.Time // Начало слота; для целого дня - любой момент нужной даты
	Spots       int       // Количество мест, по умолчанию 1
}

// Response созданное удержание
type Response struct {
	ReservationID string
	EventTypeID   int64
	Start         time.Time
	End           time.Time
	Spots         int
	ExpiresAt     time.Time
}

// ReleaseRequest модель запроса на снятие удержания
type ReleaseRequest struct {
	EventTypeID   int64
	ReservationID string
}
