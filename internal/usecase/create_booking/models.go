package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования (одного или серии)
type Request struct {
	UserID        int64       // ID пользователя
	EventTypeID   int64       // ID типа события
	StartTimes    []time.Time // Моменты начала; больше одного - повторяющаяся серия
	AttendeeName  string
	AttendeeEmail string
	Timezone      string  // Зона приглашенного (опционально)
	Notes         *string // Дополнительные заметки (опционально)
	ReservationID *string // Удержание, которое нужно снять после создания (опционально)
}

// Response модель ответа с созданными бронированиями
type Response struct {
	SeriesID *string
	Bookings []Booking
}

// Booking созданное бронирование
type Booking struct {
	ID            int64
	EventTypeID   int64
	UserID        int64
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	AttendeeName  string
	AttendeeEmail string
	Timezone      string
	SeriesID      *string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
