package get_available_slots

import (
	"time"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	EventTypeID int64     // ID типа события
	StartDate   time.Time // Первая дата диапазона (без времени, в зоне расписания)
	EndDate     time.Time // Последняя дата диапазона включительно
	Timezone    string    // Зона приглашенного (опционально)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	EventTypeID int64
	Kind        string
	Timezone    string // Зона, в которой показаны слоты
	StartDate   time.Time
	EndDate     time.Time
	Days        []Day    // Слоты, сгруппированные по дате в зоне показа
	Degraded    []string // Источники, которые не ответили и не учтены
}

// Day слоты одной даты
type Day struct {
	Date  string // YYYY-MM-DD
	Slots []Slot
}

// Slot модель слота
type Slot struct {
	Start           time.Time // UTC
	End             time.Time // UTC
	DisplayStart    time.Time
	DisplayEnd      time.Time
	IsAvailable     bool
	IsFullDay       bool
	CurrentBookings int
	MaxCapacity     *int // nil - без ограничения или не применимо
	RemainingSpots  *int
}
