package calendarservice

import "time"

// BusyTimesResponse ответ CalendarService со списком занятых интервалов
type BusyTimesResponse struct {
	OwnerID   int64      `json:"owner_id"`
	BusyTimes []BusyTime `json:"busy_times"`
}

// BusyTime занятый интервал во внешнем календаре
type BusyTime struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Source string    `json:"source"` // идентификатор подключённого календаря
}

// ErrorResponse модель ошибки от CalendarService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
