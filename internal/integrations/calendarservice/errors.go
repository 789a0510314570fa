package calendarservice

import "errors"

var (
	// ErrOwnerNotFound возвращается, когда у владельца нет подключённых календарей
	ErrOwnerNotFound = errors.New("calendarservice client: owner has no connected calendars")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("calendarservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что CalendarService недоступен и занятость календаря следует считать пустой
	ErrServiceDegraded = errors.New("calendarservice unavailable: graceful degradation applied")
)
