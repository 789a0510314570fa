package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда удержание не найдено или уже истекло
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotHeld возвращается, когда слот уже удерживается другим пользователем
	ErrSlotHeld = errors.New("reservation.repository: slot is already held")

	// ErrEncode возвращается при ошибке сериализации удержания
	ErrEncode = errors.New("reservation.repository: failed to encode reservation")

	// ErrDecode возвращается при ошибке разбора сохранённого удержания
	ErrDecode = errors.New("reservation.repository: failed to decode reservation")

	// ErrRedis возвращается при ошибках Redis
	ErrRedis = errors.New("reservation.repository: redis error")
)
