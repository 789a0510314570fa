package create_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidParams      = "некорректные данные бронирования"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgConcurrentBooking  = "слот одновременно бронируют другие пользователи, повторите попытку"
	msgEventTypeNotFound  = "тип события не найден"
	msgScheduleNotFound   = "расписание типа события не найдено"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/event-types/{eventTypeId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventTypeID, err := strconv.ParseInt(mux.Vars(r)["eventTypeId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /event-types/{id}/bookings - Invalid event type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /event-types/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /event-types/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, eventTypeID)
	if err != nil {
		h.logger.Warn("POST /event-types/{id}/bookings - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *createBooking.ConflictError

		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /event-types/{id}/bookings - Slot not available: user_id=%d, event_type_id=%d, conflicts=%d",
				userID, eventTypeID, len(conflict.Result.Conflicts))
			handlers.RespondJSON(w, http.StatusConflict, &ConflictResponse{
				Code:    http.StatusConflict,
				Message: msgSlotNotAvailable,
				Result:  handlers.FromValidationResult(conflict.Result),
			})

		case errors.Is(err, createBooking.ErrConcurrentBooking):
			h.logger.Warn("POST /event-types/{id}/bookings - Concurrent booking: user_id=%d, event_type_id=%d", userID, eventTypeID)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentBooking)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /event-types/{id}/bookings - Slot not available: user_id=%d, event_type_id=%d", userID, eventTypeID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrEventTypeNotFound):
			h.logger.Warn("POST /event-types/{id}/bookings - Event type not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, createBooking.ErrScheduleNotFound):
			h.logger.Warn("POST /event-types/{id}/bookings - Schedule not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /event-types/{id}/bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /event-types/{id}/bookings - Failed to create booking: user_id=%d, event_type_id=%d, error=%v",
				userID, eventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /event-types/{id}/bookings - Bookings created successfully: user_id=%d, event_type_id=%d, count=%d",
		userID, eventTypeID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
