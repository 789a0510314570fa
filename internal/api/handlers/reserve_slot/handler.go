package reserve_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	reserveSlot "github.com/m04kA/SMC-SchedulingService/internal/usecase/reserve_slot"
)

const (
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidParams      = "некорректные параметры удержания"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgEventTypeNotFound  = "тип события не найден"
	msgScheduleNotFound   = "расписание типа события не найдено"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/event-types/{eventTypeId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventTypeID, err := strconv.ParseInt(mux.Vars(r)["eventTypeId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /event-types/{id}/reservations - Invalid event type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /event-types/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ReserveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /event-types/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, eventTypeID)
	if err != nil {
		h.logger.Warn("POST /event-types/{id}/reservations - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrSlotNotAvailable):
			h.logger.Warn("POST /event-types/{id}/reservations - Slot not available: user_id=%d, event_type_id=%d, start=%s",
				userID, eventTypeID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, reserveSlot.ErrEventTypeNotFound):
			h.logger.Warn("POST /event-types/{id}/reservations - Event type not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, reserveSlot.ErrScheduleNotFound):
			h.logger.Warn("POST /event-types/{id}/reservations - Schedule not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /event-types/{id}/reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /event-types/{id}/reservations - Failed to reserve slot: user_id=%d, event_type_id=%d, error=%v",
				userID, eventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /event-types/{id}/reservations - Slot reserved: reservation_id=%s, user_id=%d, event_type_id=%d",
		result.ReservationID, userID, eventTypeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
