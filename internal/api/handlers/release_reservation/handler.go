package release_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	reserveSlot "github.com/m04kA/SMC-SchedulingService/internal/usecase/reserve_slot"
)

const (
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgInvalidReservation = "некорректный ID удержания"
	msgNotFound           = "удержание не найдено или истекло"
)

type Handler struct {
	useCase ReleaseUseCase
	logger  Logger
}

func NewHandler(useCase ReleaseUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/event-types/{eventTypeId}/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	eventTypeID, err := strconv.ParseInt(vars["eventTypeId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /event-types/{id}/reservations/{id} - Invalid event type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}
	reservationID := vars["reservationId"]

	err = h.useCase.Release(r.Context(), &reserveSlot.ReleaseRequest{
		EventTypeID:   eventTypeID,
		ReservationID: reservationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("DELETE /event-types/{id}/reservations/{id} - Invalid reservation ID: %s", reservationID)
			handlers.RespondBadRequest(w, msgInvalidReservation)

		case errors.Is(err, reserveSlot.ErrReservationNotFound):
			h.logger.Warn("DELETE /event-types/{id}/reservations/{id} - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /event-types/{id}/reservations/{id} - Failed to release: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /event-types/{id}/reservations/{id} - Reservation released: reservation_id=%s, event_type_id=%d",
		reservationID, eventTypeID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
