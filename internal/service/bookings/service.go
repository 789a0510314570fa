package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	eventTypeRepo EventTypeRepository
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	eventTypeRepo EventTypeRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		eventTypeRepo: eventTypeRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование
// или если он является владельцем типа события
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetEventTypeBookings получает бронирования типа события с фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых бронирований
// Доступно только владельцу типа события
func (s *Service) GetEventTypeBookings(ctx context.Context, req *models.GetEventTypeBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetEventTypeBookings: fetching bookings for event_type=%d, user=%d", req.EventTypeID, req.UserID)
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info("%s", logMsg)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	// Проверяем права владельца
	if err := s.checkOwnerAccess(ctx, req.EventTypeID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetEventTypeBookings: invalid filter for event_type=%d: %v", req.EventTypeID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetEventTypeBookings: repository error for event_type=%d: %v", req.EventTypeID, err)
		return nil, fmt.Errorf("%w: GetEventTypeBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetEventTypeBookings: successfully fetched %d bookings for event_type=%d", len(bookings), req.EventTypeID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отменить может участник бронирования или владелец типа события.
// Строка бронирования блокируется на время проверки и обновления.
// Отменённое бронирование перестаёт учитываться при расчёте доступности.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getBooking(ctx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		// Проверяем, можно ли отменить бронирование
		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.checkUserAccess(ctx, booking, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return err
		}

		if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
		return nil
	})
}

// Confirm подтверждает ожидающее бронирование
// Доступно только владельцу типа события
func (s *Service) Confirm(ctx context.Context, bookingID int64, userID int64) error {
	s.logger.Info("Confirm: confirming booking id=%d by user=%d", bookingID, userID)

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getBooking(ctx, "Confirm", bookingID)
		if err != nil {
			return err
		}

		if err := s.checkOwnerAccess(ctx, booking.EventTypeID, userID); err != nil {
			return err
		}

		if booking.Status != domain.StatusPending {
			s.logger.Warn("Confirm: booking id=%d has status=%s", bookingID, booking.Status)
			return ErrCannotConfirm
		}

		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusConfirmed); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Confirm: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Confirm: successfully confirmed booking id=%d", bookingID)
		return nil
	})
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь может видеть своё бронирование или если он владелец типа события
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	// Если пользователь участник бронирования - доступ разрешён
	if booking.UserID == userID {
		return nil
	}

	if err := s.checkOwnerAccess(ctx, booking.EventTypeID, userID); err != nil {
		if errors.Is(err, ErrInternal) {
			return err
		}
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем типа события
func (s *Service) checkOwnerAccess(ctx context.Context, eventTypeID int64, userID int64) error {
	eventType, err := s.eventTypeRepo.GetByID(ctx, eventTypeID)
	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			s.logger.Warn("checkOwnerAccess: event type id=%d not found", eventTypeID)
			return ErrEventTypeNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get event type id=%d: %v", eventTypeID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get event type: %v", ErrInternal, err)
	}

	if eventType.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of event type=%d", userID, eventTypeID)
		return ErrAccessDenied
	}

	return nil
}
