package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedules/models"
)

// Service сервис для чтения типов событий и управления исключениями расписания
type Service struct {
	eventTypeRepo EventTypeRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(eventTypeRepo EventTypeRepository, logger Logger) *Service {
	return &Service{
		eventTypeRepo: eventTypeRepo,
		logger:        logger,
	}
}

// GetEventType получает тип события вместе с расписанием
// Публичный метод - доступен всем
func (s *Service) GetEventType(ctx context.Context, id int64) (*models.EventTypeResponse, error) {
	s.logger.Info("GetEventType: fetching event type id=%d", id)

	eventType, err := s.getEventType(ctx, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainEventType(eventType), nil
}

// UpsertDateOverride создает или заменяет исключение расписания на дату
// Доступно только владельцу типа события
func (s *Service) UpsertDateOverride(ctx context.Context, req *models.UpsertOverrideRequest) (*models.EventTypeResponse, error) {
	s.logger.Info("UpsertDateOverride: event_type=%d, date=%s, available=%t by user=%d",
		req.EventTypeID, req.Date, req.IsAvailable, req.UserID)

	override, err := req.ToDomainOverride()
	if err != nil {
		s.logger.Warn("UpsertDateOverride: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	eventType, err := s.getOwnedEventType(ctx, req.EventTypeID, req.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.eventTypeRepo.UpsertDateOverride(ctx, eventType.ScheduleID, override); err != nil {
		s.logger.Error("UpsertDateOverride: repository error for schedule=%d: %v", eventType.ScheduleID, err)
		return nil, fmt.Errorf("%w: UpsertDateOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertDateOverride: saved override %s for schedule=%d", req.Date, eventType.ScheduleID)

	return s.GetEventType(ctx, req.EventTypeID)
}

// DeleteDateOverride удаляет исключение, возвращая дате недельное расписание
// Доступно только владельцу типа события
func (s *Service) DeleteDateOverride(ctx context.Context, req *models.DeleteOverrideRequest) error {
	s.logger.Info("DeleteDateOverride: event_type=%d, date=%s by user=%d", req.EventTypeID, req.Date, req.UserID)

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	eventType, err := s.getOwnedEventType(ctx, req.EventTypeID, req.UserID)
	if err != nil {
		return err
	}

	if err := s.eventTypeRepo.DeleteDateOverride(ctx, eventType.ScheduleID, date); err != nil {
		if errors.Is(err, eventTypeRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteDateOverride: no override %s for schedule=%d", req.Date, eventType.ScheduleID)
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteDateOverride: repository error for schedule=%d: %v", eventType.ScheduleID, err)
		return fmt.Errorf("%w: DeleteDateOverride - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) getEventType(ctx context.Context, id int64) (*domain.EventType, error) {
	eventType, err := s.eventTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			s.logger.Warn("getEventType: event type id=%d not found", id)
			return nil, ErrEventTypeNotFound
		}
		if errors.Is(err, eventTypeRepo.ErrScheduleNotFound) {
			s.logger.Warn("getEventType: schedule of event type id=%d not found", id)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("getEventType: repository error for event type id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return eventType, nil
}

// getOwnedEventType получает тип события и проверяет, что пользователь его владелец
func (s *Service) getOwnedEventType(ctx context.Context, id, userID int64) (*domain.EventType, error) {
	eventType, err := s.getEventType(ctx, id)
	if err != nil {
		return nil, err
	}

	if eventType.OwnerID != userID {
		s.logger.Warn("getOwnedEventType: user=%d is not the owner of event type=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return eventType, nil
}
