package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/paintly/booking-service/internal/domain"
	availabilityRepo "github.com/paintly/booking-service/internal/infra/storage/availability"
	userRepo "github.com/paintly/booking-service/internal/infra/storage/user"
	"github.com/paintly/booking-service/internal/service/availability/models"
)

// Service сервис управления слотами доступности маляров
type Service struct {
	availabilityRepo AvailabilityRepository
	userRepo         UserRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	userRepo UserRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		userRepo:         userRepo,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// Create создает слот доступности для маляра
func (s *Service) Create(ctx context.Context, painterID string, req *models.CreateRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Create: Creating availability for painter %s: %s - %s",
		painterID, req.StartTime.Format("2006-01-02 15:04"), req.EndTime.Format("2006-01-02 15:04"))

	rng := domain.NewTimeRange(req.StartTime, req.EndTime)
	if err := rng.Validate(s.timeProvider.Now(), domain.AvailabilityProfile); err != nil {
		s.logger.Warn("Create: Invalid time range for painter %s: %v", painterID, err)
		return nil, err
	}

	painter, err := s.userRepo.GetByID(ctx, painterID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Create: Failed to get painter %s: %v", painterID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	if !painter.IsPainter() {
		s.logger.Warn("Create: User %s is not a painter", painterID)
		return nil, ErrNotPainter
	}

	created, err := s.availabilityRepo.Create(ctx, &domain.Availability{
		PainterID: painterID,
		Range:     rng,
	})
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrOverlappingAvailability) {
			s.logger.Warn("Create: Overlapping availability for painter %s", painterID)
			return nil, ErrOverlappingAvailability
		}
		s.logger.Error("Create: Failed to create availability for painter %s: %v", painterID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	created.Painter = painter

	s.logger.Info("Create: Availability %s created for painter %s", created.ID, painterID)

	return models.FromDomainAvailability(created), nil
}

// GetOwn возвращает слоты доступности самого маляра
func (s *Service) GetOwn(ctx context.Context, painterID string) ([]*models.AvailabilityResponse, error) {
	painter, err := s.userRepo.GetByID(ctx, painterID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetOwn: Failed to get painter %s: %v", painterID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	if !painter.IsPainter() {
		return nil, ErrNotPainter
	}

	list, err := s.availabilityRepo.GetByPainterID(ctx, painterID)
	if err != nil {
		s.logger.Error("GetOwn: Failed to list availabilities for painter %s: %v", painterID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAvailabilityList(list), nil
}

// GetByFilter возвращает слоты доступности по публичному фильтру
func (s *Service) GetByFilter(ctx context.Context, req *models.FilterRequest) ([]*models.AvailabilityResponse, error) {
	list, err := s.availabilityRepo.FindByFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetByFilter: Failed to list availabilities: %v", err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAvailabilityList(list), nil
}

// Delete удаляет слот доступности; разрешено только владельцу
func (s *Service) Delete(ctx context.Context, availabilityID, requesterID string) error {
	s.logger.Info("Delete: Deleting availability %s by user %s", availabilityID, requesterID)

	slot, err := s.availabilityRepo.GetByID(ctx, availabilityID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			return ErrAvailabilityNotFound
		}
		s.logger.Error("Delete: Failed to get availability %s: %v", availabilityID, err)
		return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if slot.PainterID != requesterID {
		s.logger.Warn("Delete: User %s tried to delete availability %s owned by %s",
			requesterID, availabilityID, slot.PainterID)
		return ErrAccessDenied
	}

	if err := s.availabilityRepo.Delete(ctx, availabilityID); err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			return ErrAvailabilityNotFound
		}
		s.logger.Error("Delete: Failed to delete availability %s: %v", availabilityID, err)
		return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: Availability %s deleted", availabilityID)

	return nil
}
