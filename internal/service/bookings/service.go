package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/paintly/booking-service/internal/domain"
	bookingRepo "github.com/paintly/booking-service/internal/infra/storage/booking"
	"github.com/paintly/booking-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Доступно без авторизации: идентификатор бронирования сам по себе секрет
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking %s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking %s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований заказчика
// Заказчик может смотреть только свою историю
func (s *Service) GetCustomerBookings(ctx context.Context, customerID, requesterID string) ([]*models.BookingResponse, error) {
	if customerID != requesterID {
		s.logger.Warn("GetCustomerBookings: user %s requested bookings of customer %s", requesterID, customerID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer %s: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetPainterBookings получает подтвержденные бронирования маляра
// Маляр может смотреть только свое расписание
func (s *Service) GetPainterBookings(ctx context.Context, painterID, requesterID string) ([]*models.BookingResponse, error) {
	if painterID != requesterID {
		s.logger.Warn("GetPainterBookings: user %s requested bookings of painter %s", requesterID, painterID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetByPainterID(ctx, painterID)
	if err != nil {
		s.logger.Error("GetPainterBookings: repository error for painter %s: %v", painterID, err)
		return nil, fmt.Errorf("%w: GetPainterBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отменить может заказчик, создавший бронирование, или маляр, которому оно назначено
// Отмена терминальна: повторная отмена возвращает ErrAlreadyCancelled
func (s *Service) Cancel(ctx context.Context, bookingID, requesterID string, role domain.UserRole) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking %s by user %s (%s)", bookingID, requesterID, role)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if err := s.checkCancelAccess(booking, requesterID, role); err != nil {
		s.logger.Warn("Cancel: access denied for user %s to booking %s", requesterID, bookingID)
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking %s is already cancelled", bookingID)
		return nil, ErrAlreadyCancelled
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: failed to cancel booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Перечитываем запись, чтобы вернуть актуальный статус и updated_at
	cancelled, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("Cancel: failed to reload booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking %s cancelled", bookingID)
	return models.FromDomainBooking(cancelled), nil
}

// checkCancelAccess проверяет право на отмену бронирования
func (s *Service) checkCancelAccess(booking *domain.Booking, requesterID string, role domain.UserRole) error {
	switch role {
	case domain.RolePainter:
		if booking.PainterID == requesterID {
			return nil
		}
	case domain.RoleCustomer:
		if booking.CustomerID != nil && *booking.CustomerID == requesterID {
			return nil
		}
	}
	return ErrAccessDenied
}
