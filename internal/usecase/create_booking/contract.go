package create_booking

import (
	"context"
	"time"

	"github.com/paintly/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByClientRequestID(ctx context.Context, clientRequestID string) (*domain.Booking, error)
	CountConfirmedByPainter(ctx context.Context, painterID string) (int, error)
	HasOverlapping(ctx context.Context, painterID string, rng domain.TimeRange) (bool, error)
	FindNearestOpenSlots(ctx context.Context, rng domain.TimeRange, now time.Time, limit int) ([]*domain.OpenSlot, error)
}

// AvailabilityRepository интерфейс репозитория слотов доступности
type AvailabilityRepository interface {
	FindCoveringWindow(ctx context.Context, rng domain.TimeRange) ([]*domain.Availability, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
