package availability

import (
	"context"
	"time"

	"github.com/paintly/booking-service/internal/domain"
)

// AvailabilityRepository интерфейс репозитория слотов доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, a *domain.Availability) (*domain.Availability, error)
	GetByID(ctx context.Context, id string) (*domain.Availability, error)
	Delete(ctx context.Context, id string) error
	GetByPainterID(ctx context.Context, painterID string) ([]*domain.Availability, error)
	FindByFilter(ctx context.Context, filter domain.AvailabilityFilter) ([]*domain.Availability, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
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
