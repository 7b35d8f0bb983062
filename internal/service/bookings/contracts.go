package bookings

import (
	"context"

	"github.com/paintly/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID string) ([]*domain.Booking, error)
	GetByPainterID(ctx context.Context, painterID string) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
