package cancel_booking

import (
	"context"

	"github.com/paintly/booking-service/internal/domain"
	"github.com/paintly/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, bookingID, requesterID string, role domain.UserRole) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
