package get_painter_bookings

import (
	"context"

	"github.com/paintly/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetPainterBookings(ctx context.Context, painterID, requesterID string) ([]*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
