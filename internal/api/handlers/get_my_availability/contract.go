package get_my_availability

import (
	"context"

	"github.com/paintly/booking-service/internal/service/availability/models"
)

type AvailabilityService interface {
	GetOwn(ctx context.Context, painterID string) ([]*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
