package create_availability

import (
	"context"

	"github.com/paintly/booking-service/internal/service/availability/models"
)

type AvailabilityService interface {
	Create(ctx context.Context, painterID string, req *models.CreateRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
