package list_availability

import (
	"context"

	"github.com/paintly/booking-service/internal/service/availability/models"
)

type AvailabilityService interface {
	GetByFilter(ctx context.Context, req *models.FilterRequest) ([]*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
