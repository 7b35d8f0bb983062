package create_availability

import (
	"time"

	"github.com/paintly/booking-service/internal/service/availability/models"
)

// CreateAvailabilityRequest HTTP request model
type CreateAvailabilityRequest struct {
	StartTime string `json:"startTime"` // RFC3339
	EndTime   string `json:"endTime"`   // RFC3339
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ID        string `json:"id"`
	PainterID string `json:"painterId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateAvailabilityRequest) ToServiceRequest() (*models.CreateRequest, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.CreateRequest{StartTime: start, EndTime: end}, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AvailabilityResponse) *AvailabilityResponse {
	return &AvailabilityResponse{
		ID:        resp.ID,
		PainterID: resp.PainterID,
		StartTime: resp.StartTime.Format(time.RFC3339),
		EndTime:   resp.EndTime.Format(time.RFC3339),
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
