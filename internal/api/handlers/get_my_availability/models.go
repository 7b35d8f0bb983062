package get_my_availability

import (
	"time"

	"github.com/paintly/booking-service/internal/service/availability/models"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ID        string `json:"id"`
	PainterID string `json:"painterId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// AvailabilityListResponse список слотов
type AvailabilityListResponse struct {
	Availabilities []*AvailabilityResponse `json:"availabilities"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(list []*models.AvailabilityResponse) *AvailabilityListResponse {
	result := make([]*AvailabilityResponse, 0, len(list))
	for _, a := range list {
		result = append(result, &AvailabilityResponse{
			ID:        a.ID,
			PainterID: a.PainterID,
			StartTime: a.StartTime.Format(time.RFC3339),
			EndTime:   a.EndTime.Format(time.RFC3339),
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
			UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
		})
	}
	return &AvailabilityListResponse{Availabilities: result}
}
