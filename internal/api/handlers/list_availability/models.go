package list_availability

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/paintly/booking-service/internal/service/availability/models"
)

// PainterResponse данные маляра в публичной выдаче
type PainterResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ID        string           `json:"id"`
	PainterID string           `json:"painterId"`
	StartTime string           `json:"startTime"`
	EndTime   string           `json:"endTime"`
	Painter   *PainterResponse `json:"painter,omitempty"`
}

// AvailabilityListResponse список слотов
type AvailabilityListResponse struct {
	Availabilities []*AvailabilityResponse `json:"availabilities"`
}

// ParseFilter разбирает query-параметры публичного фильтра
func ParseFilter(query url.Values) (*models.FilterRequest, error) {
	filter := &models.FilterRequest{}

	if painterID := query.Get("painterId"); painterID != "" {
		if _, err := uuid.Parse(painterID); err != nil {
			return nil, fmt.Errorf("invalid painterId: %w", err)
		}
		filter.PainterID = &painterID
	}

	if startDate := query.Get("startDate"); startDate != "" {
		parsed, err := time.Parse(time.RFC3339, startDate)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		filter.StartDate = &parsed
	}

	if endDate := query.Get("endDate"); endDate != "" {
		parsed, err := time.Parse(time.RFC3339, endDate)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		filter.EndDate = &parsed
	}

	return filter, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(list []*models.AvailabilityResponse) *AvailabilityListResponse {
	result := make([]*AvailabilityResponse, 0, len(list))
	for _, a := range list {
		resp := &AvailabilityResponse{
			ID:        a.ID,
			PainterID: a.PainterID,
			StartTime: a.StartTime.Format(time.RFC3339),
			EndTime:   a.EndTime.Format(time.RFC3339),
		}
		if a.Painter != nil {
			resp.Painter = &PainterResponse{
				ID:     a.Painter.ID,
				Name:   a.Painter.Name,
				Rating: a.Painter.Rating,
			}
		}
		result = append(result, resp)
	}
	return &AvailabilityListResponse{Availabilities: result}
}
