package get_booking

import (
	"time"

	"github.com/paintly/booking-service/internal/service/bookings/models"
)

// PainterResponse данные маляра в ответе
type PainterResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         string           `json:"id"`
	PainterID  string           `json:"painterId"`
	CustomerID *string          `json:"customerId,omitempty"`
	StartTime  string           `json:"startTime"`
	EndTime    string           `json:"endTime"`
	Status     string           `json:"status"`
	CreatedAt  string           `json:"createdAt"`
	UpdatedAt  string           `json:"updatedAt"`
	Painter    *PainterResponse `json:"painter,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.BookingResponse) *BookingResponse {
	result := &BookingResponse{
		ID:         resp.ID,
		PainterID:  resp.PainterID,
		CustomerID: resp.CustomerID,
		StartTime:  resp.StartTime.Format(time.RFC3339),
		EndTime:    resp.EndTime.Format(time.RFC3339),
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Painter != nil {
		result.Painter = &PainterResponse{
			ID:     resp.Painter.ID,
			Name:   resp.Painter.Name,
			Rating: resp.Painter.Rating,
		}
	}
	return result
}
