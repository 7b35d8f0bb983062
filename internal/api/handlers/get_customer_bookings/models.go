package get_customer_bookings

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
	ID        string           `json:"id"`
	PainterID string           `json:"painterId"`
	StartTime string           `json:"startTime"`
	EndTime   string           `json:"endTime"`
	Status    string           `json:"status"`
	CreatedAt string           `json:"createdAt"`
	Painter   *PainterResponse `json:"painter,omitempty"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(list []*models.BookingResponse) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(list))
	for _, b := range list {
		resp := &BookingResponse{
			ID:        b.ID,
			PainterID: b.PainterID,
			StartTime: b.StartTime.Format(time.RFC3339),
			EndTime:   b.EndTime.Format(time.RFC3339),
			Status:    b.Status,
			CreatedAt: b.CreatedAt.Format(time.RFC3339),
		}
		if b.Painter != nil {
			resp.Painter = &PainterResponse{
				ID:     b.Painter.ID,
				Name:   b.Painter.Name,
				Rating: b.Painter.Rating,
			}
		}
		result = append(result, resp)
	}
	return &BookingListResponse{Bookings: result}
}
