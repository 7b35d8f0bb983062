package get_painter_bookings

import (
	"time"

	"github.com/paintly/booking-service/internal/service/bookings/models"
)

// BookingResponse HTTP response model
// Расписание маляра: заказчик отдается только идентификатором
type BookingResponse struct {
	ID         string  `json:"id"`
	CustomerID *string `json:"customerId,omitempty"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(list []*models.BookingResponse) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(list))
	for _, b := range list {
		result = append(result, &BookingResponse{
			ID:         b.ID,
			CustomerID: b.CustomerID,
			StartTime:  b.StartTime.Format(time.RFC3339),
			EndTime:    b.EndTime.Format(time.RFC3339),
			Status:     b.Status,
			CreatedAt:  b.CreatedAt.Format(time.RFC3339),
		})
	}
	return &BookingListResponse{Bookings: result}
}
