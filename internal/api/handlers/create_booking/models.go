package create_booking

import (
	"time"

	createBooking "github.com/paintly/booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StartTime       string  `json:"startTime"` // RFC3339
	EndTime         string  `json:"endTime"`   // RFC3339
	ClientRequestID *string `json:"clientRequestId,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              string  `json:"id"`
	PainterID       string  `json:"painterId"`
	PainterName     string  `json:"painterName"`
	PainterRating   float64 `json:"painterRating"`
	CustomerID      *string `json:"customerId,omitempty"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	Status          string  `json:"status"`
	ClientRequestID *string `json:"clientRequestId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// SuggestionResponse альтернативный слот в конфликтном ответе
type SuggestionResponse struct {
	PainterID   string `json:"painterId"`
	PainterName string `json:"painterName"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	GapMinutes  int    `json:"gapMinutes"`
}

// ConflictResponse тело 409 ответа с машиночитаемым кодом и альтернативами
type ConflictResponse struct {
	Error       string               `json:"error"`
	Code        string               `json:"code"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID *string) (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:      customerID,
		StartTime:       start,
		EndTime:         end,
		ClientRequestID: r.ClientRequestID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		PainterID:       resp.PainterID,
		PainterName:     resp.PainterName,
		PainterRating:   resp.PainterRating,
		CustomerID:      resp.CustomerID,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		Status:          resp.Status,
		ClientRequestID: resp.ClientRequestID,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

// FromConflictError конвертирует конфликт use case в HTTP response
func FromConflictError(conflict *createBooking.ConflictError) *ConflictResponse {
	suggestions := make([]SuggestionResponse, 0, len(conflict.Suggestions))
	for _, s := range conflict.Suggestions {
		suggestions = append(suggestions, SuggestionResponse{
			PainterID:   s.PainterID,
			PainterName: s.PainterName,
			StartTime:   s.StartTime.Format(time.RFC3339),
			EndTime:     s.EndTime.Format(time.RFC3339),
			GapMinutes:  s.GapMinutes,
		})
	}
	return &ConflictResponse{
		Error:       conflict.Message,
		Code:        conflict.Code,
		Suggestions: suggestions,
	}
}
