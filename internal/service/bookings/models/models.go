package models

import (
	"time"

	"github.com/paintly/booking-service/internal/domain"
)

// PainterInfo данные маляра в ответе
type PainterInfo struct {
	ID     string
	Name   string
	Rating float64
}

// BookingResponse бронирование в ответе сервиса
type BookingResponse struct {
	ID              string
	PainterID       string
	CustomerID      *string
	StartTime       time.Time
	EndTime         time.Time
	Status          string
	ClientRequestID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Painter         *PainterInfo
}

// FromDomainBooking конвертирует доменную модель в ответ
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:              b.ID,
		PainterID:       b.PainterID,
		CustomerID:      b.CustomerID,
		StartTime:       b.Range.Start,
		EndTime:         b.Range.End,
		Status:          string(b.Status),
		ClientRequestID: b.ClientRequestID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.Painter != nil {
		resp.Painter = &PainterInfo{
			ID:     b.Painter.ID,
			Name:   b.Painter.Name,
			Rating: b.Painter.Rating,
		}
	}
	return resp
}

// FromDomainBookingList конвертирует список доменных моделей в ответ
func FromDomainBookingList(list []*domain.Booking) []*BookingResponse {
	result := make([]*BookingResponse, 0, len(list))
	for _, b := range list {
		result = append(result, FromDomainBooking(b))
	}
	return result
}
