package models

import (
	"time"

	"github.com/paintly/booking-service/internal/domain"
)

// CreateRequest запрос на создание слота доступности
type CreateRequest struct {
	StartTime time.Time
	EndTime   time.Time
}

// FilterRequest публичный фильтр доступности
type FilterRequest struct {
	PainterID *string
	StartDate *time.Time
	EndDate   *time.Time
}

// ToDomainFilter конвертирует фильтр в доменную модель
func (r *FilterRequest) ToDomainFilter() domain.AvailabilityFilter {
	return domain.AvailabilityFilter{
		PainterID: r.PainterID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

// PainterInfo данные маляра в ответе
type PainterInfo struct {
	ID     string
	Name   string
	Rating float64
}

// AvailabilityResponse слот доступности в ответе сервиса
type AvailabilityResponse struct {
	ID        string
	PainterID string
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	Painter   *PainterInfo
}

// FromDomainAvailability конвертирует доменную модель в ответ
func FromDomainAvailability(a *domain.Availability) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		ID:        a.ID,
		PainterID: a.PainterID,
		StartTime: a.Range.Start,
		EndTime:   a.Range.End,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Painter != nil {
		resp.Painter = &PainterInfo{
			ID:     a.Painter.ID,
			Name:   a.Painter.Name,
			Rating: a.Painter.Rating,
		}
	}
	return resp
}

// FromDomainAvailabilityList конвертирует список доменных моделей в ответ
func FromDomainAvailabilityList(list []*domain.Availability) []*AvailabilityResponse {
	result := make([]*AvailabilityResponse, 0, len(list))
	for _, a := range list {
		result = append(result, FromDomainAvailability(a))
	}
	return result
}
