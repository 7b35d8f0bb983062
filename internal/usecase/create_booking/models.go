package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID      *string   // ID заказчика; nil для анонимного бронирования
	StartTime       time.Time // Начало запрошенного диапазона
	EndTime         time.Time // Конец запрошенного диапазона
	ClientRequestID *string   // Ключ идемпотентности (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              string
	PainterID       string
	PainterName     string
	PainterRating   float64
	CustomerID      *string
	StartTime       time.Time
	EndTime         time.Time
	Status          string
	ClientRequestID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Suggestion альтернативный слот в конфликтном ответе
type Suggestion struct {
	PainterID   string
	PainterName string
	StartTime   time.Time
	EndTime     time.Time
	GapMinutes  int
}
