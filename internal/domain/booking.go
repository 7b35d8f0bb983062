package domain

import "time"

// BookingStatus статус бронирования
type BookingStatus string

const (
	// StatusRequested начальный статус в схеме; публичный флоу бронирования
	// создает запись сразу в confirmed, requested достижим только прямыми
	// административными правками
	StatusRequested BookingStatus = "requested"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking подтвержденное бронирование времени маляра
// Для одного маляра не может существовать двух неотмененных бронирований
// с пересекающимися диапазонами
type Booking struct {
	ID         string
	PainterID  string
	CustomerID *string // nil для анонимных бронирований
	Range      TimeRange
	Status     BookingStatus

	// ClientRequestID ключ идемпотентности: повтор запроса с тем же ключом
	// возвращает исходное бронирование вместо создания дубликата
	ClientRequestID *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Painter заполняется репозиторием при join'е с пользователями
	Painter *User
}

// IsCancelled возвращает true, если бронирование отменено
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled возвращает true, если бронирование можно отменить
// Отмена - терминальный переход: отмененное бронирование не восстанавливается
func (b *Booking) CanBeCancelled() bool {
	return b.Status != StatusCancelled
}
