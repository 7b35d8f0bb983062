package create_booking

import "errors"

// Коды конфликтов в API ответах
const (
	CodeNoAvailability       = "NO_AVAILABILITY"
	CodePainterAlreadyBooked = "PAINTER_ALREADY_BOOKED"
	CodeOverlappingBooking   = "OVERLAPPING_BOOKING"
)

var (
	// ErrNoAvailability возвращается, когда ни один маляр не покрывает запрошенный диапазон
	ErrNoAvailability = errors.New("create_booking: no painter is available for the requested time range")

	// ErrPainterAlreadyBooked возвращается, когда выбранный маляр уже занят
	// пересекающимся бронированием
	ErrPainterAlreadyBooked = errors.New("create_booking: painter is already booked for this time range")

	// ErrOverlappingBooking возвращается, когда конкурирующая транзакция успела
	// занять диапазон до коммита
	ErrOverlappingBooking = errors.New("create_booking: overlapping booking was created concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ConflictError конфликт бронирования с машиночитаемым кодом и
// альтернативными слотами для клиента
type ConflictError struct {
	Code        string
	Message     string
	Suggestions []Suggestion
	err         error
}

// Error реализует интерфейс error
func (e *ConflictError) Error() string {
	return e.Message
}

// Unwrap позволяет проверять причину конфликта через errors.Is
func (e *ConflictError) Unwrap() error {
	return e.err
}

func newConflictError(code string, cause error, suggestions []Suggestion) *ConflictError {
	return &ConflictError{
		Code:        code,
		Message:     conflictMessage(code),
		Suggestions: suggestions,
		err:         cause,
	}
}

func conflictMessage(code string) string {
	switch code {
	case CodeNoAvailability:
		return "нет доступных маляров на запрошенное время"
	case CodePainterAlreadyBooked:
		return "маляр уже занят на запрошенное время"
	case CodeOverlappingBooking:
		return "временной слот только что заняли другим бронированием"
	default:
		return "конфликт бронирования"
	}
}
