package domain

// OpenSlot свободное окно доступности, найденное для альтернативных предложений
// Окно целиком не занято ни одним неотмененным бронированием
type OpenSlot struct {
	PainterID   string
	PainterName string
	Range       TimeRange
}

// Suggestion альтернативный слот, предлагаемый в конфликтном ответе
// Если окно длиннее запрошенной длительности, предложение усечено до неё
type Suggestion struct {
	PainterID   string
	PainterName string
	Range       TimeRange
	GapMinutes  int // минут от текущего момента до начала предложения
}
