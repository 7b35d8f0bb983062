package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrOverlappingBooking возвращается при нарушении constraint'а
	// no_overlapping_bookings: маляр уже занят на пересекающийся диапазон.
	// Это ожидаемый исход проигранной гонки конкурентных бронирований.
	ErrOverlappingBooking = errors.New("booking.repository: overlapping booking for painter")

	// ErrDuplicateClientRequestID возвращается при нарушении уникальности
	// ключа идемпотентности: бронирование с этим ключом уже создано
	ErrDuplicateClientRequestID = errors.New("booking.repository: duplicate client request id")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
