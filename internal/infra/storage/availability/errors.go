package availability

import "errors"

var (
	// ErrAvailabilityNotFound возвращается, когда слот доступности не найден
	ErrAvailabilityNotFound = errors.New("availability.repository: availability not found")

	// ErrOverlappingAvailability возвращается при нарушении constraint'а
	// no_overlapping_availabilities: слот пересекается с существующим слотом маляра
	ErrOverlappingAvailability = errors.New("availability.repository: overlapping availability slot")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
