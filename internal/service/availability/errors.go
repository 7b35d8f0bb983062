package availability

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("availability.service: user not found")

	// ErrNotPainter возвращается, когда слот пытается создать или смотреть не маляр
	ErrNotPainter = errors.New("availability.service: only painters can manage availability")

	// ErrOverlappingAvailability возвращается, когда слот пересекается
	// с существующим слотом этого маляра
	ErrOverlappingAvailability = errors.New("availability.service: overlapping availability slot")

	// ErrAvailabilityNotFound возвращается, когда слот не найден
	ErrAvailabilityNotFound = errors.New("availability.service: availability not found")

	// ErrAccessDenied возвращается при попытке удалить чужой слот
	ErrAccessDenied = errors.New("availability.service: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability.service: internal error")
)
