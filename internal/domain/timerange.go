package domain

import (
	"errors"
	"time"
)

// Ошибки валидации временного диапазона
var (
	// ErrInvalidRange возвращается, когда начало диапазона не раньше конца
	ErrInvalidRange = errors.New("domain: start time must be before end time")

	// ErrStartTimeInPast возвращается, когда начало диапазона в прошлом
	ErrStartTimeInPast = errors.New("domain: start time must be in the future")

	// ErrTooShort возвращается, когда диапазон короче минимальной длительности профиля
	ErrTooShort = errors.New("domain: time range is too short")

	// ErrTooLong возвращается, когда диапазон длиннее максимальной длительности профиля
	ErrTooLong = errors.New("domain: time range is too long")
)

// TimeRange полуинтервал времени [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange создает временной диапазон
func NewTimeRange(start, end time.Time) TimeRange {
	return TimeRange{Start: start, End: end}
}

// Duration возвращает длительность диапазона
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Overlaps проверяет пересечение двух полуинтервалов
// Граничащие диапазоны (конец одного равен началу другого) НЕ пересекаются
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains проверяет, что диапазон полностью покрывает other
func (r TimeRange) Contains(other TimeRange) bool {
	return !r.Start.After(other.Start) && !r.End.Before(other.End)
}

// ValidationProfile границы длительности диапазона
// Разные операции допускают разные длительности: слот доступности может быть
// длиннее, чем одно бронирование
type ValidationProfile struct {
	MinDuration time.Duration
	MaxDuration time.Duration
}

var (
	// AvailabilityProfile границы для слота доступности маляра
	AvailabilityProfile = ValidationProfile{
		MinDuration: MinRangeDuration,
		MaxDuration: MaxAvailabilityDuration,
	}

	// BookingProfile границы для бронирования
	BookingProfile = ValidationProfile{
		MinDuration: MinRangeDuration,
		MaxDuration: MaxBookingDuration,
	}
)

// Validate проверяет диапазон относительно текущего времени и профиля
// Чистая функция: без побочных эффектов, now передается явно
func (r TimeRange) Validate(now time.Time, profile ValidationProfile) error {
	if !r.Start.Before(r.End) {
		return ErrInvalidRange
	}
	if r.Start.Before(now) {
		return ErrStartTimeInPast
	}
	if r.Duration() < profile.MinDuration {
		return ErrTooShort
	}
	if r.Duration() > profile.MaxDuration {
		return ErrTooLong
	}
	return nil
}
