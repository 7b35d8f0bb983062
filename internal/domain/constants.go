package domain

import "time"

// Границы длительности временных диапазонов
const (
	MinRangeDuration        = 15 * time.Minute
	MaxAvailabilityDuration = 12 * time.Hour
	MaxBookingDuration      = 8 * time.Hour
)

// Параметры поиска альтернативных слотов
const (
	// SuggestionLimit максимальное количество предложений в конфликтном ответе
	SuggestionLimit = 3

	// SuggestionHorizonDays горизонт поиска альтернативных слотов в днях
	SuggestionHorizonDays = 14
)

// Веса формулы выбора маляра
// score = rating*RatingWeight - load*LoadWeight - (leftoverMinutes/100)*FitWeight
const (
	RatingWeight = 3.0
	LoadWeight   = 2.0
	FitWeight    = 1.0
)
