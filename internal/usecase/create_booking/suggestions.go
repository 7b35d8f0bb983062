package create_booking

import (
	"context"
	"math"
	"time"

	"github.com/paintly/booking-service/internal/domain"
)

// findAlternativeSlots ищет ближайшие свободные окна для конфликтного ответа
//
// Предложения best-effort: ошибка поиска не должна маскировать исходный
// конфликт, поэтому при ошибке возвращается пустой список
func (uc *UseCase) findAlternativeSlots(ctx context.Context, rng domain.TimeRange, now time.Time) []Suggestion {
	slots, err := uc.bookingRepo.FindNearestOpenSlots(ctx, rng, now, domain.SuggestionLimit)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to find alternative slots: %v", err)
		return []Suggestion{}
	}

	duration := rng.Duration()
	suggestions := make([]Suggestion, 0, len(slots))

	for _, slot := range slots {
		start := slot.Range.Start
		end := slot.Range.End

		// Окно длиннее запрошенной длительности усекаем до неё
		if end.Sub(start) > duration {
			end = start.Add(duration)
		}

		suggestions = append(suggestions, Suggestion{
			PainterID:   slot.PainterID,
			PainterName: slot.PainterName,
			StartTime:   start,
			EndTime:     end,
			GapMinutes:  int(math.Round(start.Sub(now).Minutes())),
		})
	}

	return suggestions
}
