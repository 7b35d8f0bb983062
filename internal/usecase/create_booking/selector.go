package create_booking

import (
	"context"
	"fmt"

	"github.com/paintly/booking-service/internal/domain"
)

// selectOptimalPainter выбирает лучшего маляра среди кандидатов, чьи окна
// покрывают запрошенный диапазон
//
// score = rating * 3 - load * 2 - leftoverMinutes / 100
//
// где load - количество подтвержденных бронирований маляра на момент выбора,
// а leftover - суммарное неиспользованное время окна вокруг запрошенного
// диапазона. При равном счете побеждает кандидат, пришедший раньше
// (кандидаты отсортированы по рейтингу)
func (uc *UseCase) selectOptimalPainter(
	ctx context.Context,
	candidates []*domain.Availability,
	rng domain.TimeRange,
) (*domain.Availability, error) {
	// Единственному кандидату не нужен скоринг и запросы загрузки
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	var (
		best      *domain.Availability
		bestScore float64
	)

	for _, candidate := range candidates {
		load, err := uc.bookingRepo.CountConfirmedByPainter(ctx, candidate.PainterID)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to count painter load: %v", ErrInternal, err)
		}

		score := scorePainter(candidate, rng, load)

		uc.logger.Info("CreateBooking: candidate painter=%s rating=%.2f load=%d score=%.4f",
			candidate.PainterID, candidate.Painter.Rating, load, score)

		if best == nil || score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	return best, nil
}

// scorePainter вычисляет счет кандидата для запрошенного диапазона
func scorePainter(candidate *domain.Availability, rng domain.TimeRange, load int) float64 {
	leftover := candidate.Range.End.Sub(rng.End) + rng.Start.Sub(candidate.Range.Start)
	leftoverMinutes := leftover.Minutes()

	rating := 0.0
	if candidate.Painter != nil {
		rating = candidate.Painter.Rating
	}

	return rating*domain.RatingWeight -
		float64(load)*domain.LoadWeight -
		leftoverMinutes/100*domain.FitWeight
}
