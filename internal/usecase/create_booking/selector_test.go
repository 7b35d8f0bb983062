package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paintly/booking-service/internal/domain"
)

func TestScorePainter(t *testing.T) {
	rng := domain.NewTimeRange(testNow.Add(time.Hour), testNow.Add(3*time.Hour))

	t.Run("exact window fit has no leftover penalty", func(t *testing.T) {
		candidate := painterAvailability("p1", 4.0, rng)

		score := scorePainter(candidate, rng, 0)
		assert.InDelta(t, 4.0*domain.RatingWeight, score, 1e-9)
	})

	t.Run("leftover minutes reduce the score", func(t *testing.T) {
		// Окно на час шире с каждой стороны: 120 минут остатка
		window := domain.NewTimeRange(rng.Start.Add(-time.Hour), rng.End.Add(time.Hour))
		candidate := painterAvailability("p1", 4.0, window)

		score := scorePainter(candidate, rng, 0)
		assert.InDelta(t, 4.0*domain.RatingWeight-120.0/100*domain.FitWeight, score, 1e-9)
	})

	t.Run("load reduces the score", func(t *testing.T) {
		candidate := painterAvailability("p1", 4.0, rng)

		score := scorePainter(candidate, rng, 3)
		assert.InDelta(t, 4.0*domain.RatingWeight-3*domain.LoadWeight, score, 1e-9)
	})
}

func TestSelectOptimalPainter(t *testing.T) {
	rng := domain.NewTimeRange(testNow.Add(time.Hour), testNow.Add(3*time.Hour))

	t.Run("single candidate skips load queries", func(t *testing.T) {
		bookings := &fakeBookingRepo{}
		uc := newTestUseCase(bookings, &fakeAvailabilityRepo{})

		only := painterAvailability("p1", 1.0, rng)
		winner, err := uc.selectOptimalPainter(context.Background(), []*domain.Availability{only}, rng)

		require.NoError(t, err)
		assert.Same(t, only, winner)
		assert.Zero(t, bookings.countCalls)
	})

	t.Run("less loaded painter beats higher rated one", func(t *testing.T) {
		loads := map[string]int{"busy": 5, "free": 0}
		bookings := &fakeBookingRepo{
			countFn: func(ctx context.Context, painterID string) (int, error) {
				return loads[painterID], nil
			},
		}
		uc := newTestUseCase(bookings, &fakeAvailabilityRepo{})

		// busy: 5.0*3 - 5*2 = 5; free: 4.0*3 - 0 = 12
		candidates := []*domain.Availability{
			painterAvailability("busy", 5.0, rng),
			painterAvailability("free", 4.0, rng),
		}

		winner, err := uc.selectOptimalPainter(context.Background(), candidates, rng)
		require.NoError(t, err)
		assert.Equal(t, "free", winner.PainterID)
	})

	t.Run("tighter window wins on equal rating and load", func(t *testing.T) {
		bookings := &fakeBookingRepo{
			countFn: func(ctx context.Context, painterID string) (int, error) {
				return 0, nil
			},
		}
		uc := newTestUseCase(bookings, &fakeAvailabilityRepo{})

		wide := painterAvailability("wide", 4.0, domain.NewTimeRange(rng.Start.Add(-2*time.Hour), rng.End.Add(2*time.Hour)))
		tight := painterAvailability("tight", 4.0, rng)

		winner, err := uc.selectOptimalPainter(context.Background(), []*domain.Availability{wide, tight}, rng)
		require.NoError(t, err)
		assert.Equal(t, "tight", winner.PainterID)
	})

	t.Run("first candidate wins a tie", func(t *testing.T) {
		bookings := &fakeBookingRepo{
			countFn: func(ctx context.Context, painterID string) (int, error) {
				return 0, nil
			},
		}
		uc := newTestUseCase(bookings, &fakeAvailabilityRepo{})

		first := painterAvailability("first", 4.0, rng)
		second := painterAvailability("second", 4.0, rng)

		winner, err := uc.selectOptimalPainter(context.Background(), []*domain.Availability{first, second}, rng)
		require.NoError(t, err)
		assert.Equal(t, "first", winner.PainterID)
	})
}
