package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paintly/booking-service/internal/domain"
	bookingRepo "github.com/paintly/booking-service/internal/infra/storage/booking"
	"github.com/paintly/booking-service/pkg/ptr"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestUseCase(bookings *fakeBookingRepo, availabilities *fakeAvailabilityRepo) *UseCase {
	return &UseCase{
		bookingRepo:      bookings,
		availabilityRepo: availabilities,
		txManager:        &fakeTxManager{},
		timeProvider:     &fixedTimeProvider{now: testNow},
		logger:           nopLogger{},
	}
}

func testRequest() *Request {
	return &Request{
		CustomerID: ptr.Ptr("3f1e9b2c-0000-4000-8000-000000000001"),
		StartTime:  testNow.Add(24 * time.Hour),
		EndTime:    testNow.Add(26 * time.Hour),
	}
}

func painterAvailability(painterID string, rating float64, rng domain.TimeRange) *domain.Availability {
	return &domain.Availability{
		ID:        "av-" + painterID,
		PainterID: painterID,
		Range:     rng,
		Painter: &domain.User{
			ID:     painterID,
			Name:   "Painter " + painterID,
			Role:   domain.RolePainter,
			Rating: rating,
		},
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{})

	t.Run("missing start time", func(t *testing.T) {
		req := testRequest()
		req.StartTime = time.Time{}

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty client request id", func(t *testing.T) {
		req := testRequest()
		req.ClientRequestID = ptr.Ptr("")

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("start in the past", func(t *testing.T) {
		req := testRequest()
		req.StartTime = testNow.Add(-time.Hour)
		req.EndTime = testNow.Add(time.Hour)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrStartTimeInPast)
	})

	t.Run("too long booking", func(t *testing.T) {
		req := testRequest()
		req.EndTime = req.StartTime.Add(9 * time.Hour)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrTooLong)
	})
}

func TestExecute_IdempotentReplay(t *testing.T) {
	existing := &domain.Booking{
		ID:              "booking-1",
		PainterID:       "painter-1",
		Status:          domain.StatusConfirmed,
		ClientRequestID: ptr.Ptr("req-1"),
		Range:           domain.NewTimeRange(testNow.Add(24*time.Hour), testNow.Add(26*time.Hour)),
		Painter:         &domain.User{ID: "painter-1", Name: "Anna", Rating: 4.5},
	}

	bookings := &fakeBookingRepo{
		getByClientRequestIDFn: func(ctx context.Context, clientRequestID string) (*domain.Booking, error) {
			assert.Equal(t, "req-1", clientRequestID)
			return existing, nil
		},
	}
	uc := newTestUseCase(bookings, &fakeAvailabilityRepo{})

	req := testRequest()
	req.ClientRequestID = ptr.Ptr("req-1")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "booking-1", resp.ID)
	assert.Equal(t, "Anna", resp.PainterName)
	assert.Zero(t, bookings.createCalls, "replay must not create a new booking")
}

func TestExecute_NoAvailability(t *testing.T) {
	slotStart := testNow.Add(48 * time.Hour)
	bookings := &fakeBookingRepo{
		findNearestFn: func(ctx context.Context, rng domain.TimeRange, now time.Time, limit int) ([]*domain.OpenSlot, error) {
			assert.Equal(t, domain.SuggestionLimit, limit)
			return []*domain.OpenSlot{
				{
					PainterID:   "painter-2",
					PainterName: "Boris",
					Range:       domain.NewTimeRange(slotStart, slotStart.Add(2*time.Hour)),
				},
			}, nil
		},
	}
	availabilities := &fakeAvailabilityRepo{
		findCoveringWindowFn: func(ctx context.Context, rng domain.TimeRange) ([]*domain.Availability, error) {
			return nil, nil
		},
	}
	uc := newTestUseCase(bookings, availabilities)

	_, err := uc.Execute(context.Background(), testRequest())
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, CodeNoAvailability, conflict.Code)
	assert.ErrorIs(t, err, ErrNoAvailability)
	require.Len(t, conflict.Suggestions, 1)
	assert.Equal(t, "Boris", conflict.Suggestions[0].PainterName)
}

func TestExecute_Success(t *testing.T) {
	req := testRequest()
	rng := domain.NewTimeRange(req.StartTime, req.EndTime)
	window := painterAvailability("painter-1", 4.8, domain.NewTimeRange(rng.Start.Add(-time.Hour), rng.End.Add(time.Hour)))

	bookings := &fakeBookingRepo{
		hasOverlappingFn: func(ctx context.Context, painterID string, r domain.TimeRange) (bool, error) {
			assert.Equal(t, "painter-1", painterID)
			return false, nil
		},
		createFn: func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
			assert.Equal(t, "painter-1", b.PainterID)
			assert.Equal(t, domain.StatusConfirmed, b.Status)
			assert.Equal(t, req.CustomerID, b.CustomerID)
			created := *b
			created.ID = "booking-1"
			created.CreatedAt = testNow
			created.UpdatedAt = testNow
			return &created, nil
		},
	}
	availabilities := &fakeAvailabilityRepo{
		findCoveringWindowFn: func(ctx context.Context, r domain.TimeRange) ([]*domain.Availability, error) {
			assert.True(t, r.Start.Equal(rng.Start))
			assert.True(t, r.End.Equal(rng.End))
			return []*domain.Availability{window}, nil
		},
	}
	uc := newTestUseCase(bookings, availabilities)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "booking-1", resp.ID)
	assert.Equal(t, "painter-1", resp.PainterID)
	assert.Equal(t, "Painter painter-1", resp.PainterName)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, 1, bookings.createCalls)
}

func TestExecute_PainterAlreadyBooked(t *testing.T) {
	req := testRequest()
	rng := domain.NewTimeRange(req.StartTime, req.EndTime)
	window := painterAvailability("painter-1", 4.8, rng)

	bookings := &fakeBookingRepo{
		hasOverlappingFn: func(ctx context.Context, painterID string, r domain.TimeRange) (bool, error) {
			return true, nil
		},
		findNearestFn: func(ctx context.Context, r domain.TimeRange, now time.Time, limit int) ([]*domain.OpenSlot, error) {
			return nil, nil
		},
	}
	availabilities := &fakeAvailabilityRepo{
		findCoveringWindowFn: func(ctx context.Context, r domain.TimeRange) ([]*domain.Availability, error) {
			return []*domain.Availability{window}, nil
		},
	}
	uc := newTestUseCase(bookings, availabilities)

	_, err := uc.Execute(context.Background(), req)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, CodePainterAlreadyBooked, conflict.Code)
	assert.Zero(t, bookings.createCalls)
}

func TestExecute_OverlappingBookingRace(t *testing.T) {
	req := testRequest()
	rng := domain.NewTimeRange(req.StartTime, req.EndTime)
	window := painterAvailability("painter-1", 4.8, rng)

	bookings := &fakeBookingRepo{
		hasOverlappingFn: func(ctx context.Context, painterID string, r domain.TimeRange) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
			return nil, bookingRepo.ErrOverlappingBooking
		},
		findNearestFn: func(ctx context.Context, r domain.TimeRange, now time.Time, limit int) ([]*domain.OpenSlot, error) {
			return nil, nil
		},
	}
	availabilities := &fakeAvailabilityRepo{
		findCoveringWindowFn: func(ctx context.Context, r domain.TimeRange) ([]*domain.Availability, error) {
			return []*domain.Availability{window}, nil
		},
	}
	uc := newTestUseCase(bookings, availabilities)

	_, err := uc.Execute(context.Background(), req)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, CodeOverlappingBooking, conflict.Code)
	assert.ErrorIs(t, err, ErrOverlappingBooking)
}

func TestExecute_DuplicateClientRequestIDRace(t *testing.T) {
	req := testRequest()
	req.ClientRequestID = ptr.Ptr("req-race")
	rng := domain.NewTimeRange(req.StartTime, req.EndTime)
	window := painterAvailability("painter-1", 4.8, rng)

	winner := &domain.Booking{
		ID:              "booking-winner",
		PainterID:       "painter-1",
		Status:          domain.StatusConfirmed,
		ClientRequestID: req.ClientRequestID,
		Range:           rng,
		Painter:         window.Painter,
	}

	lookups := 0
	bookings := &fakeBookingRepo{
		getByClientRequestIDFn: func(ctx context.Context, clientRequestID string) (*domain.Booking, error) {
			lookups++
			// Первые две проверки не находят запись, победитель
			// конкурирующей транзакции виден только после ошибки вставки
			if lookups <= 2 {
				return nil, bookingRepo.ErrBookingNotFound
			}
			return winner, nil
		},
		hasOverlappingFn: func(ctx context.Context, painterID string, r domain.TimeRange) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
			return nil, bookingRepo.ErrDuplicateClientRequestID
		},
	}
	availabilities := &fakeAvailabilityRepo{
		findCoveringWindowFn: func(ctx context.Context, r domain.TimeRange) ([]*domain.Availability, error) {
			return []*domain.Availability{window}, nil
		},
	}
	uc := newTestUseCase(bookings, availabilities)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "booking-winner", resp.ID)
	assert.Equal(t, 3, lookups)
}

func TestExecute_InternalErrorWrapped(t *testing.T) {
	availabilities := &fakeAvailabilityRepo{
		findCoveringWindowFn: func(ctx context.Context, r domain.TimeRange) ([]*domain.Availability, error) {
			return nil, errors.New("connection refused")
		},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, availabilities)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
