package create_booking

import (
	"context"
	"time"

	"github.com/paintly/booking-service/internal/domain"
)

type fakeBookingRepo struct {
	createFn               func(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	getByIDFn              func(ctx context.Context, id string) (*domain.Booking, error)
	getByClientRequestIDFn func(ctx context.Context, clientRequestID string) (*domain.Booking, error)
	countFn                func(ctx context.Context, painterID string) (int, error)
	hasOverlappingFn       func(ctx context.Context, painterID string, rng domain.TimeRange) (bool, error)
	findNearestFn          func(ctx context.Context, rng domain.TimeRange, now time.Time, limit int) ([]*domain.OpenSlot, error)

	createCalls int
	countCalls  int
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.createCalls++
	return f.createFn(ctx, b)
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeBookingRepo) GetByClientRequestID(ctx context.Context, clientRequestID string) (*domain.Booking, error) {
	return f.getByClientRequestIDFn(ctx, clientRequestID)
}

func (f *fakeBookingRepo) CountConfirmedByPainter(ctx context.Context, painterID string) (int, error) {
	f.countCalls++
	return f.countFn(ctx, painterID)
}

func (f *fakeBookingRepo) HasOverlapping(ctx context.Context, painterID string, rng domain.TimeRange) (bool, error) {
	return f.hasOverlappingFn(ctx, painterID, rng)
}

func (f *fakeBookingRepo) FindNearestOpenSlots(ctx context.Context, rng domain.TimeRange, now time.Time, limit int) ([]*domain.OpenSlot, error) {
	return f.findNearestFn(ctx, rng, now, limit)
}

type fakeAvailabilityRepo struct {
	findCoveringWindowFn func(ctx context.Context, rng domain.TimeRange) ([]*domain.Availability, error)
}

func (f *fakeAvailabilityRepo) FindCoveringWindow(ctx context.Context, rng domain.TimeRange) ([]*domain.Availability, error) {
	return f.findCoveringWindowFn(ctx, rng)
}

// fakeTxManager исполняет функцию сразу, без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}
