package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paintly/booking-service/internal/domain"
	bookingRepo "github.com/paintly/booking-service/internal/infra/storage/booking"
	"github.com/paintly/booking-service/pkg/ptr"
)

type fakeBookingRepo struct {
	getByIDFn         func(ctx context.Context, id string) (*domain.Booking, error)
	getByCustomerIDFn func(ctx context.Context, customerID string) ([]*domain.Booking, error)
	getByPainterIDFn  func(ctx context.Context, painterID string) ([]*domain.Booking, error)
	cancelFn          func(ctx context.Context, id string) error
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeBookingRepo) GetByCustomerID(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	return f.getByCustomerIDFn(ctx, customerID)
}

func (f *fakeBookingRepo) GetByPainterID(ctx context.Context, painterID string) ([]*domain.Booking, error) {
	return f.getByPainterIDFn(ctx, painterID)
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id string) error {
	return f.cancelFn(ctx, id)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:         "booking-1",
		PainterID:  "painter-1",
		CustomerID: ptr.Ptr("customer-1"),
		Status:     domain.StatusConfirmed,
	}
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := &fakeBookingRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
				return confirmedBooking(), nil
			},
		}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.GetByID(context.Background(), "booking-1")
		require.NoError(t, err)
		assert.Equal(t, "booking-1", resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeBookingRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
				return nil, bookingRepo.ErrBookingNotFound
			},
		}
		svc := NewService(repo, nopLogger{})

		_, err := svc.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetCustomerBookings_AccessControl(t *testing.T) {
	repo := &fakeBookingRepo{
		getByCustomerIDFn: func(ctx context.Context, customerID string) ([]*domain.Booking, error) {
			return []*domain.Booking{confirmedBooking()}, nil
		},
	}
	svc := NewService(repo, nopLogger{})

	t.Run("own history", func(t *testing.T) {
		resp, err := svc.GetCustomerBookings(context.Background(), "customer-1", "customer-1")
		require.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("foreign history is forbidden", func(t *testing.T) {
		_, err := svc.GetCustomerBookings(context.Background(), "customer-1", "customer-2")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetPainterBookings_AccessControl(t *testing.T) {
	repo := &fakeBookingRepo{
		getByPainterIDFn: func(ctx context.Context, painterID string) ([]*domain.Booking, error) {
			return []*domain.Booking{confirmedBooking()}, nil
		},
	}
	svc := NewService(repo, nopLogger{})

	t.Run("own schedule", func(t *testing.T) {
		resp, err := svc.GetPainterBookings(context.Background(), "painter-1", "painter-1")
		require.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("foreign schedule is forbidden", func(t *testing.T) {
		_, err := svc.GetPainterBookings(context.Background(), "painter-1", "painter-2")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestCancel(t *testing.T) {
	t.Run("customer cancels own booking", func(t *testing.T) {
		cancelled := false
		repo := &fakeBookingRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
				if cancelled {
					b := confirmedBooking()
					b.Status = domain.StatusCancelled
					return b, nil
				}
				return confirmedBooking(), nil
			},
			cancelFn: func(ctx context.Context, id string) error {
				cancelled = true
				return nil
			},
		}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Cancel(context.Background(), "booking-1", "customer-1", domain.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	})

	t.Run("painter cancels assigned booking", func(t *testing.T) {
		repo := &fakeBookingRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
				return confirmedBooking(), nil
			},
			cancelFn: func(ctx context.Context, id string) error {
				return nil
			},
		}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Cancel(context.Background(), "booking-1", "painter-1", domain.RolePainter)
		require.NoError(t, err)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		repo := &fakeBookingRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
				return confirmedBooking(), nil
			},
		}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Cancel(context.Background(), "booking-1", "customer-2", domain.RoleCustomer)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("painter cannot cancel foreign booking", func(t *testing.T) {
		repo := &fakeBookingRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
				return confirmedBooking(), nil
			},
		}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Cancel(context.Background(), "booking-1", "painter-2", domain.RolePainter)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("repeated cancel is rejected", func(t *testing.T) {
		repo := &fakeBookingRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
				b := confirmedBooking()
				b.Status = domain.StatusCancelled
				return b, nil
			},
		}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Cancel(context.Background(), "booking-1", "customer-1", domain.RoleCustomer)
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})

	t.Run("anonymous booking cannot be cancelled by customer", func(t *testing.T) {
		repo := &fakeBookingRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
				b := confirmedBooking()
				b.CustomerID = nil
				return b, nil
			},
		}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Cancel(context.Background(), "booking-1", "customer-1", domain.RoleCustomer)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
