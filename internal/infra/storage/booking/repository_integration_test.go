package booking_test

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/paintly/booking-service/internal/domain"
	availabilityRepo "github.com/paintly/booking-service/internal/infra/storage/availability"
	bookingRepo "github.com/paintly/booking-service/internal/infra/storage/booking"
	"github.com/paintly/booking-service/pkg/ptr"
	"github.com/paintly/booking-service/pkg/simpletxmanager"
)

// BookingRepositoryIntegrationTestSuite проверяет поведение репозиториев
// на реальном PostgreSQL, включая exclusion constraints и гонки
type BookingRepositoryIntegrationTestSuite struct {
	suite.Suite
	container      *postgres.PostgresContainer
	db             *sql.DB
	bookings       *bookingRepo.Repository
	availabilities *availabilityRepo.Repository
	txManager      *simpletxmanager.TransactionManager

	now time.Time
}

func TestBookingRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(BookingRepositoryIntegrationTestSuite))
}

func (s *BookingRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sql.Open("postgres", connStr)
	s.Require().NoError(err)
	s.db = db

	migration, err := os.ReadFile("../../../../migrations/0001_init.up.sql")
	s.Require().NoError(err)
	_, err = db.ExecContext(ctx, string(migration))
	s.Require().NoError(err)
}

func (s *BookingRepositoryIntegrationTestSuite) SetupTest() {
	_, err := s.db.Exec("TRUNCATE TABLE bookings, availabilities, users CASCADE")
	s.Require().NoError(err)

	s.bookings = bookingRepo.NewRepository(s.db)
	s.availabilities = availabilityRepo.NewRepository(s.db)
	s.txManager = simpletxmanager.NewTransactionManager(s.db)
	s.now = time.Now().UTC().Truncate(time.Second)
}

func (s *BookingRepositoryIntegrationTestSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *BookingRepositoryIntegrationTestSuite) createPainter(name string, rating float64) string {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO users (id, name, email, role, rating) VALUES ($1, $2, $3, 'painter', $4)",
		id, name, name+"@example.com", rating,
	)
	s.Require().NoError(err)
	return id
}

func (s *BookingRepositoryIntegrationTestSuite) createAvailability(painterID string, start, end time.Time) *domain.Availability {
	created, err := s.availabilities.Create(context.Background(), &domain.Availability{
		PainterID: painterID,
		Range:     domain.NewTimeRange(start, end),
	})
	s.Require().NoError(err)
	return created
}

func (s *BookingRepositoryIntegrationTestSuite) TestAvailabilityOverlapConstraint() {
	painterID := s.createPainter("Anna", 4.5)
	start := s.now.Add(24 * time.Hour)

	s.createAvailability(painterID, start, start.Add(4*time.Hour))

	// Пересекающийся слот того же маляра отклоняется constraint'ом
	_, err := s.availabilities.Create(context.Background(), &domain.Availability{
		PainterID: painterID,
		Range:     domain.NewTimeRange(start.Add(2*time.Hour), start.Add(6*time.Hour)),
	})
	s.Require().ErrorIs(err, availabilityRepo.ErrOverlappingAvailability)

	// Граничащий слот допустим: диапазоны полуоткрытые
	_, err = s.availabilities.Create(context.Background(), &domain.Availability{
		PainterID: painterID,
		Range:     domain.NewTimeRange(start.Add(4*time.Hour), start.Add(6*time.Hour)),
	})
	s.Require().NoError(err)

	// Другой маляр может объявить то же время
	otherID := s.createPainter("Boris", 4.0)
	_, err = s.availabilities.Create(context.Background(), &domain.Availability{
		PainterID: otherID,
		Range:     domain.NewTimeRange(start, start.Add(4*time.Hour)),
	})
	s.Require().NoError(err)
}

func (s *BookingRepositoryIntegrationTestSuite) TestBookingOverlapConstraint() {
	painterID := s.createPainter("Anna", 4.5)
	start := s.now.Add(24 * time.Hour)
	rng := domain.NewTimeRange(start, start.Add(2*time.Hour))

	_, err := s.bookings.Create(context.Background(), &domain.Booking{
		PainterID: painterID,
		Range:     rng,
		Status:    domain.StatusConfirmed,
	})
	s.Require().NoError(err)

	// Пересекающееся подтвержденное бронирование отклоняется
	_, err = s.bookings.Create(context.Background(), &domain.Booking{
		PainterID: painterID,
		Range:     domain.NewTimeRange(start.Add(time.Hour), start.Add(3*time.Hour)),
		Status:    domain.StatusConfirmed,
	})
	s.Require().ErrorIs(err, bookingRepo.ErrOverlappingBooking)
}

func (s *BookingRepositoryIntegrationTestSuite) TestCancelledBookingDoesNotBlockSlot() {
	painterID := s.createPainter("Anna", 4.5)
	start := s.now.Add(24 * time.Hour)
	rng := domain.NewTimeRange(start, start.Add(2*time.Hour))

	first, err := s.bookings.Create(context.Background(), &domain.Booking{
		PainterID: painterID,
		Range:     rng,
		Status:    domain.StatusConfirmed,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.bookings.Cancel(context.Background(), first.ID))

	// После отмены слот освобождается
	_, err = s.bookings.Create(context.Background(), &domain.Booking{
		PainterID: painterID,
		Range:     rng,
		Status:    domain.StatusConfirmed,
	})
	s.Require().NoError(err)

	cancelled, err := s.bookings.GetByID(context.Background(), first.ID)
	s.Require().NoError(err)
	s.Assert().Equal(domain.StatusCancelled, cancelled.Status)
}

func (s *BookingRepositoryIntegrationTestSuite) TestClientRequestIDUniqueness() {
	painterID := s.createPainter("Anna", 4.5)
	start := s.now.Add(24 * time.Hour)
	key := uuid.NewString()

	_, err := s.bookings.Create(context.Background(), &domain.Booking{
		PainterID:       painterID,
		Range:           domain.NewTimeRange(start, start.Add(time.Hour)),
		Status:          domain.StatusConfirmed,
		ClientRequestID: ptr.Ptr(key),
	})
	s.Require().NoError(err)

	// Повтор ключа идемпотентности отклоняется даже для другого диапазона
	_, err = s.bookings.Create(context.Background(), &domain.Booking{
		PainterID:       painterID,
		Range:           domain.NewTimeRange(start.Add(5*time.Hour), start.Add(6*time.Hour)),
		Status:          domain.StatusConfirmed,
		ClientRequestID: ptr.Ptr(key),
	})
	s.Require().ErrorIs(err, bookingRepo.ErrDuplicateClientRequestID)

	found, err := s.bookings.GetByClientRequestID(context.Background(), key)
	s.Require().NoError(err)
	s.Assert().NotNil(found.Painter)
}

func (s *BookingRepositoryIntegrationTestSuite) TestConcurrentBookingRace() {
	painterID := s.createPainter("Anna", 4.5)
	start := s.now.Add(24 * time.Hour)
	rng := domain.NewTimeRange(start, start.Add(2*time.Hour))

	const workers = 4
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.txManager.DoSerializable(context.Background(), func(txCtx context.Context) error {
				_, err := s.bookings.Create(txCtx, &domain.Booking{
					PainterID: painterID,
					Range:     rng,
					Status:    domain.StatusConfirmed,
				})
				return err
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	s.Assert().Equal(1, succeeded, "exactly one concurrent booking must win")
}

func (s *BookingRepositoryIntegrationTestSuite) TestFindCoveringWindowOrdering() {
	start := s.now.Add(24 * time.Hour)
	rng := domain.NewTimeRange(start.Add(time.Hour), start.Add(2*time.Hour))

	lowID := s.createPainter("Low", 3.0)
	highID := s.createPainter("High", 4.9)
	s.createAvailability(lowID, start, start.Add(4*time.Hour))
	s.createAvailability(highID, start, start.Add(4*time.Hour))

	// Слот, который не покрывает диапазон целиком, не попадает в кандидаты
	partialID := s.createPainter("Partial", 5.0)
	s.createAvailability(partialID, start.Add(90*time.Minute), start.Add(4*time.Hour))

	candidates, err := s.availabilities.FindCoveringWindow(context.Background(), rng)
	s.Require().NoError(err)
	s.Require().Len(candidates, 2)
	s.Assert().Equal(highID, candidates[0].PainterID, "candidates must be ordered by rating desc")
	s.Assert().Equal(lowID, candidates[1].PainterID)
	s.Require().NotNil(candidates[0].Painter)
	s.Assert().InDelta(4.9, candidates[0].Painter.Rating, 1e-9)
}

func (s *BookingRepositoryIntegrationTestSuite) TestFindNearestOpenSlots() {
	painterID := s.createPainter("Anna", 4.5)
	rng := domain.NewTimeRange(s.now.Add(time.Hour), s.now.Add(3*time.Hour))

	// Ближайшее свободное окно
	nearest := s.createAvailability(painterID, s.now.Add(5*time.Hour), s.now.Add(9*time.Hour))

	// Окно с пересекающимся бронированием исключается
	otherID := s.createPainter("Boris", 4.0)
	booked := s.createAvailability(otherID, s.now.Add(4*time.Hour), s.now.Add(8*time.Hour))
	_, err := s.bookings.Create(context.Background(), &domain.Booking{
		PainterID: otherID,
		Range:     domain.NewTimeRange(booked.Range.Start, booked.Range.Start.Add(time.Hour)),
		Status:    domain.StatusConfirmed,
	})
	s.Require().NoError(err)

	// Слишком короткое окно исключается
	shortID := s.createPainter("Carl", 4.8)
	s.createAvailability(shortID, s.now.Add(4*time.Hour), s.now.Add(5*time.Hour))

	// Окно за горизонтом поиска исключается
	farID := s.createPainter("Dora", 4.2)
	s.createAvailability(farID, s.now.Add(15*24*time.Hour), s.now.Add(15*24*time.Hour+4*time.Hour))

	slots, err := s.bookings.FindNearestOpenSlots(context.Background(), rng, s.now, domain.SuggestionLimit)
	s.Require().NoError(err)
	s.Require().Len(slots, 1)
	s.Assert().Equal(painterID, slots[0].PainterID)
	s.Assert().Equal("Anna", slots[0].PainterName)
	s.Assert().True(slots[0].Range.Start.Equal(nearest.Range.Start))
}
