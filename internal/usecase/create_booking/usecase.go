package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/paintly/booking-service/internal/domain"
	bookingRepo "github.com/paintly/booking-service/internal/infra/storage/booking"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Выбор маляра и финальная вставка выполняются в сериализуемой транзакции;
// exclusion constraint в БД гарантирует отсутствие пересекающихся
// бронирований даже при гонке конкурирующих запросов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: range=%s - %s, customer=%v",
		req.StartTime.Format("2006-01-02 15:04"), req.EndTime.Format("2006-01-02 15:04"), req.CustomerID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация временного диапазона доменным профилем бронирования
	now := uc.timeProvider.Now()
	rng := domain.NewTimeRange(req.StartTime, req.EndTime)
	if err := rng.Validate(now, domain.BookingProfile); err != nil {
		uc.logger.Warn("CreateBooking: time range validation failed: %v", err)
		return nil, err
	}

	// 3. Идемпотентность: повтор запроса с тем же ключом возвращает
	// исходное бронирование
	if req.ClientRequestID != nil {
		existing, err := uc.bookingRepo.GetByClientRequestID(ctx, *req.ClientRequestID)
		if err == nil {
			uc.logger.Info("CreateBooking: idempotent replay for clientRequestId=%s, booking=%s",
				*req.ClientRequestID, existing.ID)
			return toResponse(existing), nil
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: idempotency lookup failed: %v", err)
			return nil, fmt.Errorf("%w: idempotency lookup failed: %v", ErrInternal, err)
		}
	}

	// 4. Ищем маляров, чьи окна доступности целиком покрывают диапазон
	candidates, err := uc.availabilityRepo.FindCoveringWindow(ctx, rng)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to find covering windows: %v", err)
		return nil, fmt.Errorf("%w: failed to find covering windows: %v", ErrInternal, err)
	}
	if len(candidates) == 0 {
		uc.logger.Warn("CreateBooking: no availability covers requested range")
		return nil, newConflictError(CodeNoAvailability, ErrNoAvailability, uc.findAlternativeSlots(ctx, rng, now))
	}

	// 5. Выбираем оптимального маляра по рейтингу, загрузке и плотности окна
	winner, err := uc.selectOptimalPainter(ctx, candidates, rng)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: selected painter=%s", winner.PainterID)

	// 6. Быстрая проверка занятости до открытия транзакции
	booked, err := uc.bookingRepo.HasOverlapping(ctx, winner.PainterID, rng)
	if err != nil {
		uc.logger.Error("CreateBooking: overlap check failed: %v", err)
		return nil, fmt.Errorf("%w: overlap check failed: %v", ErrInternal, err)
	}
	if booked {
		uc.logger.Warn("CreateBooking: painter=%s is already booked", winner.PainterID)
		return nil, newConflictError(CodePainterAlreadyBooked, ErrPainterAlreadyBooked, uc.findAlternativeSlots(ctx, rng, now))
	}

	// 7. Создаем бронирование в сериализуемой транзакции
	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Повторная проверка идемпотентности внутри транзакции:
		// конкурирующий запрос с тем же ключом мог успеть закоммититься
		if req.ClientRequestID != nil {
			existing, err := uc.bookingRepo.GetByClientRequestID(txCtx, *req.ClientRequestID)
			if err == nil {
				result = existing
				return nil
			}
			if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: idempotency lookup failed: %v", ErrInternal, err)
			}
		}

		// 7.2. Вставка; exclusion constraint отклонит пересекающиеся диапазоны
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			PainterID:       winner.PainterID,
			CustomerID:      req.CustomerID,
			Range:           rng,
			Status:          domain.StatusConfirmed,
			ClientRequestID: req.ClientRequestID,
		})
		if err != nil {
			return err
		}

		created.Painter = winner.Painter
		result = created
		return nil
	})

	if err != nil {
		// Гонка по ключу идемпотентности: конкурент закоммитил первым,
		// возвращаем его бронирование
		if errors.Is(err, bookingRepo.ErrDuplicateClientRequestID) && req.ClientRequestID != nil {
			existing, lookupErr := uc.bookingRepo.GetByClientRequestID(ctx, *req.ClientRequestID)
			if lookupErr != nil {
				uc.logger.Error("CreateBooking: failed to load booking after duplicate key: %v", lookupErr)
				return nil, fmt.Errorf("%w: failed to load booking after duplicate key: %v", ErrInternal, lookupErr)
			}
			uc.logger.Info("CreateBooking: idempotent replay after duplicate key, booking=%s", existing.ID)
			return toResponse(existing), nil
		}

		// Гонка по диапазону: конкурент занял время до нашего коммита
		if errors.Is(err, bookingRepo.ErrOverlappingBooking) {
			uc.logger.Warn("CreateBooking: overlapping booking committed concurrently for painter=%s", winner.PainterID)
			return nil, newConflictError(CodeOverlappingBooking, ErrOverlappingBooking, uc.findAlternativeSlots(ctx, rng, now))
		}

		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, painter=%s", result.ID, result.PainterID)

	return toResponse(result), nil
}

// toResponse конвертирует доменную модель в response
func toResponse(b *domain.Booking) *Response {
	resp := &Response{
		ID:              b.ID,
		PainterID:       b.PainterID,
		CustomerID:      b.CustomerID,
		StartTime:       b.Range.Start,
		EndTime:         b.Range.End,
		Status:          string(b.Status),
		ClientRequestID: b.ClientRequestID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.Painter != nil {
		resp.PainterName = b.Painter.Name
		resp.PainterRating = b.Painter.Rating
	}
	return resp
}
