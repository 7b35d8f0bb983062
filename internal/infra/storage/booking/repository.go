package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/paintly/booking-service/internal/domain"
	"github.com/paintly/booking-service/pkg/dbmetrics"
	"github.com/paintly/booking-service/pkg/psqlbuilder"
)

// Имена constraint'ов, нарушения которых транслируются в доменные ошибки
const (
	overlapConstraint     = "no_overlapping_bookings"
	idempotencyConstraint = "uq_bookings_client_request_id"
)

// Коды ошибок PostgreSQL
const (
	pqExclusionViolation = "23P01"
	pqUniqueViolation    = "23505"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование
// Вызывается внутри сериализуемой транзакции (через контекст); финальную защиту
// от двойного бронирования дает constraint no_overlapping_bookings - проигравшая
// гонку транзакция получает ErrOverlappingBooking. Нарушение уникальности ключа
// идемпотентности транслируется в ErrDuplicateClientRequestID, чтобы вызывающий
// код перечитал строку победителя вместо возврата ошибки.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"painter_id",
			"customer_id",
			"start_time",
			"end_time",
			"status",
			"client_request_id",
		).
		Values(
			b.PainterID,
			b.CustomerID,
			b.Range.Start,
			b.Range.End,
			b.Status,
			b.ClientRequestID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if domainErr := translateConstraintViolation(err); domainErr != nil {
			return nil, domainErr
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID вместе с данными маляра
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWithPainter().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByClientRequestID получает бронирование по ключу идемпотентности
func (r *Repository) GetByClientRequestID(ctx context.Context, clientRequestID string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWithPainter().
		Where(squirrel.Eq{"b.client_request_id": clientRequestID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientRequestID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientRequestID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerID получает бронирования клиента, отсортированные по началу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWithPainter().
		Where(squirrel.Eq{"b.customer_id": customerID}).
		OrderBy("b.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByPainterID получает подтвержденные бронирования маляра, отсортированные по началу
func (r *Repository) GetByPainterID(ctx context.Context, painterID string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWithPainter().
		Where(squirrel.Eq{"b.painter_id": painterID}).
		Where(squirrel.Eq{"b.status": domain.StatusConfirmed}).
		OrderBy("b.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPainterID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPainterID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountConfirmedByPainter считает подтвержденные бронирования маляра
// Используется как текущая загрузка при выборе маляра
func (r *Repository) CountConfirmedByPainter(ctx context.Context, painterID string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"painter_id": painterID}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedByPainter - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedByPainter - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// HasOverlapping проверяет, есть ли у маляра подтвержденное бронирование,
// пересекающееся с диапазоном (полуинтервалы: граничащие не пересекаются)
func (r *Repository) HasOverlapping(ctx context.Context, painterID string, rng domain.TimeRange) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"painter_id": painterID}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"start_time": rng.End}).
		Where(squirrel.Gt{"end_time": rng.Start}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasOverlapping - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// Cancel переводит бронирование в cancelled
// Проверка текущего статуса выполняется на уровне сервиса до вызова
func (r *Repository) Cancel(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// FindNearestOpenSlots ищет ближайшие свободные окна доступности
// Окно подходит, если оно:
//   - не пересекается ни с одним неотмененным бронированием владельца
//   - не короче запрошенной длительности
//   - начинается строго в будущем и не дальше горизонта поиска
//
// Результат отсортирован по началу окна (ближайшие первыми)
func (r *Repository) FindNearestOpenSlots(ctx context.Context, rng domain.TimeRange, now time.Time, limit int) ([]*domain.OpenSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	horizon := now.AddDate(0, 0, domain.SuggestionHorizonDays)
	durationMinutes := rng.Duration().Minutes()

	query, args, err := psqlbuilder.Select(
		"u.id",
		"u.name",
		"a.start_time",
		"a.end_time",
	).
		From("users u").
		Join("availabilities a ON a.painter_id = u.id").
		LeftJoin("bookings b ON b.painter_id = u.id"+
			" AND b.status <> 'cancelled'"+
			" AND tstzrange(b.start_time, b.end_time) && tstzrange(a.start_time, a.end_time)").
		Where("b.id IS NULL").
		Where(squirrel.Eq{"u.role": domain.RolePainter}).
		Where(squirrel.Expr("a.end_time - a.start_time >= ? * interval '1 minute'", durationMinutes)).
		Where(squirrel.Gt{"a.start_time": now}).
		Where(squirrel.Lt{"a.start_time": horizon}).
		OrderBy("a.start_time ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindNearestOpenSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindNearestOpenSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.OpenSlot, 0, limit)
	for rows.Next() {
		var slot domain.OpenSlot
		err := rows.Scan(
			&slot.PainterID,
			&slot.PainterName,
			&slot.Range.Start,
			&slot.Range.End,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: FindNearestOpenSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindNearestOpenSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// selectWithPainter базовый SELECT бронирований с join'ом данных маляра
func selectWithPainter() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"b.id",
		"b.painter_id",
		"b.customer_id",
		"b.start_time",
		"b.end_time",
		"b.status",
		"b.client_request_id",
		"b.created_at",
		"b.updated_at",
		"u.name",
		"u.rating",
	).
		From("bookings b").
		Join("users u ON u.id = b.painter_id")
}

// scanBooking сканирует одну строку результата selectWithPainter
func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	var (
		b                    domain.Booking
		createdAt, updatedAt sql.NullTime
		painterName          string
		painterRating        float64
	)

	err := scan(
		&b.ID,
		&b.PainterID,
		&b.CustomerID,
		&b.Range.Start,
		&b.Range.End,
		&b.Status,
		&b.ClientRequestID,
		&createdAt,
		&updatedAt,
		&painterName,
		&painterRating,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	b.Painter = &domain.User{
		ID:     b.PainterID,
		Name:   painterName,
		Role:   domain.RolePainter,
		Rating: painterRating,
	}

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// translateConstraintViolation транслирует нарушения constraint'ов в доменные
// ошибки. Проверяем и код, и имя constraint'а: только доменные конфликты
// переинтерпретируются, инфраструктурные ошибки всплывают как есть.
func translateConstraintViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch {
	case string(pqErr.Code) == pqExclusionViolation && pqErr.Constraint == overlapConstraint:
		return ErrOverlappingBooking
	case string(pqErr.Code) == pqUniqueViolation && pqErr.Constraint == idempotencyConstraint:
		return ErrDuplicateClientRequestID
	default:
		return nil
	}
}
