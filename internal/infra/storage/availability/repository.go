package availability

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

// Имя exclusion constraint'а, запрещающего пересечение слотов одного маляра
const overlapConstraint = "no_overlapping_availabilities"

// Код ошибки PostgreSQL exclusion_violation
const pqExclusionViolation = "23P01"

// Repository репозиторий для работы со слотами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает слот доступности
// Пересечение с существующим слотом маляра отлавливается constraint'ом
// no_overlapping_availabilities и транслируется в ErrOverlappingAvailability
func (r *Repository) Create(ctx context.Context, a *domain.Availability) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availabilities").
		Columns("painter_id", "start_time", "end_time").
		Values(a.PainterID, a.Range.Start, a.Range.End).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if isOverlapViolation(err) {
			return nil, ErrOverlappingAvailability
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает слот доступности по ID вместе с данными маляра
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWithPainter().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	availability, err := scanAvailability(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan availability: %v", ErrScanRow, err)
	}

	return availability, nil
}

// Delete удаляет слот доступности
// Проверка владельца выполняется на уровне сервиса до вызова
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availabilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

// GetByPainterID получает все слоты маляра, отсортированные по началу
func (r *Repository) GetByPainterID(ctx context.Context, painterID string) ([]*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWithPainter().
		Where(squirrel.Eq{"a.painter_id": painterID}).
		OrderBy("a.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPainterID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPainterID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAvailabilities(rows)
}

// FindCoveringWindow получает слоты маляров, полностью покрывающие запрошенный диапазон
// Сортировка: рейтинг маляра по убыванию, затем id слота для детерминизма
func (r *Repository) FindCoveringWindow(ctx context.Context, rng domain.TimeRange) ([]*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWithPainter().
		Where(squirrel.LtOrEq{"a.start_time": rng.Start}).
		Where(squirrel.GtOrEq{"a.end_time": rng.End}).
		Where(squirrel.Eq{"u.role": domain.RolePainter}).
		OrderBy("u.rating DESC", "a.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindCoveringWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindCoveringWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAvailabilities(rows)
}

// FindByFilter получает слоты по публичному фильтру, отсортированные по началу
func (r *Repository) FindByFilter(ctx context.Context, filter domain.AvailabilityFilter) ([]*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectWithPainter().
		Where(squirrel.Eq{"u.role": domain.RolePainter})

	if filter.PainterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.painter_id": *filter.PainterID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"a.end_time": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"a.start_time": *filter.EndDate})
	}

	query, args, err := selectBuilder.OrderBy("a.start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAvailabilities(rows)
}

// DeleteEndedBefore удаляет слоты, закончившиеся раньше cutoff
// Используется фоновой задачей очистки
func (r *Repository) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availabilities").
		Where(squirrel.Lt{"end_time": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteEndedBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteEndedBefore - execute delete: %v", ErrExecQuery, err)
	}

	return result.RowsAffected()
}

// selectWithPainter базовый SELECT слотов с join'ом данных маляра
func selectWithPainter() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"a.id",
		"a.painter_id",
		"a.start_time",
		"a.end_time",
		"a.created_at",
		"a.updated_at",
		"u.name",
		"u.rating",
	).
		From("availabilities a").
		Join("users u ON u.id = a.painter_id")
}

// scanAvailability сканирует одну строку результата selectWithPainter
func scanAvailability(scan func(dest ...interface{}) error) (*domain.Availability, error) {
	var (
		a                    domain.Availability
		createdAt, updatedAt sql.NullTime
		painterName          string
		painterRating        float64
	)

	err := scan(
		&a.ID,
		&a.PainterID,
		&a.Range.Start,
		&a.Range.End,
		&createdAt,
		&updatedAt,
		&painterName,
		&painterRating,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	a.Painter = &domain.User{
		ID:     a.PainterID,
		Name:   painterName,
		Role:   domain.RolePainter,
		Rating: painterRating,
	}

	return &a, nil
}

// scanAvailabilities сканирует результаты запроса в слайс слотов
func scanAvailabilities(rows *sql.Rows) ([]*domain.Availability, error) {
	availabilities := make([]*domain.Availability, 0)

	for rows.Next() {
		a, err := scanAvailability(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAvailabilities - scan row: %v", ErrScanRow, err)
		}
		availabilities = append(availabilities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAvailabilities - rows error: %v", ErrScanRow, err)
	}

	return availabilities, nil
}

// isOverlapViolation проверяет, что ошибка - нарушение exclusion constraint'а
// на пересечение слотов. Смотрим и код, и имя constraint'а, чтобы не
// замаскировать инфраструктурную ошибку под доменный конфликт.
func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pqExclusionViolation && pqErr.Constraint == overlapConstraint
}
