package closeddate

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/pkg/dbmetrics"
	"github.com/bitebooking/booking-engine/pkg/psqlbuilder"
)

var closedDateColumns = []string{
	"id",
	"restaurant_id",
	"closed_on",
	"reason",
	"is_recurring_yearly",
	"created_at",
}

// Repository репозиторий для работы с датами закрытия ресторанов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория дат закрытия
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByRestaurantAndDate ищет закрытие ресторана на конкретную дату.
// Сравнение по точной дате: is_recurring_yearly хранится, но на матчинг
// не влияет.
func (r *Repository) GetByRestaurantAndDate(ctx context.Context, restaurantID int64, date time.Time) (*domain.ClosedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(closedDateColumns...).
		From("closed_date").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		Where(squirrel.Eq{"closed_on": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRestaurantAndDate - build select query: %v", ErrBuildQuery, err)
	}

	closedDate, err := r.scanClosedDate(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrClosedDateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRestaurantAndDate - scan closed date: %v", ErrScanRow, err)
	}

	return closedDate, nil
}

// ListUpcoming получает все закрытия ресторана начиная с указанной даты
func (r *Repository) ListUpcoming(ctx context.Context, restaurantID int64, from time.Time) ([]*domain.ClosedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(closedDateColumns...).
		From("closed_date").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		Where(squirrel.GtOrEq{"closed_on": from}).
		OrderBy("closed_on ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	closedDates := make([]*domain.ClosedDate, 0)
	for rows.Next() {
		closedDate, err := r.scanClosedDate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListUpcoming - scan row: %v", ErrScanRow, err)
		}
		closedDates = append(closedDates, closedDate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - rows error: %v", ErrScanRow, err)
	}

	return closedDates, nil
}

// Create создает дату закрытия.
// Повторная вставка на ту же дату обновляет причину: панель владельца
// шлёт весь список дат и дубликаты здесь штатная ситуация.
func (r *Repository) Create(ctx context.Context, closedDate *domain.ClosedDate) (*domain.ClosedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("closed_date").
		Columns(
			"restaurant_id",
			"closed_on",
			"reason",
			"is_recurring_yearly",
		).
		Values(
			closedDate.RestaurantID,
			closedDate.Date,
			closedDate.Reason,
			closedDate.IsRecurringYearly,
		).
		Suffix(`ON CONFLICT (restaurant_id, closed_on) DO UPDATE SET
			reason = EXCLUDED.reason,
			is_recurring_yearly = EXCLUDED.is_recurring_yearly
		RETURNING id, created_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&closedDate.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	closedDate.CreatedAt = createdAt.Time

	return closedDate, nil
}

// Delete удаляет закрытие ресторана на дату
func (r *Repository) Delete(ctx context.Context, restaurantID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("closed_date").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		Where(squirrel.Eq{"closed_on": date}).
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
		return ErrClosedDateNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanClosedDate(row rowScanner) (*domain.ClosedDate, error) {
	var closedDate domain.ClosedDate
	var createdAt sql.NullTime

	err := row.Scan(
		&closedDate.ID,
		&closedDate.RestaurantID,
		&closedDate.Date,
		&closedDate.Reason,
		&closedDate.IsRecurringYearly,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	closedDate.CreatedAt = createdAt.Time

	return &closedDate, nil
}
