package schedule

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

var scheduleColumns = []string{
	"id",
	"restaurant_id",
	"day_of_week",
	"is_open",
	"open_time",
	"close_time",
	"lunch_start",
	"lunch_end",
	"dinner_start",
	"dinner_end",
	"max_capacity",
	"max_capacity_per_slot",
	"slot_interval_minutes",
	"min_advance_hours",
	"max_advance_days",
	"accepts_online_bookings",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с недельным расписанием ресторанов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByRestaurantAndDay получает расписание ресторана на день недели.
// На пару (ресторан, день) существует не больше одной строки.
func (r *Repository) GetByRestaurantAndDay(ctx context.Context, restaurantID int64, day time.Weekday) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("weekly_schedule").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		Where(squirrel.Eq{"day_of_week": domain.DayOfWeekName(day)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRestaurantAndDay - build select query: %v", ErrBuildQuery, err)
	}

	schedule, err := r.scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRestaurantAndDay - scan schedule: %v", ErrScanRow, err)
	}

	return schedule, nil
}

// ListByRestaurant получает все настроенные дни ресторана (до семи строк)
func (r *Repository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("weekly_schedule").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByRestaurant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRestaurant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.WeeklySchedule, 0)
	for rows.Next() {
		schedule, err := r.scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByRestaurant - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByRestaurant - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// Upsert создает или обновляет расписание на день.
// Уникальность по (restaurant_id, day_of_week) обеспечивает ON CONFLICT.
func (r *Repository) Upsert(ctx context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_schedule").
		Columns(
			"restaurant_id",
			"day_of_week",
			"is_open",
			"open_time",
			"close_time",
			"lunch_start",
			"lunch_end",
			"dinner_start",
			"dinner_end",
			"max_capacity",
			"max_capacity_per_slot",
			"slot_interval_minutes",
			"min_advance_hours",
			"max_advance_days",
			"accepts_online_bookings",
			"notes",
		).
		Values(
			schedule.RestaurantID,
			domain.DayOfWeekName(schedule.DayOfWeek),
			schedule.IsOpen,
			schedule.OpenTime,
			schedule.CloseTime,
			schedule.LunchStart,
			schedule.LunchEnd,
			schedule.DinnerStart,
			schedule.DinnerEnd,
			schedule.MaxCapacity,
			schedule.MaxCapacityPerSlot,
			schedule.SlotIntervalMinutes,
			schedule.MinAdvanceHours,
			schedule.MaxAdvanceDays,
			schedule.AcceptsOnlineBookings,
			schedule.Notes,
		).
		Suffix(`ON CONFLICT (restaurant_id, day_of_week) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			lunch_start = EXCLUDED.lunch_start,
			lunch_end = EXCLUDED.lunch_end,
			dinner_start = EXCLUDED.dinner_start,
			dinner_end = EXCLUDED.dinner_end,
			max_capacity = EXCLUDED.max_capacity,
			max_capacity_per_slot = EXCLUDED.max_capacity_per_slot,
			slot_interval_minutes = EXCLUDED.slot_interval_minutes,
			min_advance_hours = EXCLUDED.min_advance_hours,
			max_advance_days = EXCLUDED.max_advance_days,
			accepts_online_bookings = EXCLUDED.accepts_online_bookings,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// DeleteByDay удаляет расписание ресторана на день недели
func (r *Repository) DeleteByDay(ctx context.Context, restaurantID int64, day time.Weekday) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("weekly_schedule").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		Where(squirrel.Eq{"day_of_week": domain.DayOfWeekName(day)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByDay - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByDay - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByDay - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSchedule(row rowScanner) (*domain.WeeklySchedule, error) {
	var schedule domain.WeeklySchedule
	var dayName string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&schedule.ID,
		&schedule.RestaurantID,
		&dayName,
		&schedule.IsOpen,
		&schedule.OpenTime,
		&schedule.CloseTime,
		&schedule.LunchStart,
		&schedule.LunchEnd,
		&schedule.DinnerStart,
		&schedule.DinnerEnd,
		&schedule.MaxCapacity,
		&schedule.MaxCapacityPerSlot,
		&schedule.SlotIntervalMinutes,
		&schedule.MinAdvanceHours,
		&schedule.MaxAdvanceDays,
		&schedule.AcceptsOnlineBookings,
		&schedule.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	day, ok := domain.ParseDayOfWeek(dayName)
	if !ok {
		return nil, fmt.Errorf("unknown day_of_week value %q", dayName)
	}

	schedule.DayOfWeek = day
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}
