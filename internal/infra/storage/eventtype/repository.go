package eventtype

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Repository репозиторий типов событий и их расписаний
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает тип события вместе с расписанием, недельными окнами и исключениями по датам
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.EventType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"schedule_id",
		"title",
		"slug",
		"kind",
		"description",
		"duration_minutes",
		"buffer_before_minutes",
		"buffer_after_minutes",
		"slot_interval_minutes",
		"max_attendees_per_slot",
		"requires_confirmation",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("event_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var eventType domain.EventType
	var description sql.NullString
	var maxAttendees sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&eventType.ID,
		&eventType.OwnerID,
		&eventType.ScheduleID,
		&eventType.Title,
		&eventType.Slug,
		&eventType.Kind,
		&description,
		&eventType.DurationMinutes,
		&eventType.BufferBeforeMinutes,
		&eventType.BufferAfterMinutes,
		&eventType.SlotIntervalMinutes,
		&maxAttendees,
		&eventType.RequiresConfirmation,
		&eventType.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEventTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan event type: %v", ErrScanRow, err)
	}

	if description.Valid {
		eventType.Description = &description.String
	}
	if maxAttendees.Valid {
		v := int(maxAttendees.Int64)
		eventType.MaxAttendeesPerSlot = &v
	}
	eventType.CreatedAt = createdAt.Time
	eventType.UpdatedAt = updatedAt.Time

	schedule, err := r.GetScheduleByID(ctx, eventType.ScheduleID)
	if err != nil {
		return nil, err
	}
	eventType.Schedule = schedule

	return &eventType, nil
}

// GetScheduleByID получает расписание с недельными окнами и исключениями по датам
func (r *Repository) GetScheduleByID(ctx context.Context, id int64) (*domain.AvailabilitySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"timezone",
		"min_booking_notice_minutes",
		"max_booking_days_in_future",
		"slot_interval_minutes",
		"auto_detect_invitee_timezone",
		"created_at",
		"updated_at",
	).
		From("availability_schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleByID - build select query: %v", ErrBuildQuery, err)
	}

	var schedule domain.AvailabilitySchedule
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&schedule.OwnerID,
		&schedule.Name,
		&schedule.Timezone,
		&schedule.MinBookingNoticeMinutes,
		&schedule.MaxBookingDaysInFuture,
		&schedule.SlotIntervalMinutes,
		&schedule.AutoDetectInviteeTimezone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleByID - scan schedule: %v", ErrScanRow, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	if schedule.WeeklyWindows, err = r.getWeeklyWindows(ctx, id); err != nil {
		return nil, err
	}
	if schedule.DateOverrides, err = r.getDateOverrides(ctx, id); err != nil {
		return nil, err
	}

	return &schedule, nil
}

// GetEventTypeIDsBySchedule возвращает ID всех типов событий, использующих расписание
// Бронирования любого из них занимают время владельца расписания
func (r *Repository) GetEventTypeIDsBySchedule(ctx context.Context, scheduleID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("event_types").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetEventTypeIDsBySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetEventTypeIDsBySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetEventTypeIDsBySchedule - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetEventTypeIDsBySchedule - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// UpsertDateOverride создает или заменяет исключение расписания на дату
func (r *Repository) UpsertDateOverride(ctx context.Context, scheduleID int64, override domain.DateOverride) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_date_overrides").
		Columns("schedule_id", "override_date", "is_available", "start_time", "end_time").
		Values(scheduleID, override.Date.Format(domain.DateFormat), override.IsAvailable, override.StartTime, override.EndTime).
		Suffix("ON CONFLICT (schedule_id, override_date) DO UPDATE SET " +
			"is_available = EXCLUDED.is_available, start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertDateOverride - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertDateOverride - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteDateOverride удаляет исключение, возвращая дате недельное расписание
func (r *Repository) DeleteDateOverride(ctx context.Context, scheduleID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_date_overrides").
		Where(squirrel.Eq{"schedule_id": scheduleID, "override_date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteDateOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteDateOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteDateOverride - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

func (r *Repository) getWeeklyWindows(ctx context.Context, scheduleID int64) ([]domain.WeeklyWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_of_week", "start_time", "end_time").
		From("schedule_weekly_windows").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getWeeklyWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWeeklyWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.WeeklyWindow, 0)
	for rows.Next() {
		var day int
		var w domain.WeeklyWindow
		if err := rows.Scan(&day, &w.StartTime, &w.EndTime); err != nil {
			return nil, fmt.Errorf("%w: getWeeklyWindows - scan row: %v", ErrScanRow, err)
		}
		// 0 = воскресенье, как в time.Weekday
		w.DayOfWeek = time.Weekday(day)
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWeeklyWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

func (r *Repository) getDateOverrides(ctx context.Context, scheduleID int64) ([]domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("override_date", "is_available", "start_time", "end_time").
		From("schedule_date_overrides").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("override_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getDateOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getDateOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.DateOverride, 0)
	for rows.Next() {
		var o domain.DateOverride
		var start, end sql.NullString
		if err := rows.Scan(&o.Date, &o.IsAvailable, &start, &end); err != nil {
			return nil, fmt.Errorf("%w: getDateOverrides - scan row: %v", ErrScanRow, err)
		}
		if o.StartTime, err = nullTimeString(start); err != nil {
			return nil, fmt.Errorf("%w: getDateOverrides - start_time: %v", ErrScanRow, err)
		}
		if o.EndTime, err = nullTimeString(end); err != nil {
			return nil, fmt.Errorf("%w: getDateOverrides - end_time: %v", ErrScanRow, err)
		}
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getDateOverrides - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

func nullTimeString(s sql.NullString) (*types.TimeString, error) {
	if !s.Valid {
		return nil, nil
	}
	ts, err := types.NewTimeStringFromString(s.String)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
