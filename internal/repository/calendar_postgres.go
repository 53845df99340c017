package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"isadental/internal/domain"
)

type CalendarRepo struct {
	db *pgxpool.Pool
}

func NewCalendarRepository(db *pgxpool.Pool) CalendarRepository {
	return &CalendarRepo{db: db}
}

func (r *CalendarRepo) ListDaySettings(ctx context.Context) ([]domain.ClinicDaySetting, error) {
	query := `
		SELECT id, day_of_week, is_open, COALESCE(open_time, ''), COALESCE(close_time, ''), created_at, updated_at
		FROM clinic_day_settings
		ORDER BY day_of_week
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения режима работы клиники: %w", err)
	}
	defer rows.Close()

	var settings []domain.ClinicDaySetting
	for rows.Next() {
		var setting domain.ClinicDaySetting
		err := rows.Scan(
			&setting.ID,
			&setting.DayOfWeek,
			&setting.IsOpen,
			&setting.OpenTime,
			&setting.CloseTime,
			&setting.CreatedAt,
			&setting.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования режима работы: %w", err)
		}
		settings = append(settings, setting)
	}

	return settings, rows.Err()
}

func (r *CalendarRepo) GetDaySetting(ctx context.Context, dayOfWeek int) (*domain.ClinicDaySetting, error) {
	query := `
		SELECT id, day_of_week, is_open, COALESCE(open_time, ''), COALESCE(close_time, ''), created_at, updated_at
		FROM clinic_day_settings
		WHERE day_of_week = $1
	`

	var setting domain.ClinicDaySetting
	err := r.db.QueryRow(ctx, query, dayOfWeek).Scan(
		&setting.ID,
		&setting.DayOfWeek,
		&setting.IsOpen,
		&setting.OpenTime,
		&setting.CloseTime,
		&setting.CreatedAt,
		&setting.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения режима работы на день недели: %w", err)
	}

	return &setting, nil
}

func (r *CalendarRepo) UpdateDaySetting(ctx context.Context, id int64, dto domain.UpdateClinicDaySettingDTO) error {
	var sets []string
	var args []interface{}
	argPos := 1

	if dto.IsOpen != nil {
		sets = append(sets, fmt.Sprintf("is_open = $%d", argPos))
		args = append(args, *dto.IsOpen)
		argPos++
	}
	if dto.OpenTime != nil {
		sets = append(sets, fmt.Sprintf("open_time = $%d", argPos))
		args = append(args, *dto.OpenTime)
		argPos++
	}
	if dto.CloseTime != nil {
		sets = append(sets, fmt.Sprintf("close_time = $%d", argPos))
		args = append(args, *dto.CloseTime)
		argPos++
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now())
	argPos++

	query := fmt.Sprintf("UPDATE clinic_day_settings SET %s WHERE id = $%d", strings.Join(sets, ", "), argPos)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления режима работы: %w", err)
	}

	return nil
}

func (r *CalendarRepo) ListClosedDays(ctx context.Context) ([]domain.ClosedDay, error) {
	query := `
		SELECT id, date, COALESCE(reason, ''), created_at, updated_at
		FROM closed_days
		ORDER BY date
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка выходных дат: %w", err)
	}
	defer rows.Close()

	var days []domain.ClosedDay
	for rows.Next() {
		var day domain.ClosedDay
		if err := rows.Scan(&day.ID, &day.Date, &day.Reason, &day.CreatedAt, &day.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования выходной даты: %w", err)
		}
		days = append(days, day)
	}

	return days, rows.Err()
}

func (r *CalendarRepo) ClosedDayExists(ctx context.Context, date time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM closed_days WHERE date = $1)`, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки выходной даты: %w", err)
	}

	return exists, nil
}

func (r *CalendarRepo) CreateClosedDay(ctx context.Context, dto domain.CreateClosedDayDTO) (int64, error) {
	query := `
		INSERT INTO closed_days (date, reason, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, dto.Date, dto.Reason).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка добавления выходной даты: %w", err)
	}

	return id, nil
}

func (r *CalendarRepo) DeleteClosedDay(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM closed_days WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления выходной даты: %w", err)
	}

	return nil
}
