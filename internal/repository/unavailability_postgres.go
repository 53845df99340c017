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

type UnavailabilityRepo struct {
	db *pgxpool.Pool
}

func NewUnavailabilityRepository(db *pgxpool.Pool) UnavailabilityRepository {
	return &UnavailabilityRepo{db: db}
}

const unavailabilityColumns = `id, dentist_id, date, start_time, end_time, COALESCE(reason, ''), created_at, updated_at`

func scanUnavailability(row pgx.Row) (*domain.DentistUnavailability, error) {
	var unavailability domain.DentistUnavailability
	err := row.Scan(
		&unavailability.ID,
		&unavailability.DentistID,
		&unavailability.Date,
		&unavailability.StartTime,
		&unavailability.EndTime,
		&unavailability.Reason,
		&unavailability.CreatedAt,
		&unavailability.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &unavailability, nil
}

func (r *UnavailabilityRepo) Create(ctx context.Context, dto domain.CreateUnavailabilityDTO) (int64, error) {
	query := `
		INSERT INTO dentist_unavailabilities (dentist_id, date, start_time, end_time, reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		dto.DentistID,
		dto.Date,
		dto.StartTime,
		dto.EndTime,
		dto.Reason,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания блокировки времени врача: %w", err)
	}

	return id, nil
}

func (r *UnavailabilityRepo) GetByID(ctx context.Context, id int64) (*domain.DentistUnavailability, error) {
	query := `SELECT ` + unavailabilityColumns + ` FROM dentist_unavailabilities WHERE id = $1`

	unavailability, err := scanUnavailability(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения блокировки времени: %w", err)
	}

	return unavailability, nil
}

func (r *UnavailabilityRepo) Update(ctx context.Context, id int64, dto domain.UpdateUnavailabilityDTO) error {
	var sets []string
	var args []interface{}
	argPos := 1

	if dto.Date != nil {
		sets = append(sets, fmt.Sprintf("date = $%d", argPos))
		args = append(args, *dto.Date)
		argPos++
	}
	if dto.StartTime != nil {
		sets = append(sets, fmt.Sprintf("start_time = $%d", argPos))
		args = append(args, *dto.StartTime)
		argPos++
	}
	if dto.EndTime != nil {
		sets = append(sets, fmt.Sprintf("end_time = $%d", argPos))
		args = append(args, *dto.EndTime)
		argPos++
	}
	if dto.Reason != nil {
		sets = append(sets, fmt.Sprintf("reason = $%d", argPos))
		args = append(args, *dto.Reason)
		argPos++
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now())
	argPos++

	query := fmt.Sprintf("UPDATE dentist_unavailabilities SET %s WHERE id = $%d", strings.Join(sets, ", "), argPos)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления блокировки времени: %w", err)
	}

	return nil
}

func (r *UnavailabilityRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM dentist_unavailabilities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления блокировки времени: %w", err)
	}

	return nil
}

func (r *UnavailabilityRepo) List(ctx context.Context, filter domain.UnavailabilityFilter) ([]domain.DentistUnavailability, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.DentistID != nil {
		conditions = append(conditions, fmt.Sprintf("dentist_id = $%d", argPos))
		args = append(args, *filter.DentistID)
		argPos++
	}
	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("date = $%d", argPos))
		args = append(args, *filter.Date)
		argPos++
	}

	query := `SELECT ` + unavailabilityColumns + ` FROM dentist_unavailabilities`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date, start_time"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка блокировок: %w", err)
	}
	defer rows.Close()

	var unavailabilities []domain.DentistUnavailability
	for rows.Next() {
		unavailability, err := scanUnavailability(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования блокировки: %w", err)
		}
		unavailabilities = append(unavailabilities, *unavailability)
	}

	return unavailabilities, rows.Err()
}

func (r *UnavailabilityRepo) ListForDentistOnDate(ctx context.Context, dentistID int64, date time.Time) ([]domain.DentistUnavailability, error) {
	query := `SELECT ` + unavailabilityColumns + `
		FROM dentist_unavailabilities
		WHERE dentist_id = $1 AND date = $2
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, dentistID, date)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения блокировок врача на дату: %w", err)
	}
	defer rows.Close()

	var unavailabilities []domain.DentistUnavailability
	for rows.Next() {
		unavailability, err := scanUnavailability(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования блокировки: %w", err)
		}
		unavailabilities = append(unavailabilities, *unavailability)
	}

	return unavailabilities, rows.Err()
}
