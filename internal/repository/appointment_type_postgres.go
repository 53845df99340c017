package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"isadental/internal/domain"
)

type AppointmentTypeRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentTypeRepository(db *pgxpool.Pool) AppointmentTypeRepository {
	return &AppointmentTypeRepo{db: db}
}

func (r *AppointmentTypeRepo) Create(ctx context.Context, dto domain.CreateAppointmentTypeDTO) (int64, error) {
	var id int64

	duration := dto.Duration
	if duration <= 0 {
		duration = domain.DefaultAppointmentDuration
	}

	query := `
		INSERT INTO appointment_types (name, description, duration, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, dto.Name, dto.Description, duration).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания типа приема: %w", err)
	}

	return id, nil
}

func (r *AppointmentTypeRepo) GetByID(ctx context.Context, id int64) (*domain.AppointmentType, error) {
	query := `
		SELECT id, name, description, COALESCE(duration, $2), created_at, updated_at
		FROM appointment_types
		WHERE id = $1
	`

	var appointmentType domain.AppointmentType
	err := r.db.QueryRow(ctx, query, id, domain.DefaultAppointmentDuration).Scan(
		&appointmentType.ID,
		&appointmentType.Name,
		&appointmentType.Description,
		&appointmentType.Duration,
		&appointmentType.CreatedAt,
		&appointmentType.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения типа приема: %w", err)
	}

	return &appointmentType, nil
}

func (r *AppointmentTypeRepo) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentTypeDTO) error {
	var sets []string
	var args []interface{}
	argPos := 1

	if dto.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *dto.Name)
		argPos++
	}
	if dto.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *dto.Description)
		argPos++
	}
	if dto.Duration != nil {
		sets = append(sets, fmt.Sprintf("duration = $%d", argPos))
		args = append(args, *dto.Duration)
		argPos++
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE appointment_types SET %s WHERE id = $%d", strings.Join(sets, ", "), argPos)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления типа приема: %w", err)
	}

	return nil
}

func (r *AppointmentTypeRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM appointment_types WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления типа приема: %w", err)
	}

	return nil
}

func (r *AppointmentTypeRepo) List(ctx context.Context) ([]domain.AppointmentType, error) {
	query := `
		SELECT id, name, description, COALESCE(duration, $1), created_at, updated_at
		FROM appointment_types
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, domain.DefaultAppointmentDuration)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка типов приема: %w", err)
	}
	defer rows.Close()

	var types []domain.AppointmentType
	for rows.Next() {
		var appointmentType domain.AppointmentType
		err := rows.Scan(
			&appointmentType.ID,
			&appointmentType.Name,
			&appointmentType.Description,
			&appointmentType.Duration,
			&appointmentType.CreatedAt,
			&appointmentType.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования типа приема: %w", err)
		}
		types = append(types, appointmentType)
	}

	return types, rows.Err()
}
