package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"isadental/internal/domain"
)

type SpecialtyRepo struct {
	db *pgxpool.Pool
}

func NewSpecialtyRepository(db *pgxpool.Pool) SpecialtyRepository {
	return &SpecialtyRepo{db: db}
}

func (r *SpecialtyRepo) Create(ctx context.Context, dto domain.CreateSpecialtyDTO) (int64, error) {
	var id int64

	query := `
		INSERT INTO specialties (name, description, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, dto.Name, dto.Description).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания специализации: %w", err)
	}

	return id, nil
}

func (r *SpecialtyRepo) GetByID(ctx context.Context, id int64) (*domain.Specialty, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM specialties
		WHERE id = $1
	`

	var specialty domain.Specialty
	err := r.db.QueryRow(ctx, query, id).Scan(
		&specialty.ID,
		&specialty.Name,
		&specialty.Description,
		&specialty.CreatedAt,
		&specialty.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения специализации: %w", err)
	}

	return &specialty, nil
}

func (r *SpecialtyRepo) Update(ctx context.Context, id int64, dto domain.UpdateSpecialtyDTO) error {
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

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE specialties SET %s WHERE id = $%d", strings.Join(sets, ", "), argPos)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления специализации: %w", err)
	}

	return nil
}

func (r *SpecialtyRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM specialties WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления специализации: %w", err)
	}

	return nil
}

func (r *SpecialtyRepo) List(ctx context.Context) ([]domain.Specialty, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM specialties
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка специализаций: %w", err)
	}
	defer rows.Close()

	var specialties []domain.Specialty
	for rows.Next() {
		var specialty domain.Specialty
		err := rows.Scan(
			&specialty.ID,
			&specialty.Name,
			&specialty.Description,
			&specialty.CreatedAt,
			&specialty.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования специализации: %w", err)
		}
		specialties = append(specialties, specialty)
	}

	return specialties, rows.Err()
}
