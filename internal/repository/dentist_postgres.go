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

type DentistRepo struct {
	db *pgxpool.Pool
}

func NewDentistRepository(db *pgxpool.Pool) DentistRepository {
	return &DentistRepo{db: db}
}

func (r *DentistRepo) Create(ctx context.Context, dto domain.CreateDentistDTO) (int64, error) {
	var id int64

	query := `
		INSERT INTO dentists (first_name, last_name, specialty_id, qualifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		dto.FirstName,
		dto.LastName,
		dto.SpecialtyID,
		dto.Qualifications,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания врача: %w", err)
	}

	return id, nil
}

func (r *DentistRepo) GetByID(ctx context.Context, id int64) (*domain.Dentist, error) {
	query := `
		SELECT d.id, d.first_name, d.last_name, d.specialty_id, d.qualifications, d.image_url,
		       d.created_at, d.updated_at,
		       s.id, s.name, s.description
		FROM dentists d
		LEFT JOIN specialties s ON s.id = d.specialty_id
		WHERE d.id = $1
	`

	dentist, err := scanDentist(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения врача: %w", err)
	}

	return dentist, nil
}

func scanDentist(row pgx.Row) (*domain.Dentist, error) {
	var dentist domain.Dentist
	var specialtyID *int64
	var specialtyName, specialtyDescription *string

	err := row.Scan(
		&dentist.ID,
		&dentist.FirstName,
		&dentist.LastName,
		&dentist.SpecialtyID,
		&dentist.Qualifications,
		&dentist.ImageURL,
		&dentist.CreatedAt,
		&dentist.UpdatedAt,
		&specialtyID,
		&specialtyName,
		&specialtyDescription,
	)
	if err != nil {
		return nil, err
	}

	if specialtyID != nil {
		dentist.Specialty = &domain.Specialty{
			ID:   *specialtyID,
			Name: *specialtyName,
		}
		if specialtyDescription != nil {
			dentist.Specialty.Description = *specialtyDescription
		}
	}

	return &dentist, nil
}

func (r *DentistRepo) Update(ctx context.Context, id int64, dto domain.UpdateDentistDTO) error {
	var sets []string
	var args []interface{}
	argPos := 1

	if dto.FirstName != nil {
		sets = append(sets, fmt.Sprintf("first_name = $%d", argPos))
		args = append(args, *dto.FirstName)
		argPos++
	}
	if dto.LastName != nil {
		sets = append(sets, fmt.Sprintf("last_name = $%d", argPos))
		args = append(args, *dto.LastName)
		argPos++
	}
	if dto.SpecialtyID != nil {
		sets = append(sets, fmt.Sprintf("specialty_id = $%d", argPos))
		args = append(args, *dto.SpecialtyID)
		argPos++
	}
	if dto.Qualifications != nil {
		sets = append(sets, fmt.Sprintf("qualifications = $%d", argPos))
		args = append(args, *dto.Qualifications)
		argPos++
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE dentists SET %s WHERE id = $%d", strings.Join(sets, ", "), argPos)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления врача: %w", err)
	}

	return nil
}

func (r *DentistRepo) UpdateImageURL(ctx context.Context, id int64, imageURL string) error {
	query := `UPDATE dentists SET image_url = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, imageURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления фотографии врача: %w", err)
	}

	return nil
}

func (r *DentistRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM dentists WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления врача: %w", err)
	}

	return nil
}

func (r *DentistRepo) List(ctx context.Context, limit, offset int) ([]domain.Dentist, int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM dentists`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения количества врачей: %w", err)
	}

	query := `
		SELECT d.id, d.first_name, d.last_name, d.specialty_id, d.qualifications, d.image_url,
		       d.created_at, d.updated_at,
		       s.id, s.name, s.description
		FROM dentists d
		LEFT JOIN specialties s ON s.id = d.specialty_id
		ORDER BY d.last_name, d.first_name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка врачей: %w", err)
	}
	defer rows.Close()

	var dentists []domain.Dentist
	for rows.Next() {
		dentist, err := scanDentist(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования врача: %w", err)
		}
		dentists = append(dentists, *dentist)
	}

	return dentists, total, rows.Err()
}
