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

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &UserRepo{db: db}
}

const userColumns = `id, first_name, last_name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(password_hash, ''), role, parent_id,
		date_of_birth, COALESCE(insurance_carrier, ''), COALESCE(insurance_number, ''), is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.ParentID,
		&user.DateOfBirth,
		&user.InsuranceCarrier,
		&user.InsuranceNumber,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error) {
	var id int64

	role := dto.Role
	if role == "" {
		role = domain.UserRolePatient
	}

	query := `
		INSERT INTO users (
			first_name, last_name, email, phone, password_hash, role, parent_id,
			date_of_birth, insurance_carrier, insurance_number, is_active, created_at, updated_at
		) VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10, true, NOW(), NOW())
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		dto.FirstName,
		dto.LastName,
		dto.Email,
		dto.Phone,
		dto.Password,
		role,
		dto.ParentID,
		dto.DateOfBirth,
		dto.InsuranceCarrier,
		dto.InsuranceNumber,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	return id, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("пользователь не найден")
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("пользователь не найден")
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE phone = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, phone))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("пользователь не найден")
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	return user, nil
}

func (r *UserRepo) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
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
	if dto.Email != nil {
		sets = append(sets, fmt.Sprintf("email = NULLIF($%d, '')", argPos))
		args = append(args, *dto.Email)
		argPos++
	}
	if dto.Phone != nil {
		sets = append(sets, fmt.Sprintf("phone = $%d", argPos))
		args = append(args, *dto.Phone)
		argPos++
	}
	if dto.DateOfBirth != nil {
		sets = append(sets, fmt.Sprintf("date_of_birth = $%d", argPos))
		args = append(args, *dto.DateOfBirth)
		argPos++
	}
	if dto.InsuranceCarrier != nil {
		sets = append(sets, fmt.Sprintf("insurance_carrier = $%d", argPos))
		args = append(args, *dto.InsuranceCarrier)
		argPos++
	}
	if dto.InsuranceNumber != nil {
		sets = append(sets, fmt.Sprintf("insurance_number = $%d", argPos))
		args = append(args, *dto.InsuranceNumber)
		argPos++
	}
	if dto.IsActive != nil {
		sets = append(sets, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *dto.IsActive)
		argPos++
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), argPos)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления пользователя: %w", err)
	}

	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления пароля: %w", err)
	}

	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления пользователя: %w", err)
	}

	return nil
}

func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY id LIMIT $1 OFFSET $2`, userColumns)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка пользователей: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

func (r *UserRepo) ListChildren(ctx context.Context, parentID *int64) ([]domain.User, error) {
	var (
		query string
		rows  pgx.Rows
		err   error
	)

	if parentID != nil {
		query = fmt.Sprintf(`SELECT %s FROM users WHERE parent_id = $1 ORDER BY id`, userColumns)
		rows, err = r.db.Query(ctx, query, *parentID)
	} else {
		query = fmt.Sprintf(`SELECT %s FROM users WHERE parent_id IS NOT NULL ORDER BY id`, userColumns)
		rows, err = r.db.Query(ctx, query)
	}

	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка детских профилей: %w", err)
	}
	defer rows.Close()

	var children []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
		}
		children = append(children, *user)
	}

	return children, rows.Err()
}
