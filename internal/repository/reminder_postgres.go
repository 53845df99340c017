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

type ReminderRepo struct {
	db *pgxpool.Pool
}

func NewReminderRepository(db *pgxpool.Pool) ReminderRepository {
	return &ReminderRepo{db: db}
}

const reminderColumns = `id, appointment_id, send_at, sent, sent_at, status, created_at, updated_at`

func scanReminder(row pgx.Row) (*domain.AppointmentReminder, error) {
	var reminder domain.AppointmentReminder
	err := row.Scan(
		&reminder.ID,
		&reminder.AppointmentID,
		&reminder.SendAt,
		&reminder.Sent,
		&reminder.SentAt,
		&reminder.Status,
		&reminder.CreatedAt,
		&reminder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &reminder, nil
}

func (r *ReminderRepo) Create(ctx context.Context, appointmentID int64, sendAt time.Time) (int64, error) {
	query := `
		INSERT INTO appointment_reminders (appointment_id, send_at, sent, status, created_at, updated_at)
		VALUES ($1, $2, false, 'pending', NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, appointmentID, sendAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания напоминания: %w", err)
	}

	return id, nil
}

func (r *ReminderRepo) GetByID(ctx context.Context, id int64) (*domain.AppointmentReminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM appointment_reminders WHERE id = $1`

	reminder, err := scanReminder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения напоминания: %w", err)
	}

	return reminder, nil
}

func (r *ReminderRepo) List(ctx context.Context, filter domain.ReminderFilter) ([]domain.AppointmentReminder, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.AppointmentID != nil {
		conditions = append(conditions, fmt.Sprintf("appointment_id = $%d", argPos))
		args = append(args, *filter.AppointmentID)
		argPos++
	}
	if filter.Sent != nil {
		conditions = append(conditions, fmt.Sprintf("sent = $%d", argPos))
		args = append(args, *filter.Sent)
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM appointment_reminders`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения количества напоминаний: %w", err)
	}

	query := `SELECT ` + reminderColumns + ` FROM appointment_reminders` + where +
		fmt.Sprintf(" ORDER BY send_at LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка напоминаний: %w", err)
	}
	defer rows.Close()

	var reminders []domain.AppointmentReminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования напоминания: %w", err)
		}
		reminders = append(reminders, *reminder)
	}

	return reminders, total, rows.Err()
}

func (r *ReminderRepo) ListDue(ctx context.Context, before time.Time) ([]domain.AppointmentReminder, error) {
	// К отправке годятся только напоминания по живым приемам: отмененная
	// запись не напоминает о себе.
	query := `
		SELECT r.id, r.appointment_id, r.send_at, r.sent, r.sent_at, r.status, r.created_at, r.updated_at
		FROM appointment_reminders r
		JOIN appointments a ON a.id = r.appointment_id
		WHERE r.sent = false
		  AND r.send_at <= $1
		  AND a.status = 'scheduled'
		ORDER BY r.send_at
	`

	rows, err := r.db.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения напоминаний к отправке: %w", err)
	}
	defer rows.Close()

	var reminders []domain.AppointmentReminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования напоминания: %w", err)
		}
		reminders = append(reminders, *reminder)
	}

	return reminders, rows.Err()
}

func (r *ReminderRepo) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	query := `
		UPDATE appointment_reminders
		SET sent = true, sent_at = $1, status = 'sent', updated_at = $1
		WHERE id = $2
	`

	_, err := r.db.Exec(ctx, query, sentAt, id)
	if err != nil {
		return fmt.Errorf("ошибка отметки напоминания отправленным: %w", err)
	}

	return nil
}

func (r *ReminderRepo) Update(ctx context.Context, id int64, dto domain.UpdateReminderDTO) error {
	if dto.Sent == nil {
		return nil
	}

	var query string
	if *dto.Sent {
		query = `UPDATE appointment_reminders SET sent = true, sent_at = NOW(), status = 'sent', updated_at = NOW() WHERE id = $1`
	} else {
		query = `UPDATE appointment_reminders SET sent = false, sent_at = NULL, status = 'pending', updated_at = NOW() WHERE id = $1`
	}

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка обновления напоминания: %w", err)
	}

	return nil
}

func (r *ReminderRepo) DeleteByAppointmentID(ctx context.Context, appointmentID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM appointment_reminders WHERE appointment_id = $1`, appointmentID)
	if err != nil {
		return fmt.Errorf("ошибка удаления напоминаний записи: %w", err)
	}

	return nil
}
