package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"isadental/internal/domain"
)

// exclusionViolation — SQLSTATE нарушения exclusion-ограничения, которым БД
// закрывает гонку между проверкой доступности и фиксацией записи.
const exclusionViolation = "23P01"

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) AppointmentRepository {
	return &AppointmentRepo{db: db}
}

func isSlotTakenErr(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == exclusionViolation
}

func (r *AppointmentRepo) Create(ctx context.Context, userID int64, dto domain.CreateAppointmentDTO) (int64, error) {
	var id int64

	// end_time денормализуется только ради exclusion-ограничения и
	// пересчитывается при каждой записи из актуального типа приема.
	query := `
		INSERT INTO appointments (
			user_id, dentist_id, appointment_type_id, appointment_time, end_time,
			status, checked_in, notes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$4 + make_interval(mins => (SELECT COALESCE(duration, $5) FROM appointment_types WHERE id = $3)),
			'scheduled', false, $6, NOW(), NOW()
		)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		userID,
		dto.DentistID,
		dto.AppointmentTypeID,
		dto.AppointmentTime,
		domain.DefaultAppointmentDuration,
		dto.Notes,
	).Scan(&id)

	if err != nil {
		if isSlotTakenErr(err) {
			return 0, domain.ErrSlotTaken
		}
		return 0, fmt.Errorf("ошибка создания записи на прием: %w", err)
	}

	return id, nil
}

const appointmentSelect = `
	SELECT a.id, a.user_id, a.dentist_id, a.appointment_type_id, a.appointment_time,
	       a.status, a.checked_in, COALESCE(a.notes, ''), a.created_at, a.updated_at,
	       u.first_name || ' ' || u.last_name,
	       d.first_name || ' ' || d.last_name,
	       t.id, t.name, t.description, COALESCE(t.duration, 30)
	FROM appointments a
	JOIN users u ON u.id = a.user_id
	JOIN dentists d ON d.id = a.dentist_id
	LEFT JOIN appointment_types t ON t.id = a.appointment_type_id
`

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var typeID *int64
	var typeName, typeDescription *string
	var typeDuration *int

	err := row.Scan(
		&appointment.ID,
		&appointment.UserID,
		&appointment.DentistID,
		&appointment.AppointmentTypeID,
		&appointment.AppointmentTime,
		&appointment.Status,
		&appointment.CheckedIn,
		&appointment.Notes,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
		&appointment.UserName,
		&appointment.DentistName,
		&typeID,
		&typeName,
		&typeDescription,
		&typeDuration,
	)
	if err != nil {
		return nil, err
	}

	if typeID != nil {
		appointment.AppointmentType = &domain.AppointmentType{
			ID:       *typeID,
			Name:     *typeName,
			Duration: *typeDuration,
		}
		if typeDescription != nil {
			appointment.AppointmentType.Description = *typeDescription
		}
	}

	return &appointment, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query := appointmentSelect + ` WHERE a.id = $1`

	appointment, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}

	return appointment, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	var sets []string
	var args []interface{}
	argPos := 1

	if dto.DentistID != nil {
		sets = append(sets, fmt.Sprintf("dentist_id = $%d", argPos))
		args = append(args, *dto.DentistID)
		argPos++
	}
	if dto.AppointmentTypeID != nil {
		sets = append(sets, fmt.Sprintf("appointment_type_id = $%d", argPos))
		args = append(args, *dto.AppointmentTypeID)
		argPos++
	}
	if dto.AppointmentTime != nil {
		sets = append(sets, fmt.Sprintf("appointment_time = $%d", argPos))
		args = append(args, *dto.AppointmentTime)
		argPos++
	}
	if dto.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *dto.Status)
		argPos++
	}
	if dto.Notes != nil {
		sets = append(sets, fmt.Sprintf("notes = $%d", argPos))
		args = append(args, *dto.Notes)
		argPos++
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf("UPDATE appointments SET %s WHERE id = $%d", strings.Join(sets, ", "), argPos)
	args = append(args, id)

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка обновления записи: %w", err)
	}

	// Пересчет end_time отдельным запросом, чтобы выражение видело уже
	// обновленные значения; exclusion-ограничение объявлено DEFERRED и
	// проверяется на коммите.
	recompute := `
		UPDATE appointments
		SET end_time = appointment_time + make_interval(
			mins => COALESCE((SELECT duration FROM appointment_types WHERE id = appointment_type_id), $1)
		)
		WHERE id = $2
	`
	if _, err := tx.Exec(ctx, recompute, domain.DefaultAppointmentDuration, id); err != nil {
		return fmt.Errorf("ошибка пересчета окончания приема: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isSlotTakenErr(err) {
			return domain.ErrSlotTaken
		}
		return fmt.Errorf("ошибка фиксации обновления записи: %w", err)
	}

	return nil
}

func (r *AppointmentRepo) SetCheckedIn(ctx context.Context, id int64, checkedIn bool) error {
	query := `UPDATE appointments SET checked_in = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, checkedIn, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка отметки о приходе пациента: %w", err)
	}

	return nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM appointments WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления записи: %w", err)
	}

	return nil
}

func appointmentFilterConditions(filter domain.AppointmentFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("a.user_id = $%d", argPos))
		args = append(args, *filter.UserID)
		argPos++
	}
	if filter.DentistID != nil {
		conditions = append(conditions, fmt.Sprintf("a.dentist_id = $%d", argPos))
		args = append(args, *filter.DentistID)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_time >= $%d", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_time <= $%d", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	where, args := appointmentFilterConditions(filter)

	query := appointmentSelect + where +
		fmt.Sprintf(" ORDER BY a.appointment_time DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка записей: %w", err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		appointments = append(appointments, *appointment)
	}

	return appointments, rows.Err()
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	where, args := appointmentFilterConditions(filter)

	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM appointments a`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества записей: %w", err)
	}

	return total, nil
}

func (r *AppointmentRepo) ScheduledIntervals(ctx context.Context, dentistID int64, from, to time.Time, excludeID *int64) ([]domain.BookedInterval, error) {
	query := `
		SELECT a.id, a.appointment_time, COALESCE(t.duration, $4)
		FROM appointments a
		LEFT JOIN appointment_types t ON t.id = a.appointment_type_id
		WHERE a.dentist_id = $1
		  AND a.status = 'scheduled'
		  AND a.appointment_time >= $2
		  AND a.appointment_time < $3
	`
	args := []interface{}{dentistID, from, to, domain.DefaultAppointmentDuration}

	if excludeID != nil {
		query += " AND a.id != $5"
		args = append(args, *excludeID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения занятых интервалов: %w", err)
	}
	defer rows.Close()

	var intervals []domain.BookedInterval
	for rows.Next() {
		var interval domain.BookedInterval
		if err := rows.Scan(&interval.AppointmentID, &interval.StartTime, &interval.Duration); err != nil {
			return nil, fmt.Errorf("ошибка сканирования интервала: %w", err)
		}
		intervals = append(intervals, interval)
	}

	return intervals, rows.Err()
}

func (r *AppointmentRepo) DayBookings(ctx context.Context, dentistID int64, dayStart, dayEnd time.Time, excludeID *int64) ([]domain.DayBooking, error) {
	query := `
		SELECT a.id, a.appointment_time, COALESCE(t.duration, $4), a.status
		FROM appointments a
		LEFT JOIN appointment_types t ON t.id = a.appointment_type_id
		WHERE a.dentist_id = $1
		  AND a.status = 'scheduled'
		  AND a.appointment_time >= $2
		  AND a.appointment_time < $3
	`
	args := []interface{}{dentistID, dayStart, dayEnd, domain.DefaultAppointmentDuration}

	if excludeID != nil {
		query += " AND a.id != $5"
		args = append(args, *excludeID)
	}

	query += " ORDER BY a.appointment_time"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения расписания врача на день: %w", err)
	}
	defer rows.Close()

	var bookings []domain.DayBooking
	for rows.Next() {
		var booking domain.DayBooking
		if err := rows.Scan(&booking.ID, &booking.AppointmentTime, &booking.Duration, &booking.Status); err != nil {
			return nil, fmt.Errorf("ошибка сканирования приема: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}
