package app

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate maps the Postgres unique-violation error (email at signup).
var ErrDuplicate = errors.New("duplicate record")

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ----- users -----

func (a *App) InsertUser(ctx context.Context, u *User) error {
	q := `INSERT INTO users (id, name, email, password_hash, role)
	      VALUES ($1,$2,$3,$4,$5) RETURNING created_at, updated_at`
	err := a.DB.QueryRow(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, u.Role).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (a *App) UserByEmail(ctx context.Context, email string) (*User, error) {
	u := &User{}
	q := `SELECT id, name, email, password_hash, role, created_at, updated_at
	      FROM users WHERE email=$1`
	err := a.DB.QueryRow(ctx, q, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (a *App) UserByID(ctx context.Context, id string) (*User, error) {
	u := &User{}
	q := `SELECT id, name, email, password_hash, role, created_at, updated_at
	      FROM users WHERE id=$1`
	err := a.DB.QueryRow(ctx, q, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ----- appointments -----

const appointmentCols = `id, user_id, title, description, date, start_time, end_time, status, created_at, updated_at`

func scanAppointment(row pgx.Row, apt *Appointment) error {
	return row.Scan(&apt.ID, &apt.UserID, &apt.Title, &apt.Description, &apt.Date,
		&apt.StartTime, &apt.EndTime, &apt.Status, &apt.CreatedAt, &apt.UpdatedAt)
}

func (a *App) InsertAppointment(ctx context.Context, apt *Appointment) error {
	q := `INSERT INTO appointments (id, user_id, title, description, date, start_time, end_time, status)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING created_at, updated_at`
	return a.DB.QueryRow(ctx, q,
		apt.ID, apt.UserID, apt.Title, apt.Description, apt.Date,
		apt.StartTime, apt.EndTime, apt.Status,
	).Scan(&apt.CreatedAt, &apt.UpdatedAt)
}

// ListAppointments returns the user's appointments ordered by start time.
// The filter window, when set, applies to the calendar date column.
func (a *App) ListAppointments(ctx context.Context, userID string, f AppointmentFilter) ([]Appointment, error) {
	q := `SELECT ` + appointmentCols + ` FROM appointments WHERE user_id=$1`
	args := []any{userID}

	if f.From != nil {
		args = append(args, *f.From)
		q += ` AND date >= $2`
	}
	if f.To != nil {
		args = append(args, *f.To)
		if f.From != nil {
			q += ` AND date < $3`
		} else {
			q += ` AND date < $2`
		}
	}
	q += ` ORDER BY start_time`

	rows, err := a.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		var apt Appointment
		if err := scanAppointment(rows, &apt); err != nil {
			return nil, err
		}
		out = append(out, apt)
	}
	return out, rows.Err()
}

// GetAppointment scopes the lookup to the owner; a foreign id surfaces as
// pgx.ErrNoRows just like a missing one.
func (a *App) GetAppointment(ctx context.Context, userID, id string) (*Appointment, error) {
	apt := &Appointment{}
	q := `SELECT ` + appointmentCols + ` FROM appointments WHERE id=$1 AND user_id=$2`
	if err := scanAppointment(a.DB.QueryRow(ctx, q, id, userID), apt); err != nil {
		return nil, err
	}
	return apt, nil
}

func (a *App) UpdateAppointment(ctx context.Context, apt *Appointment) error {
	q := `UPDATE appointments
	      SET title=$1, description=$2, date=$3, start_time=$4, end_time=$5, status=$6, updated_at=now()
	      WHERE id=$7 AND user_id=$8
	      RETURNING updated_at`
	return a.DB.QueryRow(ctx, q,
		apt.Title, apt.Description, apt.Date, apt.StartTime, apt.EndTime, apt.Status,
		apt.ID, apt.UserID,
	).Scan(&apt.UpdatedAt)
}

func (a *App) DeleteAppointment(ctx context.Context, userID, id string) error {
	res, err := a.DB.Exec(ctx, `DELETE FROM appointments WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ----- schedules -----

func (a *App) ListSchedules(ctx context.Context, userID string) ([]Schedule, error) {
	q := `SELECT id, user_id, day_of_week, start_time, end_time, is_active, created_at, updated_at
	      FROM schedules WHERE user_id=$1 ORDER BY day_of_week`
	rows, err := a.DB.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Schedule
	for rows.Next() {
		var s Schedule
		if err := rows.Scan(&s.ID, &s.UserID, &s.DayOfWeek, &s.StartTime, &s.EndTime,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpsertSchedule creates or replaces the row for (user, day). The natural-key
// unique constraint serializes concurrent upserts; the existing id survives a
// replace.
func (a *App) UpsertSchedule(ctx context.Context, s *Schedule) error {
	q := `INSERT INTO schedules (id, user_id, day_of_week, start_time, end_time, is_active)
	      VALUES ($1,$2,$3,$4,$5,$6)
	      ON CONFLICT (user_id, day_of_week)
	      DO UPDATE SET start_time=EXCLUDED.start_time, end_time=EXCLUDED.end_time,
	                    is_active=EXCLUDED.is_active, updated_at=now()
	      RETURNING id, created_at, updated_at`
	return a.DB.QueryRow(ctx, q,
		s.ID, s.UserID, s.DayOfWeek, s.StartTime, s.EndTime, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (a *App) DeleteSchedule(ctx context.Context, userID, id string) error {
	res, err := a.DB.Exec(ctx, `DELETE FROM schedules WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// parseWhen accepts either a full RFC3339 timestamp or a bare calendar date,
// matching what the web form submits for date and time fields.
func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
