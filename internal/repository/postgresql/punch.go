package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workkeeper-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const punchColumns = `l.id, l.employee_id, l.shift_id, l.punch_type, l.punch_date_time,
	l.source, l.tag, l.edited_by, l.created_at`

type punchRepository struct {
	db *database.DB
}

// scanPunch reads punchColumns from a row or a rows cursor.
func scanPunch(row pgx.Row, extra ...any) (attendance.PunchEvent, error) {
	var (
		p         attendance.PunchEvent
		shiftID   pgtype.Text
		direction string
		source    string
		tag       pgtype.Text
	)
	dest := append([]any{
		&p.ID, &p.EmployeeID, &shiftID, &direction, &p.Timestamp,
		&source, &tag, &p.EditedBy, &p.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return attendance.PunchEvent{}, err
	}

	var err error
	if p.Direction, err = attendance.ParseDirection(direction); err != nil {
		return attendance.PunchEvent{}, err
	}
	if p.Source, err = attendance.ParseSource(source); err != nil {
		return attendance.PunchEvent{}, err
	}
	p.ShiftID = shiftID.String
	p.Tag = tag.String
	p.Timestamp = p.Timestamp.UTC()
	return p, nil
}

// Create implements attendance.PunchRepository.
func (r *punchRepository) Create(ctx context.Context, punch attendance.PunchEvent) (attendance.PunchEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_in_logs (
			id, employee_id, shift_id, punch_type, punch_date_time, source, tag, edited_by
		) VALUES (
			$1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''), $8
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		punch.ID,
		punch.EmployeeID,
		punch.ShiftID,
		punch.Direction.String(),
		punch.Timestamp.UTC(),
		punch.Source.String(),
		punch.Tag,
		punch.EditedBy,
	).Scan(&punch.CreatedAt)
	if err != nil {
		return attendance.PunchEvent{}, fmt.Errorf("failed to create punch: %w", err)
	}

	return punch, nil
}

// GetByID implements attendance.PunchRepository.
func (r *punchRepository) GetByID(ctx context.Context, id string) (attendance.PunchEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM attendance_in_logs l
		WHERE l.id = $1
	`

	p, err := scanPunch(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.PunchEvent{}, attendance.ErrPunchNotFound
		}
		return attendance.PunchEvent{}, fmt.Errorf("failed to get punch: %w", err)
	}

	return p, nil
}

// Update implements attendance.PunchRepository.
func (r *punchRepository) Update(ctx context.Context, punch attendance.PunchEvent) (attendance.PunchEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_in_logs l
		SET punch_date_time = $2,
		    punch_type = $3,
		    source = $4,
		    edited_by = $5
		WHERE l.id = $1
		RETURNING ` + punchColumns

	updated, err := scanPunch(q.QueryRow(ctx, query,
		punch.ID,
		punch.Timestamp.UTC(),
		punch.Direction.String(),
		punch.Source.String(),
		punch.EditedBy,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.PunchEvent{}, attendance.ErrPunchNotFound
		}
		return attendance.PunchEvent{}, fmt.Errorf("failed to update punch: %w", err)
	}

	return updated, nil
}

// LockEmployee implements attendance.PunchRepository. The lock is released
// when the surrounding transaction commits or rolls back.
func (r *punchRepository) LockEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, employeeID); err != nil {
		return fmt.Errorf("failed to lock employee %s: %w", employeeID, err)
	}
	return nil
}

// GetLatestByEmployee implements attendance.PunchRepository.
func (r *punchRepository) GetLatestByEmployee(ctx context.Context, employeeID string) (*attendance.PunchEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM attendance_in_logs l
		WHERE l.employee_id = $1
		ORDER BY l.punch_date_time DESC, l.created_at DESC
		LIMIT 1
	`

	p, err := scanPunch(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest punch: %w", err)
	}

	return &p, nil
}

// ListByEmployeeBetween implements attendance.PunchRepository.
func (r *punchRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.PunchEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM attendance_in_logs l
		WHERE l.employee_id = $1
		  AND l.punch_date_time >= $2
		  AND l.punch_date_time < $3
		ORDER BY l.punch_date_time ASC, l.created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	punches := make([]attendance.PunchEvent, 0)
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punches: %w", err)
	}

	return punches, nil
}

// ListOpenSessions implements attendance.PunchRepository. The shift comes from
// the punch row and falls back to the employee's assignment.
func (r *punchRepository) ListOpenSessions(ctx context.Context, from, to time.Time) ([]attendance.OpenSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `, ` + shiftColumns + `
		FROM (
			SELECT DISTINCT ON (employee_id) *
			FROM attendance_in_logs
			WHERE punch_date_time >= $1
			  AND punch_date_time < $2
			ORDER BY employee_id, punch_date_time DESC, created_at DESC
		) l
		JOIN employees e ON e.id = l.employee_id
		JOIN shifts s ON s.id = COALESCE(l.shift_id, e.shift_id)
		WHERE l.punch_type = 'In'
		ORDER BY l.employee_id
	`

	rows, err := q.Query(ctx, query, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]attendance.OpenSession, 0)
	for rows.Next() {
		var sr shiftRow
		p, err := scanPunch(rows, sr.dest()...)
		if err != nil {
			return nil, fmt.Errorf("failed to scan open session: %w", err)
		}
		shift, err := sr.toShift()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, attendance.OpenSession{
			EmployeeID: p.EmployeeID,
			LastPunch:  p,
			Shift:      shift,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate open sessions: %w", err)
	}

	return sessions, nil
}

func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepository{db: db}
}
