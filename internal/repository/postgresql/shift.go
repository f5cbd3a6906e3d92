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
	"github.com/shopspring/decimal"
)

const shiftColumns = `s.id, s.name, s.start_time, s.end_time, s.break_duration_minutes, s.expected_hours::text`

// shiftRow holds the raw column values of shiftColumns.
type shiftRow struct {
	id            string
	name          string
	start         pgtype.Time
	end           pgtype.Time
	breakMinutes  pgtype.Int4
	expectedHours string
}

func (r *shiftRow) dest() []any {
	return []any{&r.id, &r.name, &r.start, &r.end, &r.breakMinutes, &r.expectedHours}
}

func (r *shiftRow) toShift() (attendance.Shift, error) {
	expected, err := decimal.NewFromString(r.expectedHours)
	if err != nil {
		return attendance.Shift{}, fmt.Errorf("invalid expected_hours %q for shift %s: %w", r.expectedHours, r.id, err)
	}

	shift := attendance.Shift{
		ID:            r.id,
		Name:          r.name,
		Start:         pgTimeToTimeOfDay(r.start),
		End:           pgTimeToTimeOfDay(r.end),
		ExpectedHours: expected,
	}
	if r.breakMinutes.Valid {
		d := time.Duration(r.breakMinutes.Int32) * time.Minute
		shift.BreakDuration = &d
	}
	return shift, nil
}

func pgTimeToTimeOfDay(t pgtype.Time) attendance.TimeOfDay {
	return attendance.TimeOfDayFromDuration(time.Duration(t.Microseconds) * time.Microsecond)
}

type shiftRepository struct {
	db *database.DB
}

// GetByID implements attendance.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (attendance.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts s
		WHERE s.id = $1
	`

	var sr shiftRow
	if err := q.QueryRow(ctx, query, id).Scan(sr.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Shift{}, attendance.ErrShiftNotFound
		}
		return attendance.Shift{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	return sr.toShift()
}

func NewShiftRepository(db *database.DB) attendance.ShiftRepository {
	return &shiftRepository{db: db}
}
