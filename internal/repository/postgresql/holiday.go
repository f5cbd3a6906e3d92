package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workkeeper-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

// dateToPg anchors a calendar date at UTC midnight for DATE columns.
func dateToPg(d attendance.Date) time.Time {
	return d.At(attendance.TimeOfDay{}, time.UTC)
}

// ListBetween implements attendance.HolidayRepository.
func (r *holidayRepository) ListBetween(ctx context.Context, from, to attendance.Date) ([]attendance.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, holiday_date, name, COALESCE(recurrence_rule, '')
		FROM holidays
		WHERE holiday_date BETWEEN $1 AND $2
		   OR (COALESCE(recurrence_rule, '') <> '' AND holiday_date <= $2)
		ORDER BY holiday_date
	`

	rows, err := q.Query(ctx, query, dateToPg(from), dateToPg(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	holidays := make([]attendance.Holiday, 0)
	for rows.Next() {
		var (
			h    attendance.Holiday
			date time.Time
		)
		if err := rows.Scan(&h.ID, &date, &h.Name, &h.RecurrenceRule); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		h.Date = attendance.DateOf(date, time.UTC)
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return holidays, nil
}

func NewHolidayRepository(db *database.DB) attendance.HolidayRepository {
	return &holidayRepository{db: db}
}
