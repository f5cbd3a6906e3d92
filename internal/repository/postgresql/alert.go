package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workkeeper-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const alertColumns = `id, employee_id, type, message, alert_date, is_read, created_at`

type alertRepository struct {
	db *database.DB
}

func scanAlert(row pgx.Row) (attendance.Alert, error) {
	var (
		a    attendance.Alert
		date time.Time
	)
	if err := row.Scan(&a.ID, &a.EmployeeID, &a.Type, &a.Message, &date, &a.IsRead, &a.CreatedAt); err != nil {
		return attendance.Alert{}, err
	}
	a.Date = attendance.DateOf(date, time.UTC)
	return a, nil
}

// Create implements attendance.AlertRepository. The partial unique index on
// missed punch-out alerts turns a concurrent duplicate into a no-op.
func (r *alertRepository) Create(ctx context.Context, alert attendance.Alert) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO alerts (id, employee_id, type, message, alert_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		alert.ID,
		alert.EmployeeID,
		alert.Type,
		alert.Message,
		dateToPg(alert.Date),
	)
	if err != nil {
		return false, fmt.Errorf("failed to create alert: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// ListByEmployee implements attendance.AlertRepository.
func (r *alertRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Alert, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE employee_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]attendance.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}

	return alerts, nil
}

// CountUnread implements attendance.AlertRepository.
func (r *alertRepository) CountUnread(ctx context.Context, employeeID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM alerts WHERE employee_id = $1 AND NOT is_read`,
		employeeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread alerts: %w", err)
	}

	return count, nil
}

// MarkRead implements attendance.AlertRepository.
func (r *alertRepository) MarkRead(ctx context.Context, id, employeeID string) (attendance.Alert, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE alerts
		SET is_read = TRUE
		WHERE id = $1 AND employee_id = $2
		RETURNING ` + alertColumns

	a, err := scanAlert(q.QueryRow(ctx, query, id, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Alert{}, attendance.ErrAlertNotFound
		}
		return attendance.Alert{}, fmt.Errorf("failed to mark alert read: %w", err)
	}

	return a, nil
}

func NewAlertRepository(db *database.DB) attendance.AlertRepository {
	return &alertRepository{db: db}
}
