package attendance

import (
	"context"
	"time"
)

// PunchRepository stores raw punch events. Callers that insert must hold the
// employee lock taken by LockEmployee inside the same transaction so the
// latest punch read for the guard cannot go stale.
type PunchRepository interface {
	// Create inserts a new punch row
	Create(ctx context.Context, punch PunchEvent) (PunchEvent, error)

	// GetByID returns ErrPunchNotFound when no row matches
	GetByID(ctx context.Context, id string) (PunchEvent, error)

	// Update rewrites the time, direction, source and editor of a punch
	Update(ctx context.Context, punch PunchEvent) (PunchEvent, error)

	// LockEmployee serializes punch inserts for one employee until the
	// surrounding transaction ends
	LockEmployee(ctx context.Context, employeeID string) error

	// GetLatestByEmployee returns the most recent punch ever recorded, or nil
	GetLatestByEmployee(ctx context.Context, employeeID string) (*PunchEvent, error)

	// ListByEmployeeBetween returns punches in [from, to) ordered by time
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]PunchEvent, error)

	// ListOpenSessions returns, per employee, the latest punch in [from, to)
	// when that punch is an In
	ListOpenSessions(ctx context.Context, from, to time.Time) ([]OpenSession, error)
}

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
}

type ShiftRepository interface {
	GetByID(ctx context.Context, id string) (Shift, error)
}

// HolidayRepository returns the one-off holidays inside the range plus every
// recurring holiday that started on or before its end.
type HolidayRepository interface {
	ListBetween(ctx context.Context, from, to Date) ([]Holiday, error)
}

// AlertRepository stores employee alerts. Missed punch-out alerts are unique
// per employee and date; a second Create for the same day is a no-op.
type AlertRepository interface {
	// Create reports false when an identical missed punch-out alert exists
	Create(ctx context.Context, alert Alert) (bool, error)

	// ListByEmployee returns the newest alerts first
	ListByEmployee(ctx context.Context, employeeID string) ([]Alert, error)

	CountUnread(ctx context.Context, employeeID string) (int, error)

	// MarkRead returns ErrAlertNotFound unless the alert belongs to employeeID
	MarkRead(ctx context.Context, id, employeeID string) (Alert, error)
}
