package attendance

import (
	"errors"
	"fmt"
	"time"
)

// Attendance domain errors
var (
	// Punch guard errors
	ErrClockSkew      = errors.New("punch time is too far behind the last recorded punch, please sync your clock")
	ErrDuplicatePunch = errors.New("punch arrived too soon after the last one")
	ErrFuturePunch    = errors.New("punch time is ahead of the server clock, please sync your clock")

	// Lookup errors
	ErrShiftNotAssigned = errors.New("shift not assigned to employee")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrShiftNotFound    = errors.New("shift not found")
	ErrPunchNotFound    = errors.New("punch not found")
	ErrAlertNotFound    = errors.New("alert not found")

	// Identity errors
	ErrMissingEmployeeClaim = errors.New("employee_id claim is missing or invalid")

	// Parsing errors
	ErrInvalidDirection = errors.New("invalid punch direction")
	ErrInvalidSource    = errors.New("invalid punch source")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidDate      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidRule      = errors.New("invalid holiday recurrence rule")
)

// ClockSkewError rejects a candidate punch that lies further behind the last
// recorded punch than the configured backward-skew threshold.
type ClockSkewError struct {
	Last      time.Time
	Candidate time.Time
	Behind    time.Duration
}

func (e *ClockSkewError) Error() string {
	return fmt.Sprintf("%s (behind by %s)", ErrClockSkew.Error(), e.Behind.Round(time.Second))
}

func (e *ClockSkewError) Is(target error) bool {
	return target == ErrClockSkew
}

// FuturePunchError rejects a candidate punch stamped further ahead of the
// server clock than the forward-skew threshold.
type FuturePunchError struct {
	Candidate time.Time
	Now       time.Time
	Ahead     time.Duration
}

func (e *FuturePunchError) Error() string {
	return fmt.Sprintf("%s (ahead by %s)", ErrFuturePunch.Error(), e.Ahead.Round(time.Second))
}

func (e *FuturePunchError) Is(target error) bool {
	return target == ErrFuturePunch
}

// DuplicatePunchError rejects a candidate punch closer to the last recorded
// punch than the minimum gap.
type DuplicatePunchError struct {
	LastDirection Direction
	Last          time.Time
	Candidate     time.Time
	Gap           time.Duration
}

func (e *DuplicatePunchError) Error() string {
	return fmt.Sprintf("you just punched %s %.1f secs ago", e.LastDirection, e.Gap.Seconds())
}

func (e *DuplicatePunchError) Is(target error) bool {
	return target == ErrDuplicatePunch
}
