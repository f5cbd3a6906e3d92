package attendance

import (
	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
)

type ClassifyInput struct {
	Date     attendance.Date
	Holidays attendance.HolidaySet
	Punches  attendance.DayPunchSet
	// IsFuture is the caller's judgement of Date against its own today.
	IsFuture bool
}

func IsHoliday(date attendance.Date, holidays attendance.HolidaySet) bool {
	return holidays.Contains(date)
}

func IsWeekend(date attendance.Date) bool {
	return date.IsWeekend()
}

// IsFuture reports whether date is strictly after today.
func IsFuture(date, today attendance.Date) bool {
	return date.After(today)
}

// Classify applies the engine's default precedence.
func (e *Engine) Classify(in ClassifyInput) attendance.DayStatus {
	return e.ClassifyWith(e.policy.Precedence, in)
}

// ClassifyWith evaluates the status rules in order, first match wins:
// holiday, weekend and future (ordered by p), then absent, partial, present.
func (e *Engine) ClassifyWith(p Precedence, in ClassifyInput) attendance.DayStatus {
	if IsHoliday(in.Date, in.Holidays) {
		return attendance.StatusHoliday
	}

	weekend := IsWeekend(in.Date)
	if p == PrecedenceHolidayFutureWeekend {
		if in.IsFuture {
			return attendance.StatusUpcoming
		}
		if weekend {
			return attendance.StatusWeekend
		}
	} else {
		if weekend {
			return attendance.StatusWeekend
		}
		if in.IsFuture {
			return attendance.StatusUpcoming
		}
	}

	switch {
	case !in.Punches.HasPunches():
		return attendance.StatusAbsent
	case !in.Punches.IsComplete():
		return attendance.StatusPartial
	default:
		return attendance.StatusPresent
	}
}

// PresenceMode folds a day's status and metrics into the single word shown
// on the employee dashboard.
func (e *Engine) PresenceMode(status attendance.DayStatus, m attendance.DayMetrics) attendance.PresenceMode {
	switch status {
	case attendance.StatusHoliday:
		return attendance.ModeHoliday
	case attendance.StatusWeekend:
		return attendance.ModeWeekend
	case attendance.StatusUpcoming:
		return attendance.ModeUpcoming
	case attendance.StatusAbsent:
		return attendance.ModeAbsent
	}

	switch {
	case m.IsLate && m.IsEarlyLeave:
		return attendance.ModeLateAndEarly
	case m.IsLate:
		return attendance.ModeLateComing
	case m.IsEarlyLeave:
		return attendance.ModeEarlyLeaving
	default:
		return attendance.ModePresent
	}
}
