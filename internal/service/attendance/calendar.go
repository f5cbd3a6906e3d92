package attendance

import (
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
)

// Calendar builds one tile per day of rng using the calendar precedence.
// Punches are grouped by the shift day they belong to.
func (e *Engine) Calendar(rng attendance.DateRange, shift attendance.Shift, holidays attendance.HolidaySet, punches []attendance.PunchEvent, today attendance.Date) []attendance.CalendarDay {
	buckets := e.BucketByShiftDay(shift, punches)
	days := make([]attendance.CalendarDay, 0, len(rng.Days()))

	for _, d := range rng.Days() {
		set := Normalize(buckets[d])
		future := IsFuture(d, today)
		status := e.ClassifyWith(e.policy.CalendarPrecedence, ClassifyInput{
			Date:     d,
			Holidays: holidays,
			Punches:  set,
			IsFuture: future,
		})

		days = append(days, attendance.CalendarDay{
			Date:      d,
			Status:    status,
			Source:    calendarSource(status),
			FirstIn:   set.FirstInTime(),
			LastOut:   set.LastOutTime(),
			IsHoliday: IsHoliday(d, holidays),
			IsWeekend: IsWeekend(d),
			IsFuture:  future,
		})
	}
	return days
}

func calendarSource(status attendance.DayStatus) attendance.CalendarSource {
	switch status {
	case attendance.StatusHoliday:
		return attendance.CalendarHolidayTable
	case attendance.StatusWeekend:
		return attendance.CalendarWeekend
	case attendance.StatusUpcoming:
		return attendance.CalendarFuture
	case attendance.StatusPresent, attendance.StatusPartial:
		return attendance.CalendarAttendance
	default:
		return attendance.CalendarNone
	}
}

// MissedPunchOut reports whether the employee is still punched in after the
// shift anchored to date has ended.
func (e *Engine) MissedPunchOut(shift attendance.Shift, date attendance.Date, set attendance.DayPunchSet, now time.Time) bool {
	if CurrentToggleState(set.Punches) != attendance.DirectionIn {
		return false
	}
	_, end := shift.AbsoluteWindow(date, e.policy.Location)
	return now.After(end)
}
