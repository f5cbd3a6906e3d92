package attendance

import (
	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
)

// WeeklyPresence reports every day of rng, weekends included, with the
// dashboard presence mode. Worked time is only counted on Present days.
func (e *Engine) WeeklyPresence(rng attendance.DateRange, shift attendance.Shift, holidays attendance.HolidaySet, punches []attendance.PunchEvent, today attendance.Date) []attendance.PresenceDay {
	buckets := e.BucketByShiftDay(shift, punches)
	days := make([]attendance.PresenceDay, 0, len(rng.Days()))

	for _, d := range rng.Days() {
		set := Normalize(buckets[d])
		status := e.Classify(ClassifyInput{
			Date:     d,
			Holidays: holidays,
			Punches:  set,
			IsFuture: IsFuture(d, today),
		})
		m := e.ComputeMetricsOn(d, shift, set.FirstInTime(), set.LastOutTime())

		day := attendance.PresenceDay{
			Date:    d,
			Status:  status,
			Mode:    e.PresenceMode(status, m),
			FirstIn: set.FirstInTime(),
			LastOut: set.LastOutTime(),
		}
		if status == attendance.StatusPresent {
			day.NetWorkedMinutes = m.NetWorkedMinutes
		}
		days = append(days, day)
	}
	return days
}
