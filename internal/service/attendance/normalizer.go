package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
)

// Normalize orders one employee-day of punches and picks the extremal In and
// Out. The input slice is left untouched.
func Normalize(events []attendance.PunchEvent) attendance.DayPunchSet {
	ordered := make([]attendance.PunchEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	set := attendance.DayPunchSet{Punches: ordered}
	for i := range ordered {
		switch ordered[i].Direction {
		case attendance.DirectionIn:
			if set.FirstIn == nil {
				set.FirstIn = &ordered[i]
			}
		case attendance.DirectionOut:
			set.LastOut = &ordered[i]
		}
	}
	return set
}

// CurrentToggleState is the direction of the chronologically last event.
func CurrentToggleState(events []attendance.PunchEvent) attendance.Direction {
	if len(events) == 0 {
		return attendance.DirectionNone
	}
	last := events[0]
	for _, ev := range events[1:] {
		if !ev.Timestamp.Before(last.Timestamp) {
			last = ev
		}
	}
	return last.Direction
}

func NextDirection(state attendance.Direction) attendance.Direction {
	return state.Opposite()
}

// DayBounds returns [local midnight, next local midnight) of date.
func (e *Engine) DayBounds(date attendance.Date) (start, end time.Time) {
	return date.Bounds(e.policy.Location)
}

// BucketByDay groups punches by the calendar day they fall on in loc.
func BucketByDay(events []attendance.PunchEvent, loc *time.Location) map[attendance.Date][]attendance.PunchEvent {
	buckets := make(map[attendance.Date][]attendance.PunchEvent)
	for _, ev := range events {
		d := attendance.DateOf(ev.Timestamp, loc)
		buckets[d] = append(buckets[d], ev)
	}
	return buckets
}

// BucketByShiftDay groups punches by the shift day they belong to. For a
// day shift this is the calendar day; an overnight shift keeps the morning
// punch-out with the previous evening's punch-in.
func (e *Engine) BucketByShiftDay(shift attendance.Shift, events []attendance.PunchEvent) map[attendance.Date][]attendance.PunchEvent {
	if !shift.IsOvernight() {
		return BucketByDay(events, e.policy.Location)
	}
	buckets := make(map[attendance.Date][]attendance.PunchEvent)
	for _, ev := range events {
		d := e.ShiftDay(shift, ev.Timestamp)
		buckets[d] = append(buckets[d], ev)
	}
	return buckets
}

// PunchBounds is the instant range whose punches can belong to the shift days
// of rng. Overnight shifts reach into the calendar day after rng.End.
func (e *Engine) PunchBounds(shift attendance.Shift, rng attendance.DateRange) (from, to time.Time) {
	if shift.IsOvernight() {
		rng.End = rng.End.AddDays(1)
	}
	return rng.Bounds(e.policy.Location)
}

// DayPunchRecords splits a normalized day into its in and out times.
func (e *Engine) DayPunchRecords(set attendance.DayPunchSet) attendance.PunchRecords {
	records := attendance.PunchRecords{
		Punches: set.Punches,
		FirstIn: set.FirstInTime(),
		LastOut: set.LastOutTime(),
	}
	for _, p := range set.Punches {
		switch p.Direction {
		case attendance.DirectionIn:
			records.InTimes = append(records.InTimes, p.Timestamp)
		case attendance.DirectionOut:
			records.OutTimes = append(records.OutTimes, p.Timestamp)
		}
	}
	return records
}
