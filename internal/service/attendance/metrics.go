package attendance

import (
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
)

// ComputeMetrics anchors the shift to the day of firstIn in the policy
// location. An In stamped in the early-morning tail of an overnight shift is
// anchored to the previous day.
func (e *Engine) ComputeMetrics(shift attendance.Shift, firstIn, lastOut *time.Time) attendance.DayMetrics {
	if firstIn == nil || lastOut == nil {
		return e.ComputeMetricsOn(attendance.Date{}, shift, firstIn, lastOut)
	}
	return e.ComputeMetricsOn(e.ShiftDay(shift, *firstIn), shift, firstIn, lastOut)
}

// ShiftDay is the date whose shift window t belongs to. For overnight shifts
// the off-shift gap is split at its midpoint: anything before it belongs to
// the previous day's shift, so a late punch-out after the scheduled end still
// lands on the right day.
func (e *Engine) ShiftDay(shift attendance.Shift, t time.Time) attendance.Date {
	loc := e.policy.Location
	day := attendance.DateOf(t, loc)
	if !shift.IsOvernight() {
		return day
	}
	local := t.In(loc)
	sinceMidnight := local.Sub(time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc))
	end, start := shift.End.SinceMidnight(), shift.Start.SinceMidnight()
	if sinceMidnight < end+(start-end)/2 {
		return day.AddDays(-1)
	}
	return day
}

// ComputeMetricsOn measures a day against the shift window anchored to date.
// Missing punches yield zero metrics and a nil label.
func (e *Engine) ComputeMetricsOn(date attendance.Date, shift attendance.Shift, firstIn, lastOut *time.Time) attendance.DayMetrics {
	m := attendance.DayMetrics{ExpectedMinutes: shift.ExpectedMinutes()}
	if firstIn == nil || lastOut == nil {
		return m
	}

	breakDur := shift.BreakOr(e.policy.DefaultBreak)
	m.TotalWorkedMinutes = floorMinutes(lastOut.Sub(*firstIn))
	m.BreakMinutes = floorMinutes(breakDur)
	m.NetWorkedMinutes = max(0, m.TotalWorkedMinutes-m.BreakMinutes)
	m.OvertimeMinutes = max(0, m.NetWorkedMinutes-m.ExpectedMinutes)

	start, end := shift.AbsoluteWindow(date, e.policy.Location)

	if firstIn.After(start.Add(e.policy.LateGrace)) {
		m.IsLate = true
		m.LateMinutes = floorMinutes(firstIn.Sub(start))
	}

	effectiveEnd := end.Add(-breakDur)
	if lastOut.Before(effectiveEnd.Add(-e.policy.EarlyGrace)) {
		m.IsEarlyLeave = true
		m.EarlyLeaveMinutes = floorMinutes(effectiveEnd.Sub(*lastOut))
	}

	m.IsHalfDay = m.NetWorkedMinutes < floorMinutes(e.policy.HalfDayThreshold)
	m.IsOvertime = m.OvertimeMinutes > floorMinutes(e.policy.OvertimeGrace)

	label := Label(m.IsHalfDay, m.IsLate, m.IsOvertime)
	m.Label = &label
	return m
}

// Label maps the (half day, late, overtime) triple to its combined label.
// Half day outranks overtime.
func Label(halfDay, late, overtime bool) attendance.PunchStatusLabel {
	switch {
	case halfDay && late:
		return attendance.LabelHalfDayLate
	case halfDay:
		return attendance.LabelHalfDay
	case late && overtime:
		return attendance.LabelLateOvertime
	case late:
		return attendance.LabelLate
	case overtime:
		return attendance.LabelOvertime
	default:
		return attendance.LabelOnTime
	}
}

func floorMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}
