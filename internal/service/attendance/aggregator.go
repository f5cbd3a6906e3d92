package attendance

import (
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// Aggregate folds every weekday of rng into a summary. It has no notion of
// today: a day without punches is Absent even when it lies in the future.
func (e *Engine) Aggregate(rng attendance.DateRange, shift attendance.Shift, holidays attendance.HolidaySet, punches []attendance.PunchEvent) attendance.PeriodSummary {
	return e.aggregate(rng, shift, holidays, e.BucketByShiftDay(shift, punches), nil)
}

// AggregateAsOf is Aggregate with weekdays after today counted as Upcoming.
func (e *Engine) AggregateAsOf(rng attendance.DateRange, shift attendance.Shift, holidays attendance.HolidaySet, punches []attendance.PunchEvent, today attendance.Date) attendance.PeriodSummary {
	return e.aggregate(rng, shift, holidays, e.BucketByShiftDay(shift, punches), &today)
}

// AggregateMonth summarizes one calendar month. A nil today disables the
// Upcoming counter.
func (e *Engine) AggregateMonth(year int, month time.Month, shift attendance.Shift, holidays attendance.HolidaySet, punches []attendance.PunchEvent, today *attendance.Date) attendance.PeriodSummary {
	return e.aggregate(attendance.MonthRange(year, month), shift, holidays, e.BucketByShiftDay(shift, punches), today)
}

// AggregateYear returns twelve independent monthly summaries, January first.
func (e *Engine) AggregateYear(year int, shift attendance.Shift, holidays attendance.HolidaySet, punches []attendance.PunchEvent, today *attendance.Date) []attendance.PeriodSummary {
	buckets := e.BucketByShiftDay(shift, punches)
	months := make([]attendance.PeriodSummary, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, e.aggregate(attendance.MonthRange(year, m), shift, holidays, buckets, today))
	}
	return months
}

func (e *Engine) aggregate(rng attendance.DateRange, shift attendance.Shift, holidays attendance.HolidaySet, buckets map[attendance.Date][]attendance.PunchEvent, today *attendance.Date) attendance.PeriodSummary {
	summary := attendance.PeriodSummary{Start: rng.Start, End: rng.End}
	presentNetMinutes := 0

	for _, d := range rng.Weekdays() {
		summary.WeekdayCount++
		if IsHoliday(d, holidays) {
			summary.HolidayDays++
			continue
		}

		set := Normalize(buckets[d])
		status := e.Classify(ClassifyInput{
			Date:     d,
			Holidays: holidays,
			Punches:  set,
			IsFuture: today != nil && IsFuture(d, *today),
		})

		switch status {
		case attendance.StatusUpcoming:
			summary.UpcomingDays++
			continue
		case attendance.StatusAbsent:
			summary.AbsentDays++
		case attendance.StatusPartial:
			summary.PartialDays++
		case attendance.StatusPresent:
			summary.PresentDays++
			m := e.ComputeMetricsOn(d, shift, set.FirstInTime(), set.LastOutTime())
			presentNetMinutes += m.NetWorkedMinutes
			summary.TotalWorkedMinutes += m.TotalWorkedMinutes
			summary.OvertimeMinutes += m.OvertimeMinutes
			if m.IsLate {
				summary.LateDays++
			}
			if m.IsHalfDay {
				summary.HalfDays++
			}
		}

		if set.HasWorkFromHome() {
			summary.WorkFromHomeDays++
		}
	}

	summary.TotalWorkingDays = summary.WeekdayCount - summary.HolidayDays
	summary.TotalHoursWorked = minutesToHours(presentNetMinutes)
	return summary
}

// SumPeriods adds up consecutive summaries into one covering all of them.
func SumPeriods(periods []attendance.PeriodSummary) attendance.PeriodSummary {
	var total attendance.PeriodSummary
	if len(periods) == 0 {
		return total
	}
	total.Start = periods[0].Start
	total.End = periods[len(periods)-1].End

	hours := decimal.Zero
	for _, p := range periods {
		total.WeekdayCount += p.WeekdayCount
		total.HolidayDays += p.HolidayDays
		total.TotalWorkingDays += p.TotalWorkingDays
		total.PresentDays += p.PresentDays
		total.AbsentDays += p.AbsentDays
		total.PartialDays += p.PartialDays
		total.UpcomingDays += p.UpcomingDays
		total.WorkFromHomeDays += p.WorkFromHomeDays
		total.LateDays += p.LateDays
		total.HalfDays += p.HalfDays
		total.TotalWorkedMinutes += p.TotalWorkedMinutes
		total.OvertimeMinutes += p.OvertimeMinutes
		hours = hours.Add(decimal.NewFromFloat(p.TotalHoursWorked))
	}
	total.TotalHoursWorked = hours.Round(2).InexactFloat64()
	return total
}

func minutesToHours(minutes int) float64 {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2).InexactFloat64()
}
