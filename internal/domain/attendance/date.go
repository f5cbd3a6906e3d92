package attendance

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day with no zone attached. Day boundaries become
// instants only through At or Bounds with an explicit location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), time.UTC)
}

// DateOf is the calendar day t falls on in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t, time.UTC), nil
}

func (d Date) utc() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.utc().AddDate(0, 0, n), time.UTC)
}

func (d Date) Weekday() time.Weekday {
	return d.utc().Weekday()
}

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) Before(u Date) bool { return d.utc().Before(u.utc()) }
func (d Date) After(u Date) bool  { return d.utc().After(u.utc()) }

func (d Date) IsZero() bool { return d == Date{} }

// At is the instant of wall-clock tod on d in loc.
func (d Date) At(tod TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, tod.Hour, tod.Minute, tod.Second, 0, loc)
}

// Bounds returns [local midnight, next local midnight) of d in loc.
func (d Date) Bounds(loc *time.Location) (start, end time.Time) {
	start = time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
	next := d.AddDays(1)
	end = time.Date(next.Year, next.Month, next.Day, 0, 0, 0, 0, loc)
	return start, end
}

func (d Date) String() string {
	return d.utc().Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DateRange is closed on both ends.
type DateRange struct {
	Start Date
	End   Date
}

func MonthRange(year int, month time.Month) DateRange {
	start := NewDate(year, month, 1)
	end := DateOf(start.utc().AddDate(0, 1, -1), time.UTC)
	return DateRange{Start: start, End: end}
}

func (r DateRange) Valid() bool {
	return !r.End.Before(r.Start)
}

func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days lists every date in the range in order.
func (r DateRange) Days() []Date {
	if !r.Valid() {
		return nil
	}
	var out []Date
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// Weekdays lists Monday through Friday dates in the range.
func (r DateRange) Weekdays() []Date {
	var out []Date
	for _, d := range r.Days() {
		if !d.IsWeekend() {
			out = append(out, d)
		}
	}
	return out
}

// Bounds converts the range to instants [start midnight, day after end midnight).
func (r DateRange) Bounds(loc *time.Location) (start, end time.Time) {
	start, _ = r.Start.Bounds(loc)
	_, end = r.End.Bounds(loc)
	return start, end
}
