package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the in/out tag of a punch.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionIn
	DirectionOut
)

func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "In"
	case DirectionOut:
		return "Out"
	default:
		return "None"
	}
}

// Opposite returns the direction the next punch takes after d.
// The first punch of a day is always In.
func (d Direction) Opposite() Direction {
	if d == DirectionIn {
		return DirectionOut
	}
	return DirectionIn
}

// ParseDirection accepts "in"/"out" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in":
		return DirectionIn, nil
	case "out":
		return DirectionOut, nil
	}
	return DirectionNone, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Source is where a punch was captured.
type Source int

const (
	SourceDevice Source = iota + 1
	SourcePortal
	SourceManual
	SourceImport
)

func (s Source) String() string {
	switch s {
	case SourceDevice:
		return "device"
	case SourcePortal:
		return "portal"
	case SourceManual:
		return "manual"
	case SourceImport:
		return "import"
	default:
		return "unknown"
	}
}

var SourceValues = []string{"device", "portal", "manual", "import"}

// ParseSource also understands the capture channel names stored by older
// punch rows (punch_machine, web_portal, hr_manual, ...).
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "device", "punch_machine", "thumb_scanner":
		return SourceDevice, nil
	case "portal", "web_portal", "mobile_app":
		return SourcePortal, nil
	case "manual", "hr_manual":
		return SourceManual, nil
	case "import", "api_import":
		return SourceImport, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSource, s)
}

const TagWorkFromHome = "wfh"

// PunchEvent is one raw in/out scan. Timestamp is always UTC.
type PunchEvent struct {
	ID         string
	EmployeeID string
	ShiftID    string
	Timestamp  time.Time
	Direction  Direction
	Source     Source
	Tag        string
	EditedBy   *string
	CreatedAt  time.Time
}

func (p PunchEvent) IsWorkFromHome() bool {
	return strings.EqualFold(strings.TrimSpace(p.Tag), TagWorkFromHome)
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay accepts "15:04" and "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
}

// TimeOfDayFromDuration converts an offset since midnight.
func TimeOfDayFromDuration(d time.Duration) TimeOfDay {
	d = d % (24 * time.Hour)
	return TimeOfDay{
		Hour:   int(d / time.Hour),
		Minute: int(d % time.Hour / time.Minute),
		Second: int(d % time.Minute / time.Second),
	}
}

func (t TimeOfDay) SinceMidnight() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute + time.Duration(t.Second)*time.Second
}

func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.SinceMidnight() < u.SinceMidnight()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Shift is a work schedule template. End before Start means the shift
// crosses midnight.
type Shift struct {
	ID            string
	Name          string
	Start         TimeOfDay
	End           TimeOfDay
	BreakDuration *time.Duration
	ExpectedHours decimal.Decimal
}

func (s Shift) IsOvernight() bool {
	return s.End.Before(s.Start)
}

// AbsoluteWindow anchors the shift boundaries to date in loc. For an
// overnight shift the end instant lands on the following calendar day.
func (s Shift) AbsoluteWindow(date Date, loc *time.Location) (start, end time.Time) {
	start = date.At(s.Start, loc)
	endDate := date
	if s.IsOvernight() {
		endDate = date.AddDays(1)
	}
	end = endDate.At(s.End, loc)
	return start, end
}

// BreakOr returns the configured break, or fallback when the shift has none.
func (s Shift) BreakOr(fallback time.Duration) time.Duration {
	if s.BreakDuration == nil {
		return fallback
	}
	return *s.BreakDuration
}

func (s Shift) ExpectedMinutes() int {
	return int(s.ExpectedHours.Mul(decimal.NewFromInt(60)).Round(0).IntPart())
}

// Holiday is a declared non-working date. A non-empty RecurrenceRule (RFC 5545
// RRULE) makes the holiday repeat starting at Date.
type Holiday struct {
	ID             string
	Date           Date
	Name           string
	RecurrenceRule string
}

type HolidaySet map[Date]Holiday

func (h HolidaySet) Contains(d Date) bool {
	_, ok := h[d]
	return ok
}

// DayPunchSet is the ordered view of one employee-day.
type DayPunchSet struct {
	Punches []PunchEvent
	FirstIn *PunchEvent
	LastOut *PunchEvent
}

func (s DayPunchSet) HasPunches() bool {
	return len(s.Punches) > 0
}

func (s DayPunchSet) IsComplete() bool {
	return s.FirstIn != nil && s.LastOut != nil
}

func (s DayPunchSet) HasWorkFromHome() bool {
	for _, p := range s.Punches {
		if p.IsWorkFromHome() {
			return true
		}
	}
	return false
}

func (s DayPunchSet) FirstInTime() *time.Time {
	if s.FirstIn == nil {
		return nil
	}
	t := s.FirstIn.Timestamp
	return &t
}

func (s DayPunchSet) LastOutTime() *time.Time {
	if s.LastOut == nil {
		return nil
	}
	t := s.LastOut.Timestamp
	return &t
}

type DayStatus int

const (
	StatusAbsent DayStatus = iota
	StatusPresent
	StatusPartial
	StatusHoliday
	StatusWeekend
	StatusUpcoming
)

func (s DayStatus) String() string {
	switch s {
	case StatusPresent:
		return "Present"
	case StatusPartial:
		return "Partial"
	case StatusHoliday:
		return "Holiday"
	case StatusWeekend:
		return "Weekend"
	case StatusUpcoming:
		return "Upcoming"
	default:
		return "Absent"
	}
}

func (s DayStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type PunchStatusLabel int

const (
	LabelOnTime PunchStatusLabel = iota
	LabelLate
	LabelOvertime
	LabelHalfDay
	LabelLateOvertime
	LabelHalfDayLate
)

func (l PunchStatusLabel) String() string {
	switch l {
	case LabelLate:
		return "Late"
	case LabelOvertime:
		return "Overtime"
	case LabelHalfDay:
		return "HalfDay"
	case LabelLateOvertime:
		return "Late + Overtime"
	case LabelHalfDayLate:
		return "HalfDay + Late"
	default:
		return "OnTime"
	}
}

func (l PunchStatusLabel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// DayMetrics is derived from a DayPunchSet and a Shift. Label is nil when
// the day lacks either a first-in or a last-out.
type DayMetrics struct {
	TotalWorkedMinutes int
	BreakMinutes       int
	NetWorkedMinutes   int
	ExpectedMinutes    int
	OvertimeMinutes    int
	LateMinutes        int
	EarlyLeaveMinutes  int
	IsLate             bool
	IsEarlyLeave       bool
	IsHalfDay          bool
	IsOvertime         bool
	Label              *PunchStatusLabel
}

type PresenceMode string

const (
	ModeHoliday      PresenceMode = "Holiday"
	ModeWeekend      PresenceMode = "Weekend"
	ModeUpcoming     PresenceMode = "Upcoming"
	ModeAbsent       PresenceMode = "Absent"
	ModeLateAndEarly PresenceMode = "Late & Early"
	ModeLateComing   PresenceMode = "Late Coming"
	ModeEarlyLeaving PresenceMode = "Early Leaving"
	ModePresent      PresenceMode = "Present"
)

// PeriodSummary folds per-day results over a closed date range. Weekend days
// are outside every counter.
type PeriodSummary struct {
	Start              Date
	End                Date
	WeekdayCount       int
	HolidayDays        int
	TotalWorkingDays   int
	PresentDays        int
	AbsentDays         int
	PartialDays        int
	UpcomingDays       int
	WorkFromHomeDays   int
	LateDays           int
	HalfDays           int
	TotalWorkedMinutes int
	OvertimeMinutes    int
	TotalHoursWorked   float64
}

type CalendarSource string

const (
	CalendarHolidayTable CalendarSource = "HolidayTable"
	CalendarWeekend      CalendarSource = "Weekend"
	CalendarFuture       CalendarSource = "Future"
	CalendarAttendance   CalendarSource = "Attendance"
	CalendarNone         CalendarSource = "None"
)

// CalendarDay is one tile of the month view. The three flags are reported
// independently of which one decided Status.
type CalendarDay struct {
	Date      Date
	Status    DayStatus
	Source    CalendarSource
	FirstIn   *time.Time
	LastOut   *time.Time
	IsHoliday bool
	IsWeekend bool
	IsFuture  bool
}

// PresenceDay is one row of the rolling weekly view.
type PresenceDay struct {
	Date             Date
	Status           DayStatus
	Mode             PresenceMode
	FirstIn          *time.Time
	LastOut          *time.Time
	NetWorkedMinutes int
}

// PunchRecords is the audit view of one day's punches.
type PunchRecords struct {
	Punches  []PunchEvent
	InTimes  []time.Time
	OutTimes []time.Time
	FirstIn  *time.Time
	LastOut  *time.Time
}

func (r PunchRecords) InCount() int  { return len(r.InTimes) }
func (r PunchRecords) OutCount() int { return len(r.OutTimes) }

// Alert is a notice raised for an employee, e.g. a forgotten punch-out.
type Alert struct {
	ID         string
	EmployeeID string
	Type       string
	Message    string
	Date       Date
	IsRead     bool
	CreatedAt  time.Time
}

const (
	// AlertTypeMissedPunchOut is raised at most once per employee and shift day.
	AlertTypeMissedPunchOut = "MissedPunchOut"
	// AlertTypeAttendance tells an employee their punches were corrected.
	AlertTypeAttendance = "Attendance"
)

// OpenSession is an employee whose latest punch is an In.
type OpenSession struct {
	EmployeeID string
	LastPunch  PunchEvent
	Shift      Shift
}

type Employee struct {
	ID      string
	Name    string
	ShiftID *string
}
