package attendance

import (
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

func dayShift() attendance.Shift {
	br := 60 * time.Minute
	return attendance.Shift{
		ID:            "shift-day",
		Name:          "General",
		Start:         attendance.TimeOfDay{Hour: 9},
		End:           attendance.TimeOfDay{Hour: 17},
		BreakDuration: &br,
		ExpectedHours: decimal.NewFromInt(8),
	}
}

func nightShift() attendance.Shift {
	br := 60 * time.Minute
	return attendance.Shift{
		ID:            "shift-night",
		Name:          "Night",
		Start:         attendance.TimeOfDay{Hour: 22},
		End:           attendance.TimeOfDay{Hour: 6},
		BreakDuration: &br,
		ExpectedHours: decimal.NewFromInt(7),
	}
}

func at(d attendance.Date, hour, minute int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, time.UTC)
}

func punch(ts time.Time, dir attendance.Direction) attendance.PunchEvent {
	return attendance.PunchEvent{
		EmployeeID: "emp-1",
		ShiftID:    "shift-day",
		Timestamp:  ts,
		Direction:  dir,
		Source:     attendance.SourceDevice,
	}
}

// fullDay returns an In at 09:00 and an Out at 17:00 UTC on d.
func fullDay(d attendance.Date) []attendance.PunchEvent {
	return []attendance.PunchEvent{
		punch(at(d, 9, 0), attendance.DirectionIn),
		punch(at(d, 17, 0), attendance.DirectionOut),
	}
}

// nightWeek is Monday 2025-06-09 to Friday 2025-06-13.
var nightWeek = attendance.DateRange{
	Start: attendance.NewDate(2025, time.June, 9),
	End:   attendance.NewDate(2025, time.June, 13),
}

// nightShiftPunches clocks in at 22:00 on every day of rng and out at 06:00
// the next morning.
func nightShiftPunches(employeeID string, rng attendance.DateRange) []attendance.PunchEvent {
	var out []attendance.PunchEvent
	for _, d := range rng.Days() {
		out = append(out,
			attendance.PunchEvent{EmployeeID: employeeID, ShiftID: "shift-night", Timestamp: at(d, 22, 0), Direction: attendance.DirectionIn, Source: attendance.SourceDevice},
			attendance.PunchEvent{EmployeeID: employeeID, ShiftID: "shift-night", Timestamp: at(d.AddDays(1), 6, 0), Direction: attendance.DirectionOut, Source: attendance.SourceDevice},
		)
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
