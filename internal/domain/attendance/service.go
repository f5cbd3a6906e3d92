package attendance

import (
	"context"
	"time"
)

// AttendanceService exposes the attendance core to the HTTP layer. The
// employee is taken from the employee_id claim of the request context.
type AttendanceService interface {
	// Punch records the next toggled punch for the authenticated employee
	Punch(ctx context.Context, req PunchRequest) (PunchResponse, error)

	// GetLastPunch returns the latest punch ever recorded
	GetLastPunch(ctx context.Context) (LastPunchResponse, error)

	// GetPunchRecords lists the punches of one day
	GetPunchRecords(ctx context.Context, filter DayFilter) (PunchRecordsResponse, error)

	GetDailySummary(ctx context.Context, filter DayFilter) (DailySummaryResponse, error)
	GetMonthlySummary(ctx context.Context, filter MonthFilter) (MonthlySummaryResponse, error)
	GetYearlySummary(ctx context.Context, filter YearFilter) (YearlySummaryResponse, error)

	// GetWeeklySummary returns the seven days ending on the filter date
	GetWeeklySummary(ctx context.Context, filter DayFilter) (WeeklySummaryResponse, error)

	// GetCalendar returns one status tile per day of the month
	GetCalendar(ctx context.Context, filter MonthFilter) (CalendarResponse, error)

	// Export renders the month's daily rows as csv or xlsx
	Export(ctx context.Context, req ExportRequest) (ExportFile, error)

	// CorrectPunch rewrites a punch on behalf of a manager and notifies the
	// punch owner. The editor is the authenticated employee.
	CorrectPunch(ctx context.Context, punchID string, req CorrectPunchRequest) (PunchItem, error)
}

// AlertService raises attendance alerts outside of a request.
type AlertService interface {
	// DetectMissedPunchOuts records one alert per employee still punched in
	// after their shift ended and returns how many were created
	DetectMissedPunchOuts(ctx context.Context, now time.Time) (int, error)

	// The remaining methods act on the authenticated employee's alerts
	GetMyAlerts(ctx context.Context) ([]AlertResponse, error)
	GetUnreadCount(ctx context.Context) (UnreadCountResponse, error)
	MarkRead(ctx context.Context, id string) (AlertResponse, error)
}
