package attendance

import (
	"strings"

	"github.com/cmlabs-hris/workkeeper-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

// PunchRequest captures one scan. PunchTime is the capturing device's clock
// in RFC3339; when empty the server clock is used.
type PunchRequest struct {
	Source    string `json:"source"`
	Tag       string `json:"tag,omitempty"`
	PunchTime string `json:"punch_time,omitempty"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Source) {
		r.Source = SourcePortal.String()
	}
	if _, err := ParseSource(r.Source); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be one of: " + strings.Join(SourceValues, ", "),
		})
	}

	if !validator.IsEmpty(r.PunchTime) {
		if _, ok := validator.IsValidDateTime(r.PunchTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "punch_time",
				Message: "punch_time must be an RFC3339 timestamp",
			})
		}
	}

	if len(r.Tag) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "tag",
			Message: "tag must not exceed 50 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchItem struct {
	ID        string  `json:"id"`
	PunchType string  `json:"punch_type"`
	PunchTime string  `json:"punch_time"`
	Source    string  `json:"source"`
	Tag       string  `json:"tag,omitempty"`
	EditedBy  *string `json:"edited_by,omitempty"`
}

type PunchResponse struct {
	PunchItem
	EmployeeID string `json:"employee_id"`
	// Warning is set when the punch was accepted although it lies behind the
	// previous one.
	Warning         bool   `json:"warning"`
	WithinTolerance bool   `json:"within_tolerance"`
	Message         string `json:"message"`
}

type LastPunchResponse struct {
	HasPunch      bool       `json:"has_punch"`
	LastPunch     *PunchItem `json:"last_punch,omitempty"`
	NextPunchType string     `json:"next_punch_type"`
}

type PunchRecordsResponse struct {
	Date     string      `json:"date"`
	Punches  []PunchItem `json:"punches"`
	InCount  int         `json:"in_count"`
	OutCount int         `json:"out_count"`
	FirstIn  *string     `json:"first_in"`
	LastOut  *string     `json:"last_out"`
}

// CorrectPunchRequest is a manager's rewrite of one punch. PunchTime is
// RFC3339; Source defaults to manual.
type CorrectPunchRequest struct {
	PunchType string `json:"punch_type"`
	PunchTime string `json:"punch_time"`
	Source    string `json:"source,omitempty"`
}

func (r *CorrectPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParseDirection(r.PunchType); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_type",
			Message: "punch_type must be In or Out",
		})
	}

	if validator.IsEmpty(r.PunchTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_time",
			Message: "punch_time is required",
		})
	} else if _, ok := validator.IsValidDateTime(r.PunchTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_time",
			Message: "punch_time must be an RFC3339 timestamp",
		})
	}

	if validator.IsEmpty(r.Source) {
		r.Source = SourceManual.String()
	}
	if _, err := ParseSource(r.Source); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be one of: " + strings.Join(SourceValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// SUMMARY DTOs
// ========================================

// DayFilter selects one calendar day. An empty Date means today.
type DayFilter struct {
	Date string `json:"date"`
}

func (f *DayFilter) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(f.Date) {
		if _, ok := validator.IsValidDate(f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MonthFilter selects a calendar month. Zero values fall back to the current
// month and year.
type MonthFilter struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (f *MonthFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != 0 && (f.Month < 1 || f.Month > 12) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if f.Year != 0 && (f.Year < 2000 || f.Year > 9999) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 9999",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type YearFilter struct {
	Year int `json:"year"`
}

func (f *YearFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Year != 0 && (f.Year < 2000 || f.Year > 9999) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 9999",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DailySummaryResponse struct {
	Date               string  `json:"date"`
	Status             string  `json:"status"`
	Mode               string  `json:"mode"`
	ShiftName          string  `json:"shift_name"`
	ShiftStart         string  `json:"shift_start"`
	ShiftEnd           string  `json:"shift_end"`
	FirstIn            *string `json:"first_in"`
	LastOut            *string `json:"last_out"`
	TotalWorkedMinutes int     `json:"total_worked_minutes"`
	BreakMinutes       int     `json:"break_minutes"`
	NetWorkedMinutes   int     `json:"net_worked_minutes"`
	ExpectedMinutes    int     `json:"expected_minutes"`
	OvertimeMinutes    int     `json:"overtime_minutes"`
	LateMinutes        int     `json:"late_minutes"`
	EarlyLeaveMinutes  int     `json:"early_leave_minutes"`
	IsLate             bool    `json:"is_late"`
	IsEarlyLeave       bool    `json:"is_early_leave"`
	IsHalfDay          bool    `json:"is_half_day"`
	IsOvertime         bool    `json:"is_overtime"`
	IsWorkFromHome     bool    `json:"is_work_from_home"`
	Label              *string `json:"label"`
}

type SummaryResponse struct {
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	WeekdayCount       int     `json:"weekday_count"`
	HolidayDays        int     `json:"holiday_days"`
	TotalWorkingDays   int     `json:"total_working_days"`
	PresentDays        int     `json:"present_days"`
	AbsentDays         int     `json:"absent_days"`
	PartialDays        int     `json:"partial_days"`
	UpcomingDays       int     `json:"upcoming_days"`
	WorkFromHomeDays   int     `json:"work_from_home_days"`
	LateDays           int     `json:"late_days"`
	HalfDays           int     `json:"half_days"`
	TotalWorkedMinutes int     `json:"total_worked_minutes"`
	OvertimeMinutes    int     `json:"overtime_minutes"`
	TotalHoursWorked   float64 `json:"total_hours_worked"`
}

type MonthlySummaryResponse struct {
	Month int `json:"month"`
	Year  int `json:"year"`
	SummaryResponse
}

type YearlySummaryResponse struct {
	Year   int                      `json:"year"`
	Total  SummaryResponse          `json:"total"`
	Months []MonthlySummaryResponse `json:"months"`
}

type WeeklyDayResponse struct {
	Date       string  `json:"date"`
	Day        string  `json:"day"`
	Status     string  `json:"status"`
	Mode       string  `json:"mode"`
	InTime     *string `json:"in_time"`
	OutTime    *string `json:"out_time"`
	TotalHours float64 `json:"total_hours"`
}

type WeeklySummaryResponse struct {
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Days      []WeeklyDayResponse `json:"days"`
}

type CalendarDayResponse struct {
	Date      string  `json:"date"`
	Status    string  `json:"status"`
	Source    string  `json:"source"`
	FirstIn   *string `json:"first_in"`
	LastOut   *string `json:"last_out"`
	IsHoliday bool    `json:"is_holiday"`
	IsWeekend bool    `json:"is_weekend"`
	IsFuture  bool    `json:"is_future"`
}

type CalendarResponse struct {
	Month int                   `json:"month"`
	Year  int                   `json:"year"`
	Days  []CalendarDayResponse `json:"days"`
}

// ========================================
// EXPORT DTOs
// ========================================

const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
)

type ExportRequest struct {
	MonthFilter
	Format string `json:"format"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := r.MonthFilter.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	r.Format = strings.ToLower(strings.TrimSpace(r.Format))
	if r.Format == "" {
		r.Format = ExportFormatCSV
	}
	if !validator.IsInSlice(r.Format, []string{ExportFormatCSV, ExportFormatXLSX}) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: csv, xlsx",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ========================================
// ALERT DTOs
// ========================================

type AlertResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Date      string `json:"date"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
