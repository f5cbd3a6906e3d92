package attendance

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workkeeper-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type AttendanceServiceImpl struct {
	tx           database.Transactor
	punchRepo    attendance.PunchRepository
	employeeRepo attendance.EmployeeRepository
	shiftRepo    attendance.ShiftRepository
	holidayRepo  attendance.HolidayRepository
	alertRepo    attendance.AlertRepository
	engine       *Engine
	now          func() time.Time
}

// employeeIDFromContext reads the employee_id claim set by the JWT verifier.
func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", attendance.ErrMissingEmployeeClaim
	}
	return employeeID, nil
}

// roleFromContext reads the role claim. The auth middleware has already
// rejected unknown roles.
func roleFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

// timePtrToString formats an optional instant in the policy location.
func (s *AttendanceServiceImpl) timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.In(s.engine.Location()).Format(time.RFC3339)
	return &format
}

func (s *AttendanceServiceImpl) today() attendance.Date {
	return attendance.DateOf(s.now(), s.engine.Location())
}

// employeeShift resolves the authenticated employee and their shift.
func (s *AttendanceServiceImpl) employeeShift(ctx context.Context) (string, attendance.Shift, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return "", attendance.Shift{}, err
	}

	shift, err := s.shiftOf(ctx, employeeID)
	if err != nil {
		return "", attendance.Shift{}, err
	}
	return employeeID, shift, nil
}

func (s *AttendanceServiceImpl) shiftOf(ctx context.Context, employeeID string) (attendance.Shift, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.Shift{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.ShiftID == nil {
		return attendance.Shift{}, attendance.ErrShiftNotAssigned
	}

	shift, err := s.shiftRepo.GetByID(ctx, *emp.ShiftID)
	if err != nil {
		return attendance.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return shift, nil
}

// loadRange fetches the punches and the expanded holiday set of rng
// concurrently. Punches are loaded for every shift day of rng, so an overnight
// shift also brings in the morning after rng.End.
func (s *AttendanceServiceImpl) loadRange(ctx context.Context, employeeID string, shift attendance.Shift, rng attendance.DateRange) ([]attendance.PunchEvent, attendance.HolidaySet, error) {
	var (
		punches  []attendance.PunchEvent
		holidays []attendance.Holiday
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		from, to := s.engine.PunchBounds(shift, rng)
		var err error
		punches, err = s.punchRepo.ListByEmployeeBetween(gctx, employeeID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list punches: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		holidays, err = s.holidayRepo.ListBetween(gctx, rng.Start, rng.End)
		if err != nil {
			return fmt.Errorf("failed to list holidays: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	set, err := ExpandHolidays(holidays, rng)
	if err != nil {
		slog.WarnContext(ctx, "skipping holidays with invalid recurrence", "error", err)
	}
	return punches, set, nil
}

// Punch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Punch(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}
	source, err := attendance.ParseSource(req.Source)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	employeeID, shift, err := s.employeeShift(ctx)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	nowUTC := s.now().UTC()
	candidate := nowUTC
	if req.PunchTime != "" {
		candidate, err = time.Parse(time.RFC3339, req.PunchTime)
		if err != nil {
			return attendance.PunchResponse{}, fmt.Errorf("failed to parse punch_time: %w", err)
		}
		candidate = candidate.UTC()
	}
	if err := s.engine.CheckPunchTime(candidate, nowUTC); err != nil {
		return attendance.PunchResponse{}, err
	}

	var (
		created attendance.PunchEvent
		verdict PunchVerdict
	)
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.punchRepo.LockEmployee(txCtx, employeeID); err != nil {
			return fmt.Errorf("failed to lock employee punches: %w", err)
		}

		last, err := s.punchRepo.GetLatestByEmployee(txCtx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get latest punch: %w", err)
		}

		verdict, err = s.engine.ValidateNewPunch(last, candidate)
		if err != nil {
			return err
		}

		// The toggle restarts with In on every new shift day.
		direction := verdict.Next
		if last != nil && s.engine.ShiftDay(shift, last.Timestamp) != s.engine.ShiftDay(shift, candidate) {
			direction = attendance.DirectionIn
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate punch id: %w", err)
		}

		created, err = s.punchRepo.Create(txCtx, attendance.PunchEvent{
			ID:         id.String(),
			EmployeeID: employeeID,
			ShiftID:    shift.ID,
			Timestamp:  candidate,
			Direction:  direction,
			Source:     source,
			Tag:        req.Tag,
			CreatedAt:  nowUTC,
		})
		if err != nil {
			return fmt.Errorf("failed to create punch: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	message := fmt.Sprintf("Punched %s successfully", created.Direction)
	if verdict.Warning {
		slog.WarnContext(ctx, "accepted punch behind last recorded punch",
			"employee_id", employeeID,
			"behind", verdict.ClockBehind.String(),
			"within_tolerance", verdict.WithinTolerance,
		)
		message = fmt.Sprintf("Punched %s, device clock is %s behind the last punch", created.Direction, verdict.ClockBehind.Round(time.Second))
	}

	return attendance.PunchResponse{
		PunchItem:       s.mapPunchToItem(created),
		EmployeeID:      created.EmployeeID,
		Warning:         verdict.Warning,
		WithinTolerance: verdict.WithinTolerance,
		Message:         message,
	}, nil
}

// GetLastPunch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetLastPunch(ctx context.Context) (attendance.LastPunchResponse, error) {
	employeeID, shift, err := s.employeeShift(ctx)
	if err != nil {
		return attendance.LastPunchResponse{}, err
	}

	last, err := s.punchRepo.GetLatestByEmployee(ctx, employeeID)
	if err != nil {
		return attendance.LastPunchResponse{}, fmt.Errorf("failed to get latest punch: %w", err)
	}
	if last == nil {
		return attendance.LastPunchResponse{NextPunchType: attendance.DirectionIn.String()}, nil
	}

	next := NextDirection(last.Direction)
	if s.engine.ShiftDay(shift, last.Timestamp) != s.engine.ShiftDay(shift, s.now()) {
		next = attendance.DirectionIn
	}

	item := s.mapPunchToItem(*last)
	return attendance.LastPunchResponse{
		HasPunch:      true,
		LastPunch:     &item,
		NextPunchType: next.String(),
	}, nil
}

func (s *AttendanceServiceImpl) resolveDay(filter attendance.DayFilter) (attendance.Date, error) {
	if filter.Date == "" {
		return s.today(), nil
	}
	return attendance.ParseDate(filter.Date)
}

// GetPunchRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetPunchRecords(ctx context.Context, filter attendance.DayFilter) (attendance.PunchRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.PunchRecordsResponse{}, err
	}
	date, err := s.resolveDay(filter)
	if err != nil {
		return attendance.PunchRecordsResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.PunchRecordsResponse{}, err
	}

	from, to := s.engine.DayBounds(date)
	punches, err := s.punchRepo.ListByEmployeeBetween(ctx, employeeID, from, to)
	if err != nil {
		return attendance.PunchRecordsResponse{}, fmt.Errorf("failed to list punches: %w", err)
	}

	records := s.engine.DayPunchRecords(Normalize(punches))
	items := make([]attendance.PunchItem, 0, len(records.Punches))
	for _, p := range records.Punches {
		items = append(items, s.mapPunchToItem(p))
	}

	return attendance.PunchRecordsResponse{
		Date:     date.String(),
		Punches:  items,
		InCount:  records.InCount(),
		OutCount: records.OutCount(),
		FirstIn:  s.timePtrToString(records.FirstIn),
		LastOut:  s.timePtrToString(records.LastOut),
	}, nil
}

// GetDailySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDailySummary(ctx context.Context, filter attendance.DayFilter) (attendance.DailySummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.DailySummaryResponse{}, err
	}
	date, err := s.resolveDay(filter)
	if err != nil {
		return attendance.DailySummaryResponse{}, err
	}

	employeeID, shift, err := s.employeeShift(ctx)
	if err != nil {
		return attendance.DailySummaryResponse{}, err
	}

	punches, holidays, err := s.loadRange(ctx, employeeID, shift, attendance.DateRange{Start: date, End: date})
	if err != nil {
		return attendance.DailySummaryResponse{}, err
	}

	set := Normalize(s.engine.BucketByShiftDay(shift, punches)[date])
	status := s.engine.Classify(ClassifyInput{
		Date:     date,
		Holidays: holidays,
		Punches:  set,
		IsFuture: IsFuture(date, s.today()),
	})
	metrics := s.engine.ComputeMetricsOn(date, shift, set.FirstInTime(), set.LastOutTime())

	resp := attendance.DailySummaryResponse{
		Date:               date.String(),
		Status:             status.String(),
		Mode:               string(s.engine.PresenceMode(status, metrics)),
		ShiftName:          shift.Name,
		ShiftStart:         shift.Start.String(),
		ShiftEnd:           shift.End.String(),
		FirstIn:            s.timePtrToString(set.FirstInTime()),
		LastOut:            s.timePtrToString(set.LastOutTime()),
		TotalWorkedMinutes: metrics.TotalWorkedMinutes,
		BreakMinutes:       metrics.BreakMinutes,
		NetWorkedMinutes:   metrics.NetWorkedMinutes,
		ExpectedMinutes:    metrics.ExpectedMinutes,
		OvertimeMinutes:    metrics.OvertimeMinutes,
		LateMinutes:        metrics.LateMinutes,
		EarlyLeaveMinutes:  metrics.EarlyLeaveMinutes,
		IsLate:             metrics.IsLate,
		IsEarlyLeave:       metrics.IsEarlyLeave,
		IsHalfDay:          metrics.IsHalfDay,
		IsOvertime:         metrics.IsOvertime,
		IsWorkFromHome:     set.HasWorkFromHome(),
	}
	if metrics.Label != nil {
		label := metrics.Label.String()
		resp.Label = &label
	}
	return resp, nil
}

func (s *AttendanceServiceImpl) resolveMonth(filter attendance.MonthFilter) (int, time.Month) {
	now := s.now().In(s.engine.Location())
	year, month := now.Year(), now.Month()
	if filter.Year != 0 {
		year = filter.Year
	}
	if filter.Month != 0 {
		month = time.Month(filter.Month)
	}
	return year, month
}

// GetMonthlySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMonthlySummary(ctx context.Context, filter attendance.MonthFilter) (attendance.MonthlySummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}
	year, month := s.resolveMonth(filter)

	employeeID, shift, err := s.employeeShift(ctx)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	rng := attendance.MonthRange(year, month)
	punches, holidays, err := s.loadRange(ctx, employeeID, shift, rng)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	summary := s.engine.AggregateAsOf(rng, shift, holidays, punches, s.today())
	return mapMonthlySummary(summary), nil
}

// GetYearlySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetYearlySummary(ctx context.Context, filter attendance.YearFilter) (attendance.YearlySummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.YearlySummaryResponse{}, err
	}
	year := filter.Year
	if year == 0 {
		year = s.now().In(s.engine.Location()).Year()
	}

	employeeID, shift, err := s.employeeShift(ctx)
	if err != nil {
		return attendance.YearlySummaryResponse{}, err
	}

	rng := attendance.DateRange{
		Start: attendance.NewDate(year, time.January, 1),
		End:   attendance.NewDate(year, time.December, 31),
	}
	punches, holidays, err := s.loadRange(ctx, employeeID, shift, rng)
	if err != nil {
		return attendance.YearlySummaryResponse{}, err
	}

	today := s.today()
	months := s.engine.AggregateYear(year, shift, holidays, punches, &today)

	resp := attendance.YearlySummaryResponse{
		Year:   year,
		Total:  mapSummary(SumPeriods(months)),
		Months: make([]attendance.MonthlySummaryResponse, 0, len(months)),
	}
	for _, m := range months {
		resp.Months = append(resp.Months, mapMonthlySummary(m))
	}
	return resp, nil
}

// GetWeeklySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetWeeklySummary(ctx context.Context, filter attendance.DayFilter) (attendance.WeeklySummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.WeeklySummaryResponse{}, err
	}
	end, err := s.resolveDay(filter)
	if err != nil {
		return attendance.WeeklySummaryResponse{}, err
	}

	employeeID, shift, err := s.employeeShift(ctx)
	if err != nil {
		return attendance.WeeklySummaryResponse{}, err
	}

	rng := attendance.DateRange{Start: end.AddDays(-6), End: end}
	punches, holidays, err := s.loadRange(ctx, employeeID, shift, rng)
	if err != nil {
		return attendance.WeeklySummaryResponse{}, err
	}

	days := s.engine.WeeklyPresence(rng, shift, holidays, punches, s.today())
	resp := attendance.WeeklySummaryResponse{
		StartDate: rng.Start.String(),
		EndDate:   rng.End.String(),
		Days:      make([]attendance.WeeklyDayResponse, 0, len(days)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, attendance.WeeklyDayResponse{
			Date:       d.Date.String(),
			Day:        d.Date.Weekday().String()[:3],
			Status:     d.Status.String(),
			Mode:       string(d.Mode),
			InTime:     s.timePtrToString(d.FirstIn),
			OutTime:    s.timePtrToString(d.LastOut),
			TotalHours: minutesToHours(d.NetWorkedMinutes),
		})
	}
	return resp, nil
}

// GetCalendar implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetCalendar(ctx context.Context, filter attendance.MonthFilter) (attendance.CalendarResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.CalendarResponse{}, err
	}
	year, month := s.resolveMonth(filter)

	employeeID, shift, err := s.employeeShift(ctx)
	if err != nil {
		return attendance.CalendarResponse{}, err
	}

	rng := attendance.MonthRange(year, month)
	punches, holidays, err := s.loadRange(ctx, employeeID, shift, rng)
	if err != nil {
		return attendance.CalendarResponse{}, err
	}

	days := s.engine.Calendar(rng, shift, holidays, punches, s.today())
	resp := attendance.CalendarResponse{
		Month: int(month),
		Year:  year,
		Days:  make([]attendance.CalendarDayResponse, 0, len(days)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, attendance.CalendarDayResponse{
			Date:      d.Date.String(),
			Status:    d.Status.String(),
			Source:    string(d.Source),
			FirstIn:   s.timePtrToString(d.FirstIn),
			LastOut:   s.timePtrToString(d.LastOut),
			IsHoliday: d.IsHoliday,
			IsWeekend: d.IsWeekend,
			IsFuture:  d.IsFuture,
		})
	}
	return resp, nil
}

// Export implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Export(ctx context.Context, req attendance.ExportRequest) (attendance.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return attendance.ExportFile{}, err
	}
	year, month := s.resolveMonth(req.MonthFilter)

	employeeID, shift, err := s.employeeShift(ctx)
	if err != nil {
		return attendance.ExportFile{}, err
	}

	rng := attendance.MonthRange(year, month)
	punches, holidays, err := s.loadRange(ctx, employeeID, shift, rng)
	if err != nil {
		return attendance.ExportFile{}, err
	}

	rows := s.engine.BuildExportRows(employeeID, shift, rng, holidays, punches, s.today())
	base := fmt.Sprintf("attendance_%s_%04d-%02d", employeeID, year, int(month))

	switch req.Format {
	case attendance.ExportFormatXLSX:
		content, err := WriteXLSX(rows)
		if err != nil {
			return attendance.ExportFile{}, fmt.Errorf("failed to render xlsx export: %w", err)
		}
		return attendance.ExportFile{
			Filename:    base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	default:
		var buf bytes.Buffer
		if err := WriteCSV(&buf, rows); err != nil {
			return attendance.ExportFile{}, fmt.Errorf("failed to render csv export: %w", err)
		}
		return attendance.ExportFile{
			Filename:    base + ".csv",
			ContentType: "text/csv",
			Content:     buf.Bytes(),
		}, nil
	}
}

// CorrectPunch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CorrectPunch(ctx context.Context, punchID string, req attendance.CorrectPunchRequest) (attendance.PunchItem, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchItem{}, err
	}
	direction, err := attendance.ParseDirection(req.PunchType)
	if err != nil {
		return attendance.PunchItem{}, err
	}
	source, err := attendance.ParseSource(req.Source)
	if err != nil {
		return attendance.PunchItem{}, err
	}
	punchTime, err := time.Parse(time.RFC3339, req.PunchTime)
	if err != nil {
		return attendance.PunchItem{}, fmt.Errorf("failed to parse punch_time: %w", err)
	}
	punchTime = punchTime.UTC()

	nowUTC := s.now().UTC()
	if err := s.engine.CheckPunchTime(punchTime, nowUTC); err != nil {
		return attendance.PunchItem{}, err
	}

	editorID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.PunchItem{}, err
	}
	editor, err := s.employeeRepo.GetByID(ctx, editorID)
	if err != nil {
		return attendance.PunchItem{}, fmt.Errorf("failed to get editor: %w", err)
	}
	editedBy := fmt.Sprintf("%s (%s)", roleFromContext(ctx), editor.Name)

	var updated attendance.PunchEvent
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.punchRepo.GetByID(txCtx, punchID)
		if err != nil {
			return fmt.Errorf("failed to get punch: %w", err)
		}

		if err := s.punchRepo.LockEmployee(txCtx, current.EmployeeID); err != nil {
			return fmt.Errorf("failed to lock employee punches: %w", err)
		}

		current.Timestamp = punchTime
		current.Direction = direction
		current.Source = source
		current.EditedBy = &editedBy

		updated, err = s.punchRepo.Update(txCtx, current)
		if err != nil {
			return fmt.Errorf("failed to update punch: %w", err)
		}

		date := attendance.DateOf(updated.Timestamp, s.engine.Location())
		if shift, err := s.shiftOf(txCtx, updated.EmployeeID); err == nil {
			date = s.engine.ShiftDay(shift, updated.Timestamp)
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate alert id: %w", err)
		}
		_, err = s.alertRepo.Create(txCtx, attendance.Alert{
			ID:         id.String(),
			EmployeeID: updated.EmployeeID,
			Type:       attendance.AlertTypeAttendance,
			Message:    fmt.Sprintf("Your attendance on %s was updated by %s.", date, editedBy),
			Date:       date,
			CreatedAt:  nowUTC,
		})
		if err != nil {
			return fmt.Errorf("failed to create correction alert: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.PunchItem{}, err
	}

	slog.InfoContext(ctx, "punch corrected",
		"punch_id", updated.ID,
		"employee_id", updated.EmployeeID,
		"edited_by", editedBy,
	)
	return s.mapPunchToItem(updated), nil
}

func (s *AttendanceServiceImpl) mapPunchToItem(p attendance.PunchEvent) attendance.PunchItem {
	return attendance.PunchItem{
		ID:        p.ID,
		PunchType: p.Direction.String(),
		PunchTime: p.Timestamp.In(s.engine.Location()).Format(time.RFC3339),
		Source:    p.Source.String(),
		Tag:       p.Tag,
		EditedBy:  p.EditedBy,
	}
}

func mapSummary(p attendance.PeriodSummary) attendance.SummaryResponse {
	return attendance.SummaryResponse{
		StartDate:          p.Start.String(),
		EndDate:            p.End.String(),
		WeekdayCount:       p.WeekdayCount,
		HolidayDays:        p.HolidayDays,
		TotalWorkingDays:   p.TotalWorkingDays,
		PresentDays:        p.PresentDays,
		AbsentDays:         p.AbsentDays,
		PartialDays:        p.PartialDays,
		UpcomingDays:       p.UpcomingDays,
		WorkFromHomeDays:   p.WorkFromHomeDays,
		LateDays:           p.LateDays,
		HalfDays:           p.HalfDays,
		TotalWorkedMinutes: p.TotalWorkedMinutes,
		OvertimeMinutes:    p.OvertimeMinutes,
		TotalHoursWorked:   p.TotalHoursWorked,
	}
}

func mapMonthlySummary(p attendance.PeriodSummary) attendance.MonthlySummaryResponse {
	return attendance.MonthlySummaryResponse{
		Month:           int(p.Start.Month),
		Year:            p.Start.Year,
		SummaryResponse: mapSummary(p),
	}
}

func NewAttendanceService(
	tx database.Transactor,
	punchRepo attendance.PunchRepository,
	employeeRepo attendance.EmployeeRepository,
	shiftRepo attendance.ShiftRepository,
	holidayRepo attendance.HolidayRepository,
	alertRepo attendance.AlertRepository,
	engine *Engine,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:           tx,
		punchRepo:    punchRepo,
		employeeRepo: employeeRepo,
		shiftRepo:    shiftRepo,
		holidayRepo:  holidayRepo,
		alertRepo:    alertRepo,
		engine:       engine,
		now:          time.Now,
	}
}
