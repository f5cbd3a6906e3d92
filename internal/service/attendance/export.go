package attendance

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{
	"EmployeeID", "Date", "InTime", "OutTime", "Status",
	"ShiftName", "TotalHours", "Source", "IsManual", "EditedBy",
}

const exportSheet = "Attendance"

// ExportRow is one employee-day of the monthly export.
type ExportRow struct {
	EmployeeID string
	Date       attendance.Date
	InTime     string
	OutTime    string
	Status     attendance.DayStatus
	ShiftName  string
	TotalHours float64
	Source     string
	IsManual   bool
	EditedBy   string
}

func (r ExportRow) record() []string {
	return []string{
		r.EmployeeID,
		r.Date.String(),
		r.InTime,
		r.OutTime,
		r.Status.String(),
		r.ShiftName,
		strconv.FormatFloat(r.TotalHours, 'f', 2, 64),
		r.Source,
		strconv.FormatBool(r.IsManual),
		r.EditedBy,
	}
}

// BuildExportRows produces one row per day of rng. TotalHours is the net
// worked time and is only filled for Present days.
func (e *Engine) BuildExportRows(employeeID string, shift attendance.Shift, rng attendance.DateRange, holidays attendance.HolidaySet, punches []attendance.PunchEvent, today attendance.Date) []ExportRow {
	buckets := e.BucketByShiftDay(shift, punches)
	rows := make([]ExportRow, 0, len(rng.Days()))

	for _, d := range rng.Days() {
		set := Normalize(buckets[d])
		status := e.Classify(ClassifyInput{
			Date:     d,
			Holidays: holidays,
			Punches:  set,
			IsFuture: IsFuture(d, today),
		})

		row := ExportRow{
			EmployeeID: employeeID,
			Date:       d,
			Status:     status,
			ShiftName:  shift.Name,
		}
		if set.FirstIn != nil {
			row.InTime = set.FirstIn.Timestamp.In(e.policy.Location).Format("15:04:05")
			row.Source = set.FirstIn.Source.String()
		}
		if set.LastOut != nil {
			row.OutTime = set.LastOut.Timestamp.In(e.policy.Location).Format("15:04:05")
		}
		for _, p := range set.Punches {
			if p.Source == attendance.SourceManual {
				row.IsManual = true
			}
			if p.EditedBy != nil && row.EditedBy == "" {
				row.EditedBy = *p.EditedBy
			}
		}
		if status == attendance.StatusPresent {
			m := e.ComputeMetricsOn(d, shift, set.FirstInTime(), set.LastOutTime())
			row.TotalHours = minutesToHours(m.NetWorkedMinutes)
		}

		rows = append(rows, row)
	}
	return rows
}

func WriteCSV(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.Date, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXLSX renders rows into a single-sheet workbook.
func WriteXLSX(rows []ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, title); err != nil {
			return nil, fmt.Errorf("write header %s: %w", title, err)
		}
	}

	for i, r := range rows {
		values := []interface{}{
			r.EmployeeID, r.Date.String(), r.InTime, r.OutTime, r.Status.String(),
			r.ShiftName, r.TotalHours, r.Source, r.IsManual, r.EditedBy,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %s: %w", r.Date, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
