package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workkeeper-go/internal/handler/http/response"
	"github.com/cmlabs-hris/workkeeper-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Punch(w http.ResponseWriter, r *http.Request)
	GetLastPunch(w http.ResponseWriter, r *http.Request)
	GetPunchRecords(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	GetWeeklySummary(w http.ResponseWriter, r *http.Request)
	GetCalendar(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	CorrectPunch(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// queryInt reads an optional integer query parameter. Missing means 0.
func queryInt(r *http.Request, key string, errs *validator.ValidationErrors) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, validator.ValidationError{
			Field:   key,
			Message: key + " must be a number",
		})
		return 0
	}
	return n
}

func monthFilterFromQuery(r *http.Request) (attendance.MonthFilter, error) {
	var errs validator.ValidationErrors
	filter := attendance.MonthFilter{
		Month: queryInt(r, "month", &errs),
		Year:  queryInt(r, "year", &errs),
	}
	if len(errs) > 0 {
		return filter, errs
	}
	return filter, nil
}

// Punch implements AttendanceHandler.
func (h *attendanceHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchRequest

	// An empty body is a plain portal punch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Failed to decode punch request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Punch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, result.Message, result)
}

// GetLastPunch implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetLastPunch(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetLastPunch(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPunchRecords implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetPunchRecords(w http.ResponseWriter, r *http.Request) {
	filter := attendance.DayFilter{Date: r.URL.Query().Get("date")}

	result, err := h.attendanceService.GetPunchRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSummary implements AttendanceHandler. date selects a day, month (with an
// optional year) a month, and year alone a calendar year. Without parameters
// it reports today.
func (h *attendanceHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	ctx := r.Context()

	var (
		result interface{}
		err    error
	)
	switch {
	case query.Get("month") != "":
		var filter attendance.MonthFilter
		if filter, err = monthFilterFromQuery(r); err == nil {
			result, err = h.attendanceService.GetMonthlySummary(ctx, filter)
		}
	case query.Get("year") != "" && query.Get("date") == "":
		var errs validator.ValidationErrors
		filter := attendance.YearFilter{Year: queryInt(r, "year", &errs)}
		if len(errs) > 0 {
			err = errs
		} else {
			result, err = h.attendanceService.GetYearlySummary(ctx, filter)
		}
	default:
		result, err = h.attendanceService.GetDailySummary(ctx, attendance.DayFilter{Date: query.Get("date")})
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWeeklySummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetWeeklySummary(w http.ResponseWriter, r *http.Request) {
	filter := attendance.DayFilter{Date: r.URL.Query().Get("date")}

	result, err := h.attendanceService.GetWeeklySummary(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetCalendar implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetCalendar(w http.ResponseWriter, r *http.Request) {
	filter, err := monthFilterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetCalendar(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := monthFilterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.attendanceService.Export(r.Context(), attendance.ExportRequest{
		MonthFilter: filter,
		Format:      r.URL.Query().Get("format"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}

// CorrectPunch implements AttendanceHandler.
func (h *attendanceHandlerImpl) CorrectPunch(w http.ResponseWriter, r *http.Request) {
	punchID := chi.URLParam(r, "id")

	var req attendance.CorrectPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode punch correction", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CorrectPunch(r.Context(), punchID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}
