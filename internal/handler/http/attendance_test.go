package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workkeeper-go/internal/domain/auth"
	"github.com/cmlabs-hris/workkeeper-go/internal/handler/http/response"
	"github.com/cmlabs-hris/workkeeper-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type fakeAttendanceService struct {
	punchReq     attendance.PunchRequest
	punchErr     error
	dayFilter    *attendance.DayFilter
	monthFilter  *attendance.MonthFilter
	yearFilter   *attendance.YearFilter
	exportReq    attendance.ExportRequest
	correctID    string
	correctReq   attendance.CorrectPunchRequest
	correctErr   error
	calledMethod string
	employeeID   string
}

func (f *fakeAttendanceService) recordEmployee(ctx context.Context, method string) {
	f.calledMethod = method
	if _, claims, err := jwtauth.FromContext(ctx); err == nil {
		f.employeeID, _ = claims["employee_id"].(string)
	}
}

func (f *fakeAttendanceService) Punch(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	f.recordEmployee(ctx, "Punch")
	f.punchReq = req
	if f.punchErr != nil {
		return attendance.PunchResponse{}, f.punchErr
	}
	return attendance.PunchResponse{
		PunchItem:  attendance.PunchItem{ID: "p-1", PunchType: "In", PunchTime: "2025-02-03T09:00:00Z", Source: "portal"},
		EmployeeID: f.employeeID,
		Message:    "Punched In",
	}, nil
}

func (f *fakeAttendanceService) GetLastPunch(ctx context.Context) (attendance.LastPunchResponse, error) {
	f.recordEmployee(ctx, "GetLastPunch")
	return attendance.LastPunchResponse{NextPunchType: "In"}, nil
}

func (f *fakeAttendanceService) GetPunchRecords(ctx context.Context, filter attendance.DayFilter) (attendance.PunchRecordsResponse, error) {
	f.recordEmployee(ctx, "GetPunchRecords")
	f.dayFilter = &filter
	return attendance.PunchRecordsResponse{Date: filter.Date, Punches: []attendance.PunchItem{}}, nil
}

func (f *fakeAttendanceService) GetDailySummary(ctx context.Context, filter attendance.DayFilter) (attendance.DailySummaryResponse, error) {
	f.recordEmployee(ctx, "GetDailySummary")
	f.dayFilter = &filter
	return attendance.DailySummaryResponse{Date: filter.Date, Status: "Present"}, nil
}

func (f *fakeAttendanceService) GetMonthlySummary(ctx context.Context, filter attendance.MonthFilter) (attendance.MonthlySummaryResponse, error) {
	f.recordEmployee(ctx, "GetMonthlySummary")
	f.monthFilter = &filter
	return attendance.MonthlySummaryResponse{Month: filter.Month, Year: filter.Year}, nil
}

func (f *fakeAttendanceService) GetYearlySummary(ctx context.Context, filter attendance.YearFilter) (attendance.YearlySummaryResponse, error) {
	f.recordEmployee(ctx, "GetYearlySummary")
	f.yearFilter = &filter
	return attendance.YearlySummaryResponse{Year: filter.Year}, nil
}

func (f *fakeAttendanceService) GetCalendar(ctx context.Context, filter attendance.MonthFilter) (attendance.CalendarResponse, error) {
	f.recordEmployee(ctx, "GetCalendar")
	f.monthFilter = &filter
	return attendance.CalendarResponse{Month: filter.Month, Year: filter.Year}, nil
}

func (f *fakeAttendanceService) Export(ctx context.Context, req attendance.ExportRequest) (attendance.ExportFile, error) {
	f.recordEmployee(ctx, "Export")
	f.exportReq = req
	return attendance.ExportFile{
		Filename:    "attendance_emp-1_2025-02.csv",
		ContentType: "text/csv",
		Content:     []byte("employee_id,date\n"),
	}, nil
}

func (f *fakeAttendanceService) GetWeeklySummary(ctx context.Context, filter attendance.DayFilter) (attendance.WeeklySummaryResponse, error) {
	f.recordEmployee(ctx, "GetWeeklySummary")
	f.dayFilter = &filter
	return attendance.WeeklySummaryResponse{EndDate: filter.Date}, nil
}

func (f *fakeAttendanceService) CorrectPunch(ctx context.Context, punchID string, req attendance.CorrectPunchRequest) (attendance.PunchItem, error) {
	f.recordEmployee(ctx, "CorrectPunch")
	f.correctID = punchID
	f.correctReq = req
	if f.correctErr != nil {
		return attendance.PunchItem{}, f.correctErr
	}
	return attendance.PunchItem{ID: punchID, PunchType: req.PunchType, PunchTime: req.PunchTime, Source: "manual"}, nil
}

type fakeAlertService struct {
	calledMethod string
	markID       string
	markErr      error
}

func (f *fakeAlertService) DetectMissedPunchOuts(ctx context.Context, now time.Time) (int, error) {
	f.calledMethod = "DetectMissedPunchOuts"
	return 0, nil
}

func (f *fakeAlertService) GetMyAlerts(ctx context.Context) ([]attendance.AlertResponse, error) {
	f.calledMethod = "GetMyAlerts"
	return []attendance.AlertResponse{{ID: "a-1", Type: attendance.AlertTypeAttendance}}, nil
}

func (f *fakeAlertService) GetUnreadCount(ctx context.Context) (attendance.UnreadCountResponse, error) {
	f.calledMethod = "GetUnreadCount"
	return attendance.UnreadCountResponse{Count: 3}, nil
}

func (f *fakeAlertService) MarkRead(ctx context.Context, id string) (attendance.AlertResponse, error) {
	f.calledMethod = "MarkRead"
	f.markID = id
	if f.markErr != nil {
		return attendance.AlertResponse{}, f.markErr
	}
	return attendance.AlertResponse{ID: id, IsRead: true}, nil
}

type handlerFixture struct {
	svc    *fakeAttendanceService
	alerts *fakeAlertService
	tokens jwt.Service
	router http.Handler
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	svc := &fakeAttendanceService{}
	alerts := &fakeAlertService{}
	tokens := jwt.NewJWTService(handlerTestSecret, "1h")
	router := NewRouter(RouterOptions{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		AllowedOrigins: []string{"http://localhost:3000"},
		LogLevel:       slog.LevelError,
	}, tokens, NewAttendanceHandler(svc), NewAlertHandler(alerts))
	return &handlerFixture{svc: svc, alerts: alerts, tokens: tokens, router: router}
}

func (f *handlerFixture) token(t *testing.T, employeeID string) string {
	t.Helper()
	return f.tokenAs(t, employeeID, auth.RoleEmployee)
}

func (f *handlerFixture) tokenAs(t *testing.T, employeeID string, role auth.Role) string {
	t.Helper()
	token, _, err := f.tokens.GenerateAccessToken(employeeID, role)
	require.NoError(t, err)
	return token
}

func (f *handlerFixture) do(t *testing.T, method, target, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRouter_Heartbeat(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	f := newHandlerFixture(t)

	t.Run("missing token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/attendance/last-punch", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, f.svc.calledMethod)
	})

	t.Run("missing employee claim", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/attendance/last-punch", f.token(t, ""), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		token := f.token(t, "emp-1")
		f.tokens.RevokeToken(token)

		rec := f.do(t, http.MethodGet, "/api/v1/attendance/last-punch", token, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Token revoked", decodeResponse(t, rec).Error.Message)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, token, err := f.tokens.JWTAuth().Encode(map[string]interface{}{
			"employee_id": "emp-1",
			"role":        "intern",
			"type":        "access",
			"exp":         time.Now().Add(time.Hour).Unix(),
		})
		require.NoError(t, err)

		rec := f.do(t, http.MethodGet, "/api/v1/attendance/last-punch", token, nil)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/attendance/last-punch", f.token(t, "emp-1"), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "emp-1", f.svc.employeeID)
	})
}

func TestPunchHandler(t *testing.T) {
	f := newHandlerFixture(t)
	token := f.token(t, "emp-1")

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/punch", token,
		strings.NewReader(`{"source":"device","tag":"wfh"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Punched In", resp.Message)
	assert.Equal(t, attendance.PunchRequest{Source: "device", Tag: "wfh"}, f.svc.punchReq)
}

func TestPunchHandler_EmptyBody(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/punch", f.token(t, "emp-1"), nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, attendance.PunchRequest{}, f.svc.punchReq)
}

func TestPunchHandler_MalformedBody(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/punch", f.token(t, "emp-1"), bytes.NewBufferString(`{"source":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.svc.calledMethod)
}

func TestPunchHandler_GuardErrors(t *testing.T) {
	base := time.Date(2025, time.February, 3, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{
			name:     "duplicate",
			err:      &attendance.DuplicatePunchError{LastDirection: attendance.DirectionIn, Last: base, Candidate: base.Add(2 * time.Second), Gap: 2 * time.Second},
			wantCode: http.StatusConflict,
			wantErr:  "CONFLICT",
		},
		{
			name:     "clock skew",
			err:      &attendance.ClockSkewError{Last: base, Candidate: base.Add(-7 * time.Hour), Behind: 7 * time.Hour},
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  "CLOCK_SKEW",
		},
		{
			name:     "shift missing",
			err:      attendance.ErrShiftNotAssigned,
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  "SHIFT_NOT_ASSIGNED",
		},
		{
			name:     "future punch",
			err:      &attendance.FuturePunchError{Candidate: base.Add(time.Hour), Now: base, Ahead: time.Hour},
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  "FUTURE_PUNCH",
		},
		{
			name:     "employee missing",
			err:      attendance.ErrEmployeeNotFound,
			wantCode: http.StatusNotFound,
			wantErr:  "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.svc.punchErr = tt.err

			rec := f.do(t, http.MethodPost, "/api/v1/attendance/punch", f.token(t, "emp-1"), strings.NewReader(`{}`))

			assert.Equal(t, tt.wantCode, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantErr, resp.Error.Code)
		})
	}
}

func TestSummaryHandler_Routing(t *testing.T) {
	tests := []struct {
		query      string
		wantMethod string
	}{
		{"", "GetDailySummary"},
		{"?date=2025-02-03", "GetDailySummary"},
		{"?month=2&year=2025", "GetMonthlySummary"},
		{"?month=2", "GetMonthlySummary"},
		{"?year=2025", "GetYearlySummary"},
	}

	for _, tt := range tests {
		t.Run(tt.wantMethod+tt.query, func(t *testing.T) {
			f := newHandlerFixture(t)

			rec := f.do(t, http.MethodGet, "/api/v1/attendance/summary"+tt.query, f.token(t, "emp-1"), nil)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantMethod, f.svc.calledMethod)
		})
	}
}

func TestSummaryHandler_Filters(t *testing.T) {
	f := newHandlerFixture(t)
	token := f.token(t, "emp-1")

	f.do(t, http.MethodGet, "/api/v1/attendance/summary?month=2&year=2025", token, nil)
	require.NotNil(t, f.svc.monthFilter)
	assert.Equal(t, attendance.MonthFilter{Month: 2, Year: 2025}, *f.svc.monthFilter)

	f.do(t, http.MethodGet, "/api/v1/attendance/summary?year=2024", token, nil)
	require.NotNil(t, f.svc.yearFilter)
	assert.Equal(t, 2024, f.svc.yearFilter.Year)

	f.do(t, http.MethodGet, "/api/v1/attendance/summary?date=2025-02-03", token, nil)
	require.NotNil(t, f.svc.dayFilter)
	assert.Equal(t, "2025-02-03", f.svc.dayFilter.Date)
}

func TestSummaryHandler_BadNumbers(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/summary?month=feb&year=twenty", f.token(t, "emp-1"), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "month")
	assert.Contains(t, resp.Error.Details, "year")
	assert.Empty(t, f.svc.calledMethod)
}

func TestCalendarAndPunchesHandlers(t *testing.T) {
	f := newHandlerFixture(t)
	token := f.token(t, "emp-1")

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/calendar?month=3&year=2025", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GetCalendar", f.svc.calledMethod)
	assert.Equal(t, attendance.MonthFilter{Month: 3, Year: 2025}, *f.svc.monthFilter)

	rec = f.do(t, http.MethodGet, "/api/v1/attendance/punches?date=2025-03-04", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GetPunchRecords", f.svc.calledMethod)
	assert.Equal(t, "2025-03-04", f.svc.dayFilter.Date)
}

func TestExportHandler(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/export?month=2&year=2025&format=csv", f.token(t, "emp-1"), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="attendance_emp-1_2025-02.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "employee_id,date\n", rec.Body.String())
	assert.Equal(t, attendance.ExportRequest{
		MonthFilter: attendance.MonthFilter{Month: 2, Year: 2025},
		Format:      "csv",
	}, f.svc.exportReq)
}

func TestWeeklySummaryHandler(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/weekly?date=2025-06-13", f.token(t, "emp-1"), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GetWeeklySummary", f.svc.calledMethod)
	assert.Equal(t, "2025-06-13", f.svc.dayFilter.Date)
}

func TestCorrectPunchHandler(t *testing.T) {
	body := `{"punch_type":"Out","punch_time":"2025-06-10T06:00:00Z"}`

	t.Run("employee role is forbidden", func(t *testing.T) {
		f := newHandlerFixture(t)

		rec := f.do(t, http.MethodPut, "/api/v1/attendance/punches/p-9", f.token(t, "emp-1"), strings.NewReader(body))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, f.svc.calledMethod)
	})

	for _, role := range []auth.Role{auth.RoleManager, auth.RoleOwner} {
		t.Run(string(role), func(t *testing.T) {
			f := newHandlerFixture(t)

			rec := f.do(t, http.MethodPut, "/api/v1/attendance/punches/p-9", f.tokenAs(t, "mgr-1", role), strings.NewReader(body))

			require.Equal(t, http.StatusOK, rec.Code)
			resp := decodeResponse(t, rec)
			assert.True(t, resp.Success)
			assert.Equal(t, "Attendance updated successfully", resp.Message)
			assert.Equal(t, "p-9", f.svc.correctID)
			assert.Equal(t, "mgr-1", f.svc.employeeID)
			assert.Equal(t, "Out", f.svc.correctReq.PunchType)
		})
	}

	t.Run("unknown punch", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.svc.correctErr = attendance.ErrPunchNotFound

		rec := f.do(t, http.MethodPut, "/api/v1/attendance/punches/p-404", f.tokenAs(t, "mgr-1", auth.RoleManager), strings.NewReader(body))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAlertHandlers(t *testing.T) {
	f := newHandlerFixture(t)
	token := f.token(t, "emp-1")

	rec := f.do(t, http.MethodGet, "/api/v1/alerts", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GetMyAlerts", f.alerts.calledMethod)

	rec = f.do(t, http.MethodGet, "/api/v1/alerts/unread-count", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GetUnreadCount", f.alerts.calledMethod)

	rec = f.do(t, http.MethodPut, "/api/v1/alerts/a-7/read", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alert marked as read", decodeResponse(t, rec).Message)
	assert.Equal(t, "a-7", f.alerts.markID)

	f.alerts.markErr = attendance.ErrAlertNotFound
	rec = f.do(t, http.MethodPut, "/api/v1/alerts/a-8/read", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
