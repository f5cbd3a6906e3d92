package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/google/uuid"
)

// openSessionLookback bounds how far back a dangling In is still reported.
const openSessionLookback = 48 * time.Hour

type AlertServiceImpl struct {
	punchRepo attendance.PunchRepository
	alertRepo attendance.AlertRepository
	engine    *Engine
}

// DetectMissedPunchOuts implements attendance.AlertService. Deduplication is
// left to the repository so that concurrent scans cannot both raise the same
// alert.
func (s *AlertServiceImpl) DetectMissedPunchOuts(ctx context.Context, now time.Time) (int, error) {
	sessions, err := s.punchRepo.ListOpenSessions(ctx, now.Add(-openSessionLookback), now)
	if err != nil {
		return 0, fmt.Errorf("failed to list open sessions: %w", err)
	}

	created := 0
	for _, session := range sessions {
		date := s.engine.ShiftDay(session.Shift, session.LastPunch.Timestamp)
		set := Normalize([]attendance.PunchEvent{session.LastPunch})
		if !s.engine.MissedPunchOut(session.Shift, date, set, now) {
			continue
		}

		id, err := uuid.NewV7()
		if err != nil {
			return created, fmt.Errorf("failed to generate alert id: %w", err)
		}

		ok, err := s.alertRepo.Create(ctx, attendance.Alert{
			ID:         id.String(),
			EmployeeID: session.EmployeeID,
			Type:       attendance.AlertTypeMissedPunchOut,
			Message:    fmt.Sprintf("You missed your punch-out for %s (%s shift)", date, session.Shift.Name),
			Date:       date,
			CreatedAt:  now.UTC(),
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to create missed punch-out alert", "employee_id", session.EmployeeID, "error", err)
			continue
		}
		if ok {
			created++
		}
	}

	return created, nil
}

// GetMyAlerts implements attendance.AlertService.
func (s *AlertServiceImpl) GetMyAlerts(ctx context.Context) ([]attendance.AlertResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	alerts, err := s.alertRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	resp := make([]attendance.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		resp = append(resp, s.mapAlert(a))
	}
	return resp, nil
}

// GetUnreadCount implements attendance.AlertService.
func (s *AlertServiceImpl) GetUnreadCount(ctx context.Context) (attendance.UnreadCountResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.UnreadCountResponse{}, err
	}

	count, err := s.alertRepo.CountUnread(ctx, employeeID)
	if err != nil {
		return attendance.UnreadCountResponse{}, fmt.Errorf("failed to count unread alerts: %w", err)
	}
	return attendance.UnreadCountResponse{Count: count}, nil
}

// MarkRead implements attendance.AlertService. Only the owner of an alert
// can mark it read.
func (s *AlertServiceImpl) MarkRead(ctx context.Context, id string) (attendance.AlertResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.AlertResponse{}, err
	}

	a, err := s.alertRepo.MarkRead(ctx, id, employeeID)
	if err != nil {
		return attendance.AlertResponse{}, fmt.Errorf("failed to mark alert read: %w", err)
	}
	return s.mapAlert(a), nil
}

func (s *AlertServiceImpl) mapAlert(a attendance.Alert) attendance.AlertResponse {
	return attendance.AlertResponse{
		ID:        a.ID,
		Type:      a.Type,
		Message:   a.Message,
		Date:      a.Date.String(),
		IsRead:    a.IsRead,
		CreatedAt: a.CreatedAt.In(s.engine.Location()).Format(time.RFC3339),
	}
}

func NewAlertService(punchRepo attendance.PunchRepository, alertRepo attendance.AlertRepository, engine *Engine) attendance.AlertService {
	return &AlertServiceImpl{
		punchRepo: punchRepo,
		alertRepo: alertRepo,
		engine:    engine,
	}
}
