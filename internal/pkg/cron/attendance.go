package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
)

const missedPunchOutJob = "detect_missed_punch_outs"

type AttendanceJobs struct {
	alertSvc attendance.AlertService
	interval time.Duration
	now      func() time.Time
}

func NewAttendanceJobs(alertSvc attendance.AlertService, interval time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		alertSvc: alertSvc,
		interval: interval,
		now:      time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(missedPunchOutJob, j.interval, j.DetectMissedPunchOuts)
}

// DetectMissedPunchOuts raises alerts for employees still punched in after
// their shift ended.
func (j *AttendanceJobs) DetectMissedPunchOuts(ctx context.Context) error {
	created, err := j.alertSvc.DetectMissedPunchOuts(ctx, j.now())
	if err != nil {
		return fmt.Errorf("failed to detect missed punch-outs: %w", err)
	}
	if created > 0 {
		slog.InfoContext(ctx, "Cron: missed punch-out alerts created", "count", created)
	}
	return nil
}
