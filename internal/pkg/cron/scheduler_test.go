package cron

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_RunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler(quietLogger())
	var runs atomic.Int32
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	s.Stop()
	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_StartTwice(t *testing.T) {
	s := NewScheduler(quietLogger())
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyStarted)
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	assert.NotPanics(t, func() { NewScheduler(nil).Stop() })
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(quietLogger())
	boom := errors.New("boom")
	var order []string
	s.AddJob("a", time.Minute, func(ctx context.Context) error {
		order = append(order, "a")
		return boom
	})
	s.AddJob("b", time.Minute, func(ctx context.Context) error {
		order = append(order, "b")
		return nil
	})

	err := s.RunOnce(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b"}, order)
}

type fakeAlertService struct {
	at      time.Time
	created int
	err     error
}

func (f *fakeAlertService) DetectMissedPunchOuts(ctx context.Context, now time.Time) (int, error) {
	f.at = now
	return f.created, f.err
}

func (f *fakeAlertService) GetMyAlerts(ctx context.Context) ([]attendance.AlertResponse, error) {
	return nil, nil
}

func (f *fakeAlertService) GetUnreadCount(ctx context.Context) (attendance.UnreadCountResponse, error) {
	return attendance.UnreadCountResponse{}, nil
}

func (f *fakeAlertService) MarkRead(ctx context.Context, id string) (attendance.AlertResponse, error) {
	return attendance.AlertResponse{}, nil
}

func TestAttendanceJobs_DetectMissedPunchOuts(t *testing.T) {
	fixed := time.Date(2025, time.February, 3, 18, 0, 0, 0, time.UTC)
	alerts := &fakeAlertService{created: 2}
	jobs := NewAttendanceJobs(alerts, 15*time.Minute)
	jobs.now = func() time.Time { return fixed }

	s := NewScheduler(quietLogger())
	jobs.RegisterJobs(s)

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, fixed, alerts.at)

	alerts.err = errors.New("db down")
	assert.ErrorContains(t, jobs.DetectMissedPunchOuts(context.Background()), "db down")
}
