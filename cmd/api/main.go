package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/config"
	appHTTP "github.com/cmlabs-hris/workkeeper-go/internal/handler/http"
	"github.com/cmlabs-hris/workkeeper-go/internal/pkg/cron"
	"github.com/cmlabs-hris/workkeeper-go/internal/pkg/database"
	"github.com/cmlabs-hris/workkeeper-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/workkeeper-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/workkeeper-go/internal/service/attendance"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	level := parseLevel(cfg.App.LogLevel)
	logger := appHTTP.NewLogger(os.Stdout, level, "workkeeper", cfg.App.Env)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	policy, err := cfg.Attendance.Policy()
	if err != nil {
		return err
	}
	engine := attendanceService.NewEngine(policy)

	punchRepo := postgresql.NewPunchRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	alertRepo := postgresql.NewAlertRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(
		postgresql.NewTransactor(db),
		punchRepo,
		employeeRepo,
		shiftRepo,
		holidayRepo,
		alertRepo,
		engine,
	)
	alertSvc := attendanceService.NewAlertService(punchRepo, alertRepo, engine)

	scheduler := cron.NewScheduler(logger)
	cron.NewAttendanceJobs(alertSvc, cfg.Attendance.MissedPunchOutEvery).RegisterJobs(scheduler)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.App.AllowedOrigins,
		LogLevel:       level,
	}, JWTService, appHTTP.NewAttendanceHandler(attendanceSvc), appHTTP.NewAlertHandler(alertSvc))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", server.Addr, "timezone", policy.Location.String())
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
