package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	attendanceService "github.com/cmlabs-hris/workkeeper-go/internal/service/attendance"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// AttendanceConfig holds the rule thresholds of the attendance engine.
type AttendanceConfig struct {
	Timezone            string
	LateGrace           time.Duration
	EarlyLeaveGrace     time.Duration
	HalfDayThreshold    time.Duration
	DefaultBreak        time.Duration
	OvertimeGrace       time.Duration
	MinPunchGap         time.Duration
	MaxBackwardSkew     time.Duration
	SkewTolerance       time.Duration
	MaxForwardSkew      time.Duration
	Precedence          string
	CalendarPrecedence  string
	MissedPunchOutEvery time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "workkeeper"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance configuration
	att := AttendanceConfig{
		Timezone:           getEnv("ATTENDANCE_TIMEZONE", "Asia/Kolkata"),
		Precedence:         getEnv("ATTENDANCE_PRECEDENCE", "holiday-weekend-future"),
		CalendarPrecedence: getEnv("ATTENDANCE_CALENDAR_PRECEDENCE", "holiday-future-weekend"),
	}
	durations := []struct {
		key      string
		fallback string
		dst      *time.Duration
	}{
		{"ATTENDANCE_LATE_GRACE", "15m", &att.LateGrace},
		{"ATTENDANCE_EARLY_LEAVE_GRACE", "10m", &att.EarlyLeaveGrace},
		{"ATTENDANCE_HALF_DAY_THRESHOLD", "4h", &att.HalfDayThreshold},
		{"ATTENDANCE_DEFAULT_BREAK", "60m", &att.DefaultBreak},
		{"ATTENDANCE_OVERTIME_GRACE", "0s", &att.OvertimeGrace},
		{"ATTENDANCE_MIN_PUNCH_GAP", "5s", &att.MinPunchGap},
		{"ATTENDANCE_MAX_BACKWARD_SKEW", "6h", &att.MaxBackwardSkew},
		{"ATTENDANCE_SKEW_TOLERANCE", "1600s", &att.SkewTolerance},
		{"ATTENDANCE_MAX_FORWARD_SKEW", "5m", &att.MaxForwardSkew},
		{"ATTENDANCE_MISSED_PUNCH_OUT_INTERVAL", "15m", &att.MissedPunchOutEvery},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.fallback))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}
	config.Attendance = att

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if _, err := time.LoadLocation(c.Attendance.Timezone); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}
	if _, err := attendanceService.ParsePrecedence(c.Attendance.Precedence); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_PRECEDENCE: %w", err)
	}
	if _, err := attendanceService.ParsePrecedence(c.Attendance.CalendarPrecedence); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_CALENDAR_PRECEDENCE: %w", err)
	}
	if c.Attendance.MissedPunchOutEvery <= 0 {
		return fmt.Errorf("ATTENDANCE_MISSED_PUNCH_OUT_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Policy converts the attendance section into engine rules.
func (a AttendanceConfig) Policy() (attendanceService.Policy, error) {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return attendanceService.Policy{}, fmt.Errorf("failed to load timezone %q: %w", a.Timezone, err)
	}
	precedence, err := attendanceService.ParsePrecedence(a.Precedence)
	if err != nil {
		return attendanceService.Policy{}, err
	}
	calendarPrecedence, err := attendanceService.ParsePrecedence(a.CalendarPrecedence)
	if err != nil {
		return attendanceService.Policy{}, err
	}

	return attendanceService.Policy{
		Location:           loc,
		LateGrace:          a.LateGrace,
		EarlyGrace:         a.EarlyLeaveGrace,
		HalfDayThreshold:   a.HalfDayThreshold,
		DefaultBreak:       a.DefaultBreak,
		OvertimeGrace:      a.OvertimeGrace,
		MinPunchGap:        a.MinPunchGap,
		MaxBackwardSkew:    a.MaxBackwardSkew,
		SkewTolerance:      a.SkewTolerance,
		MaxForwardSkew:     a.MaxForwardSkew,
		Precedence:         precedence,
		CalendarPrecedence: calendarPrecedence,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
