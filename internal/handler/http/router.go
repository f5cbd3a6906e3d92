package http

import (
	"io"
	"log/slog"

	"github.com/cmlabs-hris/workkeeper-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workkeeper-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	LogLevel       slog.Level
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, attendanceHandler AttendanceHandler, alertHandler AlertHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/attendance", func(r chi.Router) {
				r.With(chiMiddleware.AllowContentType("application/json")).Post("/punch", attendanceHandler.Punch)
				r.Get("/last-punch", attendanceHandler.GetLastPunch)
				r.Get("/punches", attendanceHandler.GetPunchRecords)
				r.Get("/summary", attendanceHandler.GetSummary)
				r.Get("/weekly", attendanceHandler.GetWeeklySummary)
				r.Get("/calendar", attendanceHandler.GetCalendar)
				r.Get("/export", attendanceHandler.Export)

				// Manager or owner only
				r.With(
					middleware.RequireManager,
					chiMiddleware.AllowContentType("application/json"),
				).Put("/punches/{id}", attendanceHandler.CorrectPunch)
			})

			r.Route("/alerts", func(r chi.Router) {
				r.Get("/", alertHandler.GetMyAlerts)
				r.Get("/unread-count", alertHandler.GetUnreadCount)
				r.Put("/{id}/read", alertHandler.MarkRead)
			})
		})
	})
	return r
}

// NewLogger builds the JSON logger in the ECS layout used for request logs.
func NewLogger(w io.Writer, level slog.Level, app, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "development")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app),
		slog.String("env", env),
	)
}
