package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/worklane-hq/orgtime-backend-go/internal/config"
	"github.com/worklane-hq/orgtime-backend-go/internal/handler/http/middleware"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	shiftHandler ShiftHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "orgtime"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Get("/", attendanceHandler.List)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", attendanceHandler.Get)
					r.Post("/clock-out", attendanceHandler.ClockOut)

					r.Route("/breaks", func(r chi.Router) {
						r.Get("/", attendanceHandler.ListBreaks)
						r.Post("/", attendanceHandler.StartBreak)
						r.Post("/{breakID}/end", attendanceHandler.EndBreak)

						// Admin only
						r.Group(func(r chi.Router) {
							r.Use(middleware.AdminOnly)
							r.Patch("/{breakID}/status", attendanceHandler.UpdateBreakStatus)
						})
					})

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Put("/", attendanceHandler.Update)
						r.Delete("/", attendanceHandler.Delete)
					})
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Submit)
				r.Get("/", leaveHandler.List)
				r.Get("/{id}", leaveHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Patch("/{id}/status", leaveHandler.Transition)
				})
			})

			r.Route("/leave-types", func(r chi.Router) {
				r.Get("/", leaveHandler.ListLeaveTypes)
				r.Get("/{id}/entitlement", leaveHandler.Entitlement)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", leaveHandler.CreateLeaveType)
					r.Delete("/{id}", leaveHandler.DeleteLeaveType)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.List)
				r.Get("/{id}", shiftHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", shiftHandler.Create)
					r.Delete("/{id}", shiftHandler.Delete)
				})
			})

			r.Route("/break-types", func(r chi.Router) {
				r.Get("/", shiftHandler.ListBreakTypes)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", shiftHandler.CreateBreakType)
					r.Delete("/{id}", shiftHandler.DeleteBreakType)
				})
			})
		})
	})

	return r
}
