package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kantorkita/hr-backend-go/internal/config"
	"github.com/kantorkita/hr-backend-go/internal/handler/http/middleware"
	"github.com/kantorkita/hr-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Master     MasterHandler
	Leave      LeaveHandler
	Attendance AttendanceHandler
	Report     ReportHandler
	Stream     StreamHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
				r.Get("/callback/google", h.Auth.OAuthCallbackGoogle)
			})
		})

		// EventSource cannot set headers, the stream token in the query
		// string carries authentication instead.
		r.Get("/events", h.Stream.Events)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/me", func(r chi.Router) {
				r.Get("/", h.Auth.Profile)
				r.Put("/password", h.Auth.ChangePassword)
				r.Post("/stream-token", h.Auth.StreamToken)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Post("/sick-leave", h.Attendance.ReportSick)
				r.Get("/today", h.Attendance.TodayStatus)
				r.Get("/history", h.Attendance.MonthHistory)

				// Management only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagement)
					r.Get("/", h.Attendance.List)
					r.Get("/export", h.Report.ExportAttendance)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Route("/my", func(r chi.Router) {
					r.Post("/", h.Leave.Apply)
					r.Get("/", h.Leave.ListMine)
					r.Get("/summary", h.Leave.Summary)
					r.Put("/{id}", h.Leave.UpdateMine)
					r.Post("/{id}/cancel", h.Leave.CancelMine)
					r.Post("/{id}/reverse", h.Leave.ReverseMine)
				})

				// Management only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagement)
					r.Get("/", h.Leave.List)
					r.Get("/all", h.Leave.ListAll)
					r.Get("/{id}", h.Leave.Get)
					r.Post("/{id}/{action}", h.Leave.Decide)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/allocations", h.Leave.SetAllocation)
				})
			})

			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", h.Master.ListAnnouncements)
				r.Get("/{id}", h.Master.GetAnnouncement)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", h.Master.CreateAnnouncement)
					r.Put("/{id}", h.Master.UpdateAnnouncement)
					r.Patch("/{id}/status", h.Master.SetAnnouncementStatus)
					r.Delete("/{id}", h.Master.DeleteAnnouncement)
				})
			})

			r.Route("/positions", func(r chi.Router) {
				r.Get("/", h.Master.ListPositions)
				r.Get("/{id}", h.Master.GetPosition)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", h.Master.CreatePosition)
					r.Put("/{id}", h.Master.UpdatePosition)
					r.Patch("/{id}/status", h.Master.SetPositionStatus)
					r.Delete("/{id}", h.Master.DeletePosition)
				})
			})

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/", h.User.Create)
				r.Get("/", h.User.List)
				r.Get("/{id}", h.User.Get)
				r.Put("/{id}", h.User.Update)
				r.Patch("/{id}/status", h.User.SetStatus)
				r.Delete("/{id}", h.User.Delete)
			})
		})
	})

	return r
}
