package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/staff-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/staff-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Staff      StaffHandler
	Attendance AttendanceHandler
	Report     ReportHandler
}

func NewRouter(logger *slog.Logger, allowedOrigins []string, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		response.SuccessWithMessage(w, "Welcome to the Staff Attendance API", nil)
	})

	r.Route("/api", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService))
				r.Get("/me", h.Auth.Me)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/staff", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionStaffView)).Get("/", h.Staff.ListStaff)
				r.With(middleware.RequirePermission(user.PermissionStaffManage)).Post("/", h.Staff.CreateStaff)
				r.With(middleware.RequirePermission(user.PermissionStaffView)).Get("/departments", h.Staff.ListDepartments)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionStaffView)).Get("/", h.Staff.GetStaff)
					r.With(middleware.RequirePermission(user.PermissionStaffManage)).Put("/", h.Staff.UpdateStaff)

					// Admin only
					r.With(middleware.AdminOnly).Delete("/", h.Staff.DeleteStaff)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/", h.Attendance.ListAttendance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceMark))
					r.Post("/", h.Attendance.MarkAttendance)
					r.Post("/bulk", h.Attendance.BulkMarkAttendance)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportsView))
					r.Get("/daily", h.Report.GetDailyReport)
					r.Get("/weekly", h.Report.GetWeeklyReport)
					r.Get("/monthly", h.Report.GetMonthlyReport)
					r.With(middleware.RequirePermission(user.PermissionReportsExport)).Get("/export", h.Report.ExportReport)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/", h.Attendance.GetAttendance)
					r.With(middleware.RequirePermission(user.PermissionAttendanceMark)).Put("/", h.Attendance.UpdateAttendance)

					// Admin only
					r.With(middleware.AdminOnly).Delete("/", h.Attendance.DeleteAttendance)
				})
			})
		})
	})
	return r
}
