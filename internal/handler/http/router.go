package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-core-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, attendanceHandler AttendanceHandler, leaveHandler LeaveHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Group(func(r chi.Router) {
					r.Post("/clock-in/{employeeID}", attendanceHandler.ClockIn)
					r.Post("/clock-out/{employeeID}", attendanceHandler.ClockOut)
				})

				r.With(middleware.RequirePermission(user.PermissionAttendanceManage)).Group(func(r chi.Router) {
					r.Post("/mark", attendanceHandler.Mark)
					r.Put("/{id}", attendanceHandler.Update)
					r.Delete("/{id}", attendanceHandler.Delete)
				})

				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).
					Get("/date/{date}", attendanceHandler.ListByDate)

				r.With(middleware.RequirePermission(user.PermissionAttendanceExport)).
					Get("/employee/{employeeID}/export", attendanceHandler.Export)

				// Own records, or anyone's with attendance.view_all
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Group(func(r chi.Router) {
					r.Get("/{id}", attendanceHandler.Get)
					r.Get("/today/{employeeID}", attendanceHandler.GetToday)
					r.Get("/employee/{employeeID}", attendanceHandler.ListByEmployee)
					r.Get("/employee/{employeeID}/monthly", attendanceHandler.GetMonthly)
					r.Get("/employee/{employeeID}/summary", attendanceHandler.GetSummary)
				})
			})

			r.Route("/leave-types", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Group(func(r chi.Router) {
					r.Get("/", leaveHandler.ListTypes)
					r.Get("/active", leaveHandler.ListActiveTypes)
					r.Get("/{id}", leaveHandler.GetType)
				})

				r.With(middleware.RequirePermission(user.PermissionLeaveManageTypes)).Group(func(r chi.Router) {
					r.Post("/", leaveHandler.CreateType)
					r.Put("/{id}", leaveHandler.UpdateType)
					r.Delete("/{id}", leaveHandler.DeleteType)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).
					Post("/apply", leaveHandler.Apply)

				r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Group(func(r chi.Router) {
					r.Put("/{id}/approve", leaveHandler.Approve)
					r.Put("/{id}/reject", leaveHandler.Reject)
				})

				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Group(func(r chi.Router) {
					r.Get("/", leaveHandler.List)
					r.Get("/pending", leaveHandler.ListPending)
				})

				r.With(middleware.RequirePermission(user.PermissionLeaveManageQuota)).
					Post("/balances/{employeeID}/year/{year}/initialize", leaveHandler.InitializeBalances)

				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Group(func(r chi.Router) {
					r.Get("/{id}", leaveHandler.Get)
					r.Get("/employee/{employeeID}", leaveHandler.ListByEmployee)
					r.Get("/employee/{employeeID}/year/{year}", leaveHandler.ListByEmployeeYear)
					r.Get("/balances/{employeeID}/year/{year}", leaveHandler.ListBalances)
					r.Get("/balances/{employeeID}/type/{leaveTypeID}/year/{year}", leaveHandler.GetBalance)
				})
			})
		})
	})
	return r
}
