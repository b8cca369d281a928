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

	"github.com/cmlabs-hris/hrms-core-go/internal/config"
	"github.com/cmlabs-hris/hrms-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-core-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hrms-core-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-core-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hrms-core-go/internal/service/attendance"
	"github.com/cmlabs-hris/hrms-core-go/internal/service/leave"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("failed to load timezone: %w", err)
	}
	// Validate already checked both clocks.
	officeStart, _ := config.ParseClock(cfg.Attendance.OfficeStart)
	officeEnd, _ := config.ParseClock(cfg.Attendance.OfficeEnd)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		slog.Info("database schema applied", "tables", database.Tables())
	}

	tx := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(
		tx,
		attendanceRepo,
		employeeRepo,
		attendance.WorkHours{Start: officeStart, End: officeEnd},
		loc,
	)
	balanceService := leave.NewBalanceService(tx, leaveTypeRepo, leaveBalanceRepo)
	requestService := leave.NewRequestService(tx, leaveTypeRepo, leaveRepo, employeeRepo, balanceService, loc)
	leaveService := leave.NewLeaveService(tx, leaveTypeRepo, leaveBalanceRepo, leaveRepo, employeeRepo, balanceService, requestService)

	if cfg.Database.SeedDefaults {
		if _, err := fixtures.SeedLeaveTypes(context.Background(), leaveService); err != nil {
			return err
		}
	}

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, loc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveService)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         logger,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		},
		JWTService,
		attendanceHandler,
		leaveHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
}
