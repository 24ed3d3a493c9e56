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

	"github.com/cmlabs-hris/staff-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/staff-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/logger"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/staff-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/staff-attendance-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/staff-attendance-go/internal/service/auth"
	reportService "github.com/cmlabs-hris/staff-attendance-go/internal/service/report"
	staffService "github.com/cmlabs-hris/staff-attendance-go/internal/service/staff"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	log := logger.Setup(os.Stdout, logger.Options{
		App:     cfg.App.Name,
		Version: cfg.App.Version,
		Env:     cfg.App.Env,
		Level:   level,
	})

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		log.Info("Database schema is up to date")
	}

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	staffRepo := postgresql.NewStaffRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.IsProduction())
	authService := serviceAuth.NewAuthService(postgresql.NewTransactor(db), userRepo, JWTService, JWTRepository)
	staffSvc := staffService.NewStaffService(staffRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, staffRepo, loc)
	reportSvc := reportService.NewReportService(staffRepo, attendanceRepo, spreadsheet.NewExcelWriter(), loc)

	router := appHTTP.NewRouter(log, cfg.CORS.AllowedOrigins, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authService),
		Staff:      appHTTP.NewStaffHandler(staffSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewTokenJobs(JWTRepository).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
