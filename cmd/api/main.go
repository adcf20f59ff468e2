package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kantorkita/hr-backend-go/internal/config"
	appHTTP "github.com/kantorkita/hr-backend-go/internal/handler/http"
	"github.com/kantorkita/hr-backend-go/internal/pkg/cron"
	"github.com/kantorkita/hr-backend-go/internal/pkg/database"
	"github.com/kantorkita/hr-backend-go/internal/pkg/geocode"
	"github.com/kantorkita/hr-backend-go/internal/pkg/holiday"
	"github.com/kantorkita/hr-backend-go/internal/pkg/jwt"
	"github.com/kantorkita/hr-backend-go/internal/pkg/oauth"
	"github.com/kantorkita/hr-backend-go/internal/pkg/sse"
	"github.com/kantorkita/hr-backend-go/internal/pkg/storage"
	"github.com/kantorkita/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kantorkita/hr-backend-go/internal/service/attendance"
	authService "github.com/kantorkita/hr-backend-go/internal/service/auth"
	leaveService "github.com/kantorkita/hr-backend-go/internal/service/leave"
	masterService "github.com/kantorkita/hr-backend-go/internal/service/master"
	reportService "github.com/kantorkita/hr-backend-go/internal/service/report"
	userService "github.com/kantorkita/hr-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	announcementRepo := postgresql.NewAnnouncementRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	allocationRepo := postgresql.NewAllocationRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL)
	calendar := holiday.NewCalendar(cfg.Attendance.HolidayAPIBaseURL)
	geocoder := geocode.NewClient(cfg.Attendance.GeocodeBaseURL, cfg.Attendance.GeocodeUserAgent)
	hub := sse.NewHub()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	authSvc := authService.NewAuthService(db, userRepo, refreshTokenRepo, jwtService, googleService)
	userSvc := userService.NewUserService(db, userRepo, positionRepo)
	masterSvc := masterService.NewMasterService(db, positionRepo, announcementRepo, hub)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, allocationRepo, userRepo, hub)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, calendar, geocoder, fileStorage)
	reportSvc := reportService.NewReportService(attendanceRepo)

	scheduler := cron.NewScheduler()
	scheduler.Register(cron.Job{
		Name:       "holiday-calendar-refresh",
		Interval:   24 * time.Hour,
		RunOnStart: true,
		Fn: func(ctx context.Context) error {
			year := time.Now().Year()
			if err := calendar.Refresh(ctx, year); err != nil {
				return err
			}
			return calendar.Refresh(ctx, year+1)
		},
	})
	scheduler.Register(cron.Job{
		Name:     "refresh-token-purge",
		Interval: 24 * time.Hour,
		Fn: func(ctx context.Context) error {
			deleted, err := refreshTokenRepo.DeleteExpired(ctx)
			if err != nil {
				return err
			}
			if deleted > 0 {
				slog.Info("Purged expired refresh tokens", "count", deleted)
			}
			return nil
		},
	})
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc),
		User:       appHTTP.NewUserHandler(userSvc),
		Master:     appHTTP.NewMasterHandler(masterSvc, masterSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, fileStorage),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Stream:     appHTTP.NewStreamHandler(jwtService, hub),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server listening", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
}
