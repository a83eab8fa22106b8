package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/clinicdesk/clinic-api/internal/config"
	"github.com/clinicdesk/clinic-api/internal/email"
	appointmentHandler "github.com/clinicdesk/clinic-api/internal/handler/appointment"
	authHandler "github.com/clinicdesk/clinic-api/internal/handler/auth"
	dashboardHandler "github.com/clinicdesk/clinic-api/internal/handler/dashboard"
	employeeHandler "github.com/clinicdesk/clinic-api/internal/handler/employee"
	healthHandler "github.com/clinicdesk/clinic-api/internal/handler/health"
	masterHandler "github.com/clinicdesk/clinic-api/internal/handler/master"
	patientHandler "github.com/clinicdesk/clinic-api/internal/handler/patient"
	settingsHandler "github.com/clinicdesk/clinic-api/internal/handler/settings"
	"github.com/clinicdesk/clinic-api/internal/middleware"
	"github.com/clinicdesk/clinic-api/internal/repository/postgres"
	"github.com/clinicdesk/clinic-api/internal/router"
	appointmentService "github.com/clinicdesk/clinic-api/internal/service/appointment"
	authService "github.com/clinicdesk/clinic-api/internal/service/auth"
	dashboardService "github.com/clinicdesk/clinic-api/internal/service/dashboard"
	employeeService "github.com/clinicdesk/clinic-api/internal/service/employee"
	masterService "github.com/clinicdesk/clinic-api/internal/service/master"
	patientService "github.com/clinicdesk/clinic-api/internal/service/patient"
	settingsService "github.com/clinicdesk/clinic-api/internal/service/settings"
	pkgauth "github.com/clinicdesk/clinic-api/pkg/auth"
	"github.com/clinicdesk/clinic-api/pkg/logger"
	"github.com/clinicdesk/clinic-api/pkg/metrics"
	"github.com/clinicdesk/clinic-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	appointmentRepo := postgres.NewAppointmentRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	employeeRepo := postgres.NewEmployeeRepository(db)
	optionRepo := postgres.NewOptionRepository(db)
	userRepo := postgres.NewUserRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	jwtSvc := pkgauth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(0)

	var mailer email.Service
	if cfg.SMTP.Host != "" {
		mailer = email.NewService(cfg.SMTP)
	}

	masterSvc := masterService.NewService(optionRepo, appLogger)
	appointmentSvc := appointmentService.NewService(
		appointmentRepo, patientRepo, employeeRepo, outboxRepo, masterSvc, mailer, appLogger)
	patientSvc := patientService.NewService(patientRepo, employeeRepo, appLogger)
	employeeSvc := employeeService.NewService(employeeRepo, appLogger)
	settingsSvc := settingsService.NewService(db, optionRepo, appLogger)
	dashboardSvc := dashboardService.NewService(appointmentRepo, patientRepo, appLogger)
	authSvc := authService.NewService(userRepo, hasher, jwtSvc, appLogger)

	m := metrics.NewMetrics("clinic_api")

	r := router.NewRouter(router.Handlers{
		Health:      healthHandler.NewHandler(db),
		Auth:        authHandler.NewHandler(authSvc),
		Appointment: appointmentHandler.NewHandler(appointmentSvc),
		Patient:     patientHandler.NewHandler(patientSvc),
		Employee:    employeeHandler.NewHandler(employeeSvc),
		Master:      masterHandler.NewHandler(masterSvc),
		Dashboard:   dashboardHandler.NewHandler(dashboardSvc),
		Settings:    settingsHandler.NewHandler(settingsSvc),
	}, jwtSvc, m, router.Config{
		RateLimit:  rate.Limit(cfg.Server.RateLimitRPS),
		RateBurst:  cfg.Server.RateLimitBurst,
		CORSConfig: middleware.DefaultCORSConfig(),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
