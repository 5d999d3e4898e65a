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

	"github.com/careops/hospital-api/internal/config"
	"github.com/careops/hospital-api/internal/email"
	"github.com/careops/hospital-api/internal/handler"
	appointmentHandler "github.com/careops/hospital-api/internal/handler/appointment"
	authHandler "github.com/careops/hospital-api/internal/handler/auth"
	doctorHandler "github.com/careops/hospital-api/internal/handler/doctor"
	intermentHandler "github.com/careops/hospital-api/internal/handler/interment"
	medicalRecordHandler "github.com/careops/hospital-api/internal/handler/medicalrecord"
	patientHandler "github.com/careops/hospital-api/internal/handler/patient"
	prescriptionHandler "github.com/careops/hospital-api/internal/handler/prescription"
	"github.com/careops/hospital-api/internal/middleware"
	"github.com/careops/hospital-api/internal/realtime"
	"github.com/careops/hospital-api/internal/repository/postgres"
	"github.com/careops/hospital-api/internal/router"
	appointmentService "github.com/careops/hospital-api/internal/service/appointment"
	authService "github.com/careops/hospital-api/internal/service/auth"
	doctorService "github.com/careops/hospital-api/internal/service/doctor"
	intermentService "github.com/careops/hospital-api/internal/service/interment"
	medicalService "github.com/careops/hospital-api/internal/service/medical"
	patientService "github.com/careops/hospital-api/internal/service/patient"
	prescriptionService "github.com/careops/hospital-api/internal/service/prescription"
	"github.com/careops/hospital-api/pkg/auth"
	"github.com/careops/hospital-api/pkg/logger"
	redisBroker "github.com/careops/hospital-api/pkg/messaging/redis"
	"github.com/careops/hospital-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	zl := appLogger.Zerolog()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	appointmentRepo := postgres.NewAppointmentRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	medicalRecordRepo := postgres.NewMedicalRecordRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	intermentRepo := postgres.NewIntermentRepository(db)
	accountRepo := postgres.NewAccountRepository(db)

	// Services
	emailSvc := email.NewService(cfg.SMTP)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo).
		WithNotifier(emailSvc, *zl)
	patientSvc := patientService.NewService(patientRepo)
	doctorSvc := doctorService.NewService(doctorRepo)
	medicalSvc := medicalService.NewService(medicalRecordRepo, patientRepo, doctorRepo)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, medicalRecordRepo)
	intermentSvc := intermentService.NewService(intermentRepo, patientRepo, doctorRepo)
	authSvc := authService.NewService(
		accountRepo,
		security.NewBcryptHasher(0),
		auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours),
	).WithNotifier(emailSvc, *zl)

	// Realtime layer
	hub := realtime.NewHub()
	broadcaster := realtime.NewBroadcaster(hub, appointmentSvc, *zl)
	if cfg.Redis.URL != "" {
		broker, err := redisBroker.NewRedisBroker(redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   3,
			RetryBackoff: 100 * time.Millisecond,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, zl)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer broker.Close()
		broadcaster = broadcaster.WithRelay(broker, cfg.Realtime.Channel)
	}

	relayCtx, relayCancel := context.WithCancel(context.Background())
	defer relayCancel()
	go func() {
		if err := broadcaster.Run(relayCtx); err != nil && err != context.Canceled {
			zl.Error().Err(err).Msg("realtime relay stopped")
		}
	}()

	gateway := realtime.NewGateway(hub, appointmentSvc, broadcaster, cfg.Realtime.SendBufferSize, *zl)

	// Handlers
	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc)
	patientH := patientHandler.NewHandler(patientSvc)
	doctorH := doctorHandler.NewHandler(doctorSvc)
	medicalRecordH := medicalRecordHandler.NewHandler(medicalSvc)
	prescriptionH := prescriptionHandler.NewHandler(prescriptionSvc)
	intermentH := intermentHandler.NewHandler(intermentSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		authMiddleware,
		authH,
		appointmentH,
		patientH,
		doctorH,
		medicalRecordH,
		prescriptionH,
		intermentH,
		gateway,
		h,
		router.Config{
			RateLimit:  100,
			RateBurst:  200,
			CORSConfig: middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		zl.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info().Msg("shutting down server")
	relayCancel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.TimeoutSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	zl.Info().Msg("server exited")
}
