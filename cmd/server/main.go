package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nathanndk/BitHealth-parking-app/internal/api"
	"github.com/nathanndk/BitHealth-parking-app/internal/auth"
	"github.com/nathanndk/BitHealth-parking-app/internal/config"
	"github.com/nathanndk/BitHealth-parking-app/internal/repository"
	"github.com/nathanndk/BitHealth-parking-app/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("app", "parking-app").Logger()

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open DB")
	}
	defer database.Close()
	if err := database.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}

	userRepo := repository.NewUserRepository(database)
	parkingRepo := repository.NewParkingRepository(database)
	reservationRepo := repository.NewReservationRepository(database)
	reportRepo := repository.NewReportRepository(database)

	notifier := service.NewNotifyService(cfg)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.BcryptCost)
	parkingService := service.NewParkingService(parkingRepo, reservationRepo)
	reservationService := service.NewReservationService(reservationRepo, parkingRepo, notifier)
	paymentService := service.NewPaymentService(reservationRepo, userRepo, notifier)
	reportService := service.NewReportService(reportRepo)

	mw := auth.NewMiddleware(cfg.JWTSecret, userRepo)
	router := api.NewRouter(
		mw,
		api.NewAuthHandler(authService),
		api.NewParkingHandler(parkingService),
		api.NewReservationHandler(reservationService),
		api.NewPaymentHandler(paymentService),
	)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReportSchedule, reportService.Run); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.ReportSchedule).Msg("invalid report schedule")
	}
	scheduler.Start()
	defer scheduler.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.CORSOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.AllowCredentials(),
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.LoggingHandler(os.Stdout, corsHandler(router)),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server running")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
