package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aniket-89/recrm/internal/config"
	"github.com/Aniket-89/recrm/internal/infra"
	"github.com/Aniket-89/recrm/internal/repository"
	"github.com/Aniket-89/recrm/internal/router"
	"github.com/Aniket-89/recrm/internal/service"
	"github.com/Aniket-89/recrm/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Worker handlers are wired here (composition root) so that the pool has
	// full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentEntryRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	rmRepo := repository.NewRMRepository(db)

	receiptWorker := worker.NewReceiptWorker(paymentRepo, bookingRepo, projectRepo,
		dispatcher, cfg.ReceiptStoragePath, cfg.CompanyName, cfg.Currency)
	emailWorker := worker.NewEmailWorker(mailer)
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, map[string]worker.Handler{
		service.QueueReceipt: receiptWorker.Process,
		service.QueueEmail:   emailWorker.Process,
	})

	// Daily overdue sweep
	sweepSvc := service.NewSweepService(bookingRepo, rmRepo, dispatcher)
	worker.StartSweepCron(ctx, sweepSvc, rdb, cfg.SweepHour)

	r := router.New(cfg, db, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("recrm backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
