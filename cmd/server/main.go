package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/config"
	"github.com/DoniniDjessa/cercleof-sub000/internal/infra"
	"github.com/DoniniDjessa/cercleof-sub000/internal/repository"
	"github.com/DoniniDjessa/cercleof-sub000/internal/router"
	"github.com/DoniniDjessa/cercleof-sub000/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Worker handlers are wired here (composition root) so that the pool
	// has full access to all infrastructure dependencies.
	mailer := infra.NewMailer(cfg)
	mailerCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	saleRepo := repository.NewSaleRepository(db)
	clientRepo := repository.NewClientRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	workerHandlers := &worker.WorkerHandlers{
		Receipt:      worker.NewReceiptWorker(saleRepo, mailer, mailerCB, rdb, cfg.StoreName, cfg.PDFStoragePath),
		Notification: worker.NewNotificationWorker(ledgerRepo, mailer, mailerCB),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	// Background retry of failed client notifications
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		LedgerRepo: ledgerRepo,
		ClientRepo: clientRepo,
		Mailer:     mailer,
		CB:         mailerCB,
		RDB:        rdb,
	})

	r := router.New(cfg, db, rdb, mailerCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Cercleof backend listening on :%d", cfg.Port)
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
