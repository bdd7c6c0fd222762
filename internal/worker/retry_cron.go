package worker

// retry_cron.go
// Background goroutine that periodically re-attempts delivery of client
// notifications stuck in status='failed' with a next_retry_at in the past.
// Uses the Circuit Breaker to avoid hammering a downed SMTP relay.

import (
	"context"
	"fmt"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/infra"
	"github.com/DoniniDjessa/cercleof-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10

	// MaxNotificationRetries caps cron attempts before a notification is
	// moved to status='error' and parked in the DLQ.
	MaxNotificationRetries = 5
)

// computeRetryBackoff returns the delay before the next attempt:
// 1m, 2m, 4m, 8m … capped at 30m.
func computeRetryBackoff(retryCount int) time.Duration {
	backoff := time.Duration(1<<uint(retryCount-1)) * time.Minute
	if backoff > 30*time.Minute {
		backoff = 30 * time.Minute
	}
	return backoff
}

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	LedgerRepo repository.LedgerRepository
	ClientRepo repository.ClientRepository
	Mailer     *infra.Mailer
	CB         *infra.CircuitBreaker
	RDB        *redis.Client
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries failed notifications, and re-attempts delivery through the CB.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed relay
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	now := time.Now()
	notifs, err := cfg.LedgerRepo.ListPendingNotificationRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}

	if len(notifs) == 0 {
		return
	}

	log.Info().Int("count", len(notifs)).Msg("retry_cron: processing failed notifications")

	for i := range notifs {
		notif := &notifs[i]

		// Check CB state before each call — it may have tripped mid-batch
		if cfg.CB.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			return
		}

		client, err := cfg.ClientRepo.FindByID(ctx, notif.ClientID)
		if err != nil || client.Email == nil || *client.Email == "" {
			// No reachable address — stop retrying
			notif.Status = "error"
			notif.NextRetryAt = nil
			errMsg := "client has no email address"
			notif.LastError = &errMsg
			_ = cfg.LedgerRepo.UpdateNotification(ctx, notif)
			continue
		}

		cbErr := cfg.CB.Execute(func() error {
			return cfg.Mailer.SendReceipt(*client.Email, notif.Title, notif.Body, "")
		})

		if cbErr != nil {
			notif.RetryCount++
			errMsg := cbErr.Error()
			notif.LastError = &errMsg
			nextRetry := time.Now().Add(computeRetryBackoff(notif.RetryCount))
			notif.NextRetryAt = &nextRetry

			if notif.RetryCount >= MaxNotificationRetries {
				notif.Status = "error"
				notif.NextRetryAt = nil
				log.Error().
					Str("notification_id", notif.ID.String()).
					Int("retries", notif.RetryCount).
					Msg("retry_cron: max retries exceeded, moving to error/DLQ")

				// Park in the DLQ for manual inspection
				payload := fmt.Sprintf(`{"notification_id":"%s","client_id":"%s"}`, notif.ID, notif.ClientID)
				SendToDLQ(ctx, cfg.RDB, QueueNotification, "notification", []byte(payload),
					fmt.Sprintf("max retries (%d) exceeded: %s", MaxNotificationRetries, errMsg),
					notif.RetryCount)
			} else {
				log.Warn().
					Str("notification_id", notif.ID.String()).
					Int("retry_count", notif.RetryCount).
					Time("next_retry_at", *notif.NextRetryAt).
					Msg("retry_cron: delivery failed, scheduled next attempt")
			}

			_ = cfg.LedgerRepo.UpdateNotification(ctx, notif)
			continue
		}

		// Success path
		notif.Status = "sent"
		notif.LastError = nil
		notif.NextRetryAt = nil
		_ = cfg.LedgerRepo.UpdateNotification(ctx, notif)

		log.Info().
			Str("notification_id", notif.ID.String()).
			Int("total_retries", notif.RetryCount).
			Msg("retry_cron: notification delivered after retry")
	}
}
