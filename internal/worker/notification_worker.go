package worker

// notification_worker.go
// Processes client-notification jobs from QueueNotification: sends the
// message by email and updates the notification row. A failed send marks
// the row 'failed' with a next_retry_at so the retry cron can pick it up.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/infra"
	"github.com/DoniniDjessa/cercleof-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NotificationJobPayload is the job envelope sent to QueueNotification.
type NotificationJobPayload struct {
	NotificationID string `json:"notification_id"`
	ToEmail        string `json:"to_email"`
	Title          string `json:"title"`
	Body           string `json:"body"`
}

// NotificationWorker delivers client notifications by email.
type NotificationWorker struct {
	ledgerRepo repository.LedgerRepository
	mailer     *infra.Mailer
	cb         *infra.CircuitBreaker
}

func NewNotificationWorker(ledgerRepo repository.LedgerRepository, mailer *infra.Mailer, cb *infra.CircuitBreaker) *NotificationWorker {
	return &NotificationWorker{ledgerRepo: ledgerRepo, mailer: mailer, cb: cb}
}

// Process sends the notification email and records the outcome on the row.
func (w *NotificationWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload NotificationJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notification_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("notification_worker: empty to_email — skipping")
		return
	}

	notifID, err := uuid.Parse(payload.NotificationID)
	if err != nil {
		log.Error().Str("notification_id", payload.NotificationID).Msg("notification_worker: invalid notification_id")
		return
	}

	notif, err := w.ledgerRepo.FindNotificationByID(ctx, notifID)
	if err != nil {
		log.Error().Err(err).Str("notification_id", payload.NotificationID).Msg("notification_worker: notification not found")
		return
	}
	if notif.Status == "sent" {
		return // duplicate job, already delivered
	}

	sendErr := w.cb.Execute(func() error {
		return w.mailer.SendReceipt(payload.ToEmail, payload.Title, payload.Body, "")
	})

	if sendErr != nil {
		errMsg := sendErr.Error()
		nextRetry := time.Now().Add(computeRetryBackoff(notif.RetryCount + 1))
		notif.Status = "failed"
		notif.LastError = &errMsg
		notif.NextRetryAt = &nextRetry
		if err := w.ledgerRepo.UpdateNotification(ctx, notif); err != nil {
			log.Error().Err(err).Str("notification_id", payload.NotificationID).Msg("notification_worker: failed to record failure")
		}
		log.Warn().Err(sendErr).Str("to", payload.ToEmail).Str("notification_id", payload.NotificationID).
			Msg("notification_worker: send failed, scheduled for retry")
		return
	}

	notif.Status = "sent"
	notif.LastError = nil
	notif.NextRetryAt = nil
	if err := w.ledgerRepo.UpdateNotification(ctx, notif); err != nil {
		log.Error().Err(err).Str("notification_id", payload.NotificationID).Msg("notification_worker: failed to mark sent")
		return
	}
	log.Info().Str("to", payload.ToEmail).Str("notification_id", payload.NotificationID).Msg("notification_worker: notification sent")
}
