package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: fetches the committed sale,
// renders a PDF receipt and emails it to the client. SMTP sends go through
// the circuit breaker with exponential backoff (max 3 attempts); jobs that
// exhaust their retries are parked in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/infra"
	"github.com/DoniniDjessa/cercleof-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	SaleID      string `json:"sale_id"`
	ClientEmail string `json:"client_email"`
}

// ReceiptWorker turns a committed sale into a PDF receipt email.
type ReceiptWorker struct {
	saleRepo       repository.SaleRepository
	mailer         *infra.Mailer
	cb             *infra.CircuitBreaker
	rdb            *redis.Client
	storeName      string
	pdfStoragePath string
}

func NewReceiptWorker(
	saleRepo repository.SaleRepository,
	mailer *infra.Mailer,
	cb *infra.CircuitBreaker,
	rdb *redis.Client,
	storeName string,
	pdfStoragePath string,
) *ReceiptWorker {
	return &ReceiptWorker{
		saleRepo:       saleRepo,
		mailer:         mailer,
		cb:             cb,
		rdb:            rdb,
		storeName:      storeName,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single receipt job:
//  1. Parse ReceiptJobPayload from the job envelope
//  2. Fetch the Sale (with items) from DB
//  3. Generate the PDF receipt
//  4. Send the email through the circuit breaker with backoff
//  5. Park the job in the DLQ if every attempt failed
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}
	if payload.ClientEmail == "" {
		log.Warn().Str("sale_id", payload.SaleID).Msg("receipt_worker: empty client_email — skipping")
		return
	}

	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		log.Error().Str("sale_id", payload.SaleID).Msg("receipt_worker: invalid sale_id")
		return
	}

	sale, err := w.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("receipt_worker: sale not found")
		return
	}

	pdfPath, err := infra.GenerateReceiptPDF(sale, w.storeName, w.pdfStoragePath)
	if err != nil {
		// Still send the plain-text email — the receipt body carries the totals
		log.Warn().Err(err).Str("sale_id", payload.SaleID).Msg("receipt_worker: PDF generation failed")
		pdfPath = ""
	}

	subject := fmt.Sprintf("%s — Recu de vente %s", w.storeName, payload.SaleID[:8])
	body := fmt.Sprintf("Bonjour,\n\nVeuillez trouver ci-joint le recu de votre achat.\nTotal: %s FCFA\n\n%s",
		sale.Total.StringFixed(0), w.storeName)

	sendErr := withRetry(ctx, 3, func(attempt int) error {
		return w.cb.Execute(func() error {
			return w.mailer.SendReceipt(payload.ClientEmail, subject, body, pdfPath)
		})
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("to", payload.ClientEmail).Str("sale_id", payload.SaleID).
			Msg("receipt_worker: failed to send receipt after all retries")
		SendToDLQ(ctx, w.rdb, QueueReceipt, "receipt", raw,
			fmt.Sprintf("send failed after 3 attempts: %v", sendErr), 3)
		return
	}

	log.Info().Str("to", payload.ClientEmail).Str("sale_id", payload.SaleID).Msg("receipt_worker: receipt sent")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
