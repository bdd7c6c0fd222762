package service

import (
	"context"
	"fmt"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/dto"
	"github.com/DoniniDjessa/cercleof-sub000/internal/model"
	"github.com/DoniniDjessa/cercleof-sub000/internal/repository"
	"github.com/DoniniDjessa/cercleof-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FailedStep identifies a non-fatal commit step that failed. The sale is
// committed regardless; the caller decides whether to surface it.
type FailedStep struct {
	Step   string
	Reason string
}

// CheckoutResult is returned on a committed sale: the persisted records,
// the totals breakdown, the rendered receipt, and any degraded steps.
type CheckoutResult struct {
	Sale          *model.Sale
	Items         []model.SaleItem
	Totals        Totals
	LoyaltyPoints int
	Receipt       string
	Warnings      []FailedStep
}

// CheckoutService turns an in-progress cart into a committed sale and
// updates every dependent record: inventory, loyalty, gift-card balance,
// promotion usage, audit trail and revenue ledger.
type CheckoutService interface {
	Commit(ctx context.Context, userID uuid.UUID, req dto.CheckoutRequest) (*CheckoutResult, error)
}

type checkoutService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	serviceRepo repository.ServiceRepository
	clientRepo  repository.ClientRepository
	promoRepo   repository.PromotionRepository
	userRepo    repository.UserRepository
	ledgerRepo  repository.LedgerRepository
	promotions  PromotionService
	giftCards   GiftCardService
	dispatcher  *worker.Dispatcher
	storeName   string
	now         func() time.Time
}

func NewCheckoutService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
	clientRepo repository.ClientRepository,
	promoRepo repository.PromotionRepository,
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	promotions PromotionService,
	giftCards GiftCardService,
	dispatcher *worker.Dispatcher,
	storeName string,
) CheckoutService {
	return &checkoutService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		serviceRepo: serviceRepo,
		clientRepo:  clientRepo,
		promoRepo:   promoRepo,
		userRepo:    userRepo,
		ledgerRepo:  ledgerRepo,
		promotions:  promotions,
		giftCards:   giftCards,
		dispatcher:  dispatcher,
		storeName:   storeName,
		now:         time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Commit ────────────────────────────────────────────────────────────────────
// The commit sequence:
//   1. Resolve actor                       — fatal, no writes yet
//   2. Resolve cart + validate promotion/
//      gift card, compute totals           — fatal, no writes yet
//   3. Create Sale header                  — fatal
//   4. Create SaleItems                    — fatal
//   5. Salon entries for service lines     — non-fatal
//   6. Decrement stock per product line    — non-fatal per line
//   7. Increment promotion usage           — non-fatal
//   8. Delivery record                     — non-fatal
//   9. Revenue ledger entry                — non-fatal
//  10. Audit action(s)                     — non-fatal
//  11. Client notification (product sales) — non-fatal
//  12. Debit gift card                     — non-fatal
//  13. Loyalty points + client totals      — non-fatal
//
// Steps 3–13 run inside one transaction: a fatal failure rolls everything
// back (no orphan header can survive), while a non-fatal failure is caught
// in place, recorded as a warning, and lets the transaction commit. Shared
// counters mutate through atomic single-statement updates so concurrent
// checkouts against the same product, card or promotion cannot lose updates.

func (s *checkoutService) Commit(ctx context.Context, userID uuid.UUID, req dto.CheckoutRequest) (*CheckoutResult, error) {
	// 1. Resolve actor
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || !user.Active {
		return nil, ErrActorNotFound
	}

	// 2a. Resolve client
	var client *model.Client
	var clientID *uuid.UUID
	if req.ClientID != nil {
		cid, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("invalid client_id: %w", err)
		}
		client, err = s.clientRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, fmt.Errorf("client %s not found", cid)
		}
		clientID = &cid
	}

	// 2b. Build the cart from the catalog (pre-flight, outside the tx)
	cart, err := s.resolveCart(ctx, req.Lines)
	if err != nil {
		return nil, err
	}
	if cart.Empty() {
		return nil, ErrEmptyCart
	}

	// 2c. Validate promotion and gift card
	var promo *model.Promotion
	if req.PromotionCode != nil {
		promo, err = s.promotions.Validate(ctx, *req.PromotionCode, clientID)
		if err != nil {
			return nil, err
		}
	}

	var card *model.GiftCard
	giftCardRequested := decimal.Zero
	if req.GiftCardCode != nil {
		card, err = s.giftCards.Validate(ctx, *req.GiftCardCode)
		if err != nil {
			return nil, err
		}
		if req.GiftCardAmount != nil {
			giftCardRequested = *req.GiftCardAmount
		} else {
			// No explicit amount: charge as much of the card as possible.
			giftCardRequested = card.Balance
		}
	}

	// 2d. Compute totals
	var manual *ManualDiscount
	if req.ManualDiscount != nil {
		manual = &ManualDiscount{Value: req.ManualDiscount.Value, Type: req.ManualDiscount.Type}
	}
	totals := ComputeTotals(PricingInput{
		Lines:          cart.Lines(),
		Promotion:      promo,
		ManualDiscount: manual,
		CanDiscount:    user.CanDiscount(),
		GiftCard:       card,
		GiftCardAmount: giftCardRequested,
	})

	// 3–13. Commit transaction
	sale := &model.Sale{
		ID:              uuid.New(),
		ClientID:        clientID,
		UserID:          user.ID,
		LineType:        cart.LineType(),
		Subtotal:        totals.Subtotal,
		DiscountAmount:  totals.DiscountAmount,
		DiscountPercent: totals.DiscountPercent,
		GiftCardAmount:  totals.GiftCardUsed,
		Total:           totals.Total,
		PaymentMethod:   req.PaymentMethod,
		Status:          "paid",
		CreatedAt:       s.now(),
	}
	if promo != nil {
		sale.PromotionID = &promo.ID
	}
	if card != nil {
		sale.GiftCardID = &card.ID
	}

	items := buildSaleItems(sale.ID, cart.Lines())
	points := LoyaltyPoints(totals.Total)

	var warnings []FailedStep
	var notif *model.Notification
	txErr := runTx(ctx, s.saleRepo.DB(), func(tx *gorm.DB) error {
		// 3. Sale header — fatal
		if err := s.saleRepo.CreateTx(tx, sale); err != nil {
			return fmt.Errorf("create sale: %w", err)
		}

		// 4. Sale items — fatal
		if err := s.saleRepo.CreateItemsTx(tx, items); err != nil {
			return fmt.Errorf("create sale items: %w", err)
		}

		// 5. Salon entries — non-fatal, workflow convenience
		var salonEntries []model.SalonEntry
		for _, l := range cart.Lines() {
			if l.Kind != LineService {
				continue
			}
			entry := model.SalonEntry{ID: uuid.New(), SaleID: sale.ID, ServiceID: l.RefID, ClientID: clientID, Status: "pending"}
			if err := s.serviceRepo.CreateSalonEntryTx(tx, &entry); err != nil {
				s.warn(&warnings, sale.ID, "create_salon_entry", err)
				continue
			}
			salonEntries = append(salonEntries, entry)
		}

		// 6. Stock decrement — non-fatal per line; one failing line must not
		// block the others.
		for _, l := range cart.Lines() {
			if l.Kind != LineProduct {
				continue
			}
			if err := s.productRepo.DecrementStockTx(tx, l.RefID, l.Quantity); err != nil {
				s.warn(&warnings, sale.ID, "decrement_stock", fmt.Errorf("%s: %w", l.Label, err))
				continue
			}
			if l.VariantID != nil {
				if err := s.productRepo.DecrementVariantStockTx(tx, *l.VariantID, l.Quantity); err != nil {
					s.warn(&warnings, sale.ID, "decrement_variant_stock", fmt.Errorf("%s: %w", l.Label, err))
				}
			}
		}

		// 7. Promotion usage — non-fatal
		if promo != nil {
			if err := s.promoRepo.IncrementUsageTx(tx, promo.ID); err != nil {
				s.warn(&warnings, sale.ID, "increment_promotion_usage", err)
			}
		}

		// 8. Delivery — non-fatal
		if req.Delivery != nil {
			d := model.Delivery{ID: uuid.New(), SaleID: sale.ID, Address: req.Delivery.Address, Phone: req.Delivery.Phone, Status: "pending"}
			if err := s.ledgerRepo.CreateDeliveryTx(tx, &d); err != nil {
				s.warn(&warnings, sale.ID, "create_delivery", err)
			}
		}

		// 9. Revenue ledger — non-fatal
		rev := model.RevenueEntry{ID: uuid.New(), SaleID: sale.ID, Amount: totals.Total, PaymentMethod: req.PaymentMethod, Source: "sale"}
		if err := s.ledgerRepo.CreateRevenueTx(tx, &rev); err != nil {
			s.warn(&warnings, sale.ID, "create_revenue_entry", err)
		}

		// 10. Audit trail — non-fatal. Service-only sales audit each salon
		// entry; every other sale audits the sale itself.
		s.writeAudit(tx, sale, items, salonEntries, &warnings)

		// 11. Client notification — product sales with a client only
		if clientID != nil && sale.LineType == "product" {
			n := model.Notification{
				ID:       uuid.New(),
				ClientID: *clientID,
				SaleID:   &sale.ID,
				Title:    "Merci pour votre achat",
				Body:     fmt.Sprintf("Votre achat de %s FCFA a bien ete enregistre.", totals.Total.StringFixed(0)),
				Status:   "pending",
			}
			if err := s.ledgerRepo.CreateNotificationTx(tx, &n); err != nil {
				s.warn(&warnings, sale.ID, "create_notification", err)
			} else {
				notif = &n
			}
		}

		// 12. Gift card debit — non-fatal, but the total already reflects the
		// card amount: a failure here is exactly the discrepancy the warning
		// channel exists for.
		if card != nil && totals.GiftCardUsed.IsPositive() {
			if _, err := s.giftCards.DebitTx(ctx, tx, card, totals.GiftCardUsed, sale.ID); err != nil {
				s.warn(&warnings, sale.ID, "debit_gift_card", err)
			}
		}

		// 13. Loyalty + client visit totals — non-fatal
		if clientID != nil {
			if points > 0 {
				if err := s.clientRepo.UpsertLoyaltyTx(tx, *clientID, points); err != nil {
					s.warn(&warnings, sale.ID, "update_loyalty", err)
				}
			}
			if err := s.clientRepo.UpdateVisitTotalsTx(tx, *clientID, totals.Total, sale.CreatedAt); err != nil {
				s.warn(&warnings, sale.ID, "update_client_totals", err)
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async receipt email (best-effort — fire & forget)
	if s.dispatcher != nil && req.ClientEmail != nil && *req.ClientEmail != "" {
		payload := worker.ReceiptJobPayload{SaleID: sale.ID.String(), ClientEmail: *req.ClientEmail}
		if err := s.dispatcher.EnqueueReceipt(ctx, payload); err != nil {
			log.Warn().Err(err).Str("sale_id", sale.ID.String()).Msg("checkout: failed to enqueue receipt job")
		}
	}

	// The notification row is committed; delivery happens out of band.
	if s.dispatcher != nil && notif != nil && client != nil && client.Email != nil && *client.Email != "" {
		payload := worker.NotificationJobPayload{
			NotificationID: notif.ID.String(),
			ToEmail:        *client.Email,
			Title:          notif.Title,
			Body:           notif.Body,
		}
		if err := s.dispatcher.EnqueueNotification(ctx, payload); err != nil {
			log.Warn().Err(err).Str("notification_id", notif.ID.String()).Msg("checkout: failed to enqueue notification job")
		}
	}

	clientName := ""
	if client != nil {
		clientName = client.Name
	}
	receipt := RenderReceipt(ReceiptData{
		StoreName:     s.storeName,
		SaleID:        sale.ID.String(),
		CreatedAt:     sale.CreatedAt,
		StaffName:     user.Name,
		ClientName:    clientName,
		Items:         items,
		Totals:        totals,
		PaymentMethod: sale.PaymentMethod,
		LoyaltyPoints: points,
	})

	return &CheckoutResult{
		Sale:          sale,
		Items:         items,
		Totals:        totals,
		LoyaltyPoints: points,
		Receipt:       receipt,
		Warnings:      warnings,
	}, nil
}

// resolveCart fetches every referenced product/variant/service and builds
// the ordered cart. Price overrides from the request win over catalog
// prices; a variant with its own price wins over the parent product price.
func (s *checkoutService) resolveCart(ctx context.Context, lines []dto.CheckoutLineRequest) (*Cart, error) {
	cart := NewCart()
	for _, lr := range lines {
		refID, err := uuid.Parse(lr.RefID)
		if err != nil {
			return nil, fmt.Errorf("invalid ref_id: %w", err)
		}

		line := CartLine{Kind: LineKind(lr.Kind), RefID: refID, Quantity: lr.Quantity}

		switch line.Kind {
		case LineProduct:
			p, err := s.productRepo.FindByID(ctx, refID)
			if err != nil {
				return nil, fmt.Errorf("product %s not found", refID)
			}
			if !p.Active {
				return nil, fmt.Errorf("product %s is inactive and cannot be sold", p.Name)
			}
			line.Label = p.Name
			line.UnitPrice = p.Price

			if lr.VariantID != nil {
				vid, err := uuid.Parse(*lr.VariantID)
				if err != nil {
					return nil, fmt.Errorf("invalid variant_id: %w", err)
				}
				v, err := s.productRepo.FindVariantByID(ctx, vid)
				if err != nil || v.ProductID != refID {
					return nil, fmt.Errorf("variant %s not found for product %s", vid, p.Name)
				}
				line.VariantID = &vid
				line.Label = p.Name + " — " + v.Name
				if v.Price != nil {
					line.UnitPrice = *v.Price
				}
			}

		case LineService:
			sv, err := s.serviceRepo.FindByID(ctx, refID)
			if err != nil {
				return nil, fmt.Errorf("service %s not found", refID)
			}
			if !sv.Active {
				return nil, fmt.Errorf("service %s is inactive and cannot be sold", sv.Name)
			}
			line.Label = sv.Name
			line.UnitPrice = sv.Price

		default:
			return nil, fmt.Errorf("unknown line kind %q", lr.Kind)
		}

		if lr.UnitPrice != nil {
			if lr.UnitPrice.IsNegative() {
				return nil, fmt.Errorf("negative unit price override on %s", line.Label)
			}
			line.UnitPrice = *lr.UnitPrice
		}

		cart.AddLine(line)
	}
	return cart, nil
}

func buildSaleItems(saleID uuid.UUID, lines []CartLine) []model.SaleItem {
	items := make([]model.SaleItem, 0, len(lines))
	for _, l := range lines {
		item := model.SaleItem{
			ID:        uuid.New(),
			SaleID:    saleID,
			VariantID: l.VariantID,
			Label:     l.Label,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.Total(),
		}
		refID := l.RefID
		switch l.Kind {
		case LineProduct:
			item.ProductID = &refID
		case LineService:
			item.ServiceID = &refID
		}
		items = append(items, item)
	}
	return items
}

// writeAudit creates the human-readable audit rows for a committed sale.
func (s *checkoutService) writeAudit(tx *gorm.DB, sale *model.Sale, items []model.SaleItem, salonEntries []model.SalonEntry, warnings *[]FailedStep) {
	prefix := auditTimePrefix(sale.CreatedAt, s.now())

	if sale.LineType == "service" {
		for _, e := range salonEntries {
			a := model.AuditAction{
				ID:          uuid.New(),
				UserID:      sale.UserID,
				Type:        "sale_commit",
				TargetTable: "salon_entries",
				TargetID:    e.ID,
				Description: fmt.Sprintf("%s prestation enregistree (vente %s)", prefix, shortID(sale.ID.String())),
			}
			if err := s.ledgerRepo.CreateAuditTx(tx, &a); err != nil {
				s.warn(warnings, sale.ID, "create_audit_action", err)
			}
		}
		return
	}

	a := model.AuditAction{
		ID:          uuid.New(),
		UserID:      sale.UserID,
		Type:        "sale_commit",
		TargetTable: "sales",
		TargetID:    sale.ID,
		Description: fmt.Sprintf("%s vente %s: %d article(s), total %s FCFA", prefix, shortID(sale.ID.String()), len(items), sale.Total.StringFixed(0)),
	}
	if err := s.ledgerRepo.CreateAuditTx(tx, &a); err != nil {
		s.warn(warnings, sale.ID, "create_audit_action", err)
	}
}

// auditTimePrefix buckets a timestamp relative to now:
// "today HH:MM" for the same day, "hier:HH:MM" for the previous day,
// "DD/MM HH:MM" otherwise.
func auditTimePrefix(t, now time.Time) string {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "today " + t.Format("15:04")
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y1 == y3 && m1 == m3 && d1 == d3 {
		return "hier:" + t.Format("15:04")
	}
	return t.Format("02/01 15:04")
}

func (s *checkoutService) warn(warnings *[]FailedStep, saleID uuid.UUID, step string, err error) {
	log.Error().
		Err(err).
		Str("sale_id", saleID.String()).
		Str("step", step).
		Msg("checkout: non-fatal step failed")
	*warnings = append(*warnings, FailedStep{Step: step, Reason: err.Error()})
}
