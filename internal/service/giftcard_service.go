package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/model"
	"github.com/DoniniDjessa/cercleof-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const giftCardCacheTTL = 30 * time.Second

// GiftCardService is the gift-card ledger: validation for the pre-checkout
// UX and the debit that runs inside a sale transaction.
type GiftCardService interface {
	Validate(ctx context.Context, code string) (*model.GiftCard, error)

	// DebitTx debits the card inside the given sale transaction, flips the
	// status to used when the balance hits zero, and appends the immutable
	// ledger row with before/after balances.
	DebitTx(ctx context.Context, tx *gorm.DB, card *model.GiftCard, amount decimal.Decimal, saleID uuid.UUID) (*model.GiftCardTransaction, error)
}

type giftCardService struct {
	repo repository.GiftCardRepository
	rdb  *redis.Client
	now  func() time.Time
}

func NewGiftCardService(repo repository.GiftCardRepository, rdb *redis.Client) GiftCardService {
	return &giftCardService{repo: repo, rdb: rdb, now: time.Now}
}

// Validate requires status=active, balance>0 and an unexpired card. A card
// past its expiry date is flipped to expired lazily, here — never by a
// background job. Lookups are cached briefly for the UI validate endpoint;
// the checkout path re-reads the card through this same method, and the
// debit itself is balance-guarded, so a stale cached balance can delay but
// never corrupt a commit.
func (s *giftCardService) Validate(ctx context.Context, code string) (*model.GiftCard, error) {
	card, err := s.lookup(ctx, code)
	if err != nil {
		return nil, ErrGiftCardInvalidExpiredOrEmpty
	}

	if card.ExpiryDate != nil && card.ExpiryDate.Before(s.now()) {
		if card.Status == "active" {
			if err := s.repo.UpdateStatus(ctx, card.ID, "expired"); err != nil {
				log.Error().Err(err).Str("gift_card", card.Code).Msg("giftcard: failed to mark expired")
			}
		}
		return nil, ErrGiftCardInvalidExpiredOrEmpty
	}
	if card.Status != "active" || !card.Balance.IsPositive() {
		return nil, ErrGiftCardInvalidExpiredOrEmpty
	}

	return card, nil
}

func (s *giftCardService) DebitTx(ctx context.Context, tx *gorm.DB, card *model.GiftCard, amount decimal.Decimal, saleID uuid.UUID) (*model.GiftCardTransaction, error) {
	balanceAfter, err := s.repo.DebitTx(tx, card.ID, amount)
	if err != nil {
		return nil, err
	}

	if !balanceAfter.IsPositive() {
		if err := s.repo.SetStatusTx(tx, card.ID, "used"); err != nil {
			return nil, err
		}
	}

	t := &model.GiftCardTransaction{
		ID:            uuid.New(),
		GiftCardID:    card.ID,
		SaleID:        saleID,
		Amount:        amount.Neg(),
		BalanceBefore: balanceAfter.Add(amount),
		BalanceAfter:  balanceAfter,
		Type:          "usage",
	}
	if err := s.repo.CreateTransactionTx(tx, t); err != nil {
		return nil, err
	}

	s.invalidate(ctx, card.Code)
	return t, nil
}

// lookup reads through the short-lived Redis cache when available.
func (s *giftCardService) lookup(ctx context.Context, code string) (*model.GiftCard, error) {
	key := "giftcard:" + code
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var card model.GiftCard
			if json.Unmarshal([]byte(raw), &card) == nil {
				return &card, nil
			}
		}
	}

	card, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(card); err == nil {
			_ = s.rdb.Set(ctx, key, raw, giftCardCacheTTL).Err()
		}
	}
	return card, nil
}

func (s *giftCardService) invalidate(ctx context.Context, code string) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, "giftcard:"+code).Err()
	}
}
