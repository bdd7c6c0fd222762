package repository

import (
	"context"
	"errors"

	"github.com/DoniniDjessa/cercleof-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInsufficientBalance is returned by DebitTx when the guarded update
// matched no row — the balance dropped below the requested amount since the
// caller last read it.
var ErrInsufficientBalance = errors.New("gift card balance insufficient")

type GiftCardRepository interface {
	FindByCode(ctx context.Context, code string) (*model.GiftCard, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// DebitTx performs a balance-guarded compare-and-swap:
	//   UPDATE gift_cards SET balance = balance - ? WHERE id = ? AND balance >= ?
	// and returns the balance after the debit. Concurrent debits of the same
	// card serialize on the row and cannot overspend.
	DebitTx(tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	SetStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	CreateTransactionTx(tx *gorm.DB, t *model.GiftCardTransaction) error
	ListTransactions(ctx context.Context, giftCardID uuid.UUID) ([]model.GiftCardTransaction, error)
}

type giftCardRepo struct{ db *gorm.DB }

func NewGiftCardRepository(db *gorm.DB) GiftCardRepository { return &giftCardRepo{db: db} }

func (r *giftCardRepo) FindByCode(ctx context.Context, code string) (*model.GiftCard, error) {
	var g model.GiftCard
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&g).Error
	return &g, err
}

func (r *giftCardRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.GiftCard{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *giftCardRepo) DebitTx(tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	res := tx.Model(&model.GiftCard{}).
		Where("id = ? AND balance >= ?", id, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, ErrInsufficientBalance
	}

	var g model.GiftCard
	if err := tx.Select("balance").First(&g, id).Error; err != nil {
		return decimal.Zero, err
	}
	return g.Balance, nil
}

func (r *giftCardRepo) SetStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.GiftCard{}).Where("id = ?", id).Update("status", status).Error
}

func (r *giftCardRepo) CreateTransactionTx(tx *gorm.DB, t *model.GiftCardTransaction) error {
	return tx.Create(t).Error
}

func (r *giftCardRepo) ListTransactions(ctx context.Context, giftCardID uuid.UUID) ([]model.GiftCardTransaction, error) {
	var txs []model.GiftCardTransaction
	err := r.db.WithContext(ctx).Where("gift_card_id = ?", giftCardID).
		Order("created_at ASC").Find(&txs).Error
	return txs, err
}
