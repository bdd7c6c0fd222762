package repository

import (
	"context"

	"github.com/DoniniDjessa/cercleof-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PromotionRepository interface {
	FindByCode(ctx context.Context, code string) (*model.Promotion, error)

	// IncrementUsageTx bumps usage_count atomically inside a sale transaction.
	IncrementUsageTx(tx *gorm.DB, id uuid.UUID) error
}

type promotionRepo struct{ db *gorm.DB }

func NewPromotionRepository(db *gorm.DB) PromotionRepository { return &promotionRepo{db: db} }

func (r *promotionRepo) FindByCode(ctx context.Context, code string) (*model.Promotion, error) {
	var p model.Promotion
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&p).Error
	return &p, err
}

func (r *promotionRepo) IncrementUsageTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.Promotion{}).Where("id = ?", id).
		Update("usage_count", gorm.Expr("usage_count + 1")).Error
}
