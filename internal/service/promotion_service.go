package service

import (
	"context"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/model"
	"github.com/DoniniDjessa/cercleof-sub000/internal/repository"

	"github.com/google/uuid"
)

// PromotionService validates promotion codes. Validation has no side
// effects — usage_count increments only when a sale commits.
type PromotionService interface {
	Validate(ctx context.Context, code string, clientID *uuid.UUID) (*model.Promotion, error)
}

type promotionService struct {
	repo     repository.PromotionRepository
	saleRepo repository.SaleRepository
	now      func() time.Time
}

func NewPromotionService(repo repository.PromotionRepository, saleRepo repository.SaleRepository) PromotionService {
	return &promotionService{repo: repo, saleRepo: saleRepo, now: time.Now}
}

// Validate looks up the promotion by exact code, requires the active flag
// and the activity window, and enforces one-time-use-per-client against the
// committed sales of the given client.
func (s *promotionService) Validate(ctx context.Context, code string, clientID *uuid.UUID) (*model.Promotion, error) {
	promo, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, ErrPromotionInvalidOrExpired
	}
	if !promo.ValidAt(s.now()) {
		return nil, ErrPromotionInvalidOrExpired
	}

	if promo.IsUniqueUsagePerClient && clientID != nil {
		used, err := s.saleRepo.ClientUsedPromotion(ctx, *clientID, promo.ID)
		if err != nil {
			return nil, err
		}
		if used {
			return nil, ErrPromotionAlreadyUsed
		}
	}

	return promo, nil
}
