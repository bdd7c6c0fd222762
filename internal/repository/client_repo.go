package repository

import (
	"context"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error)

	// UpdateVisitTotalsTx bumps last_visit_date and total_spent atomically
	// inside a sale transaction.
	UpdateVisitTotalsTx(tx *gorm.DB, id uuid.UUID, spent decimal.Decimal, visitedAt time.Time) error

	// UpsertLoyaltyTx adds points to the client's loyalty record, creating it
	// on the first purchase.
	UpsertLoyaltyTx(tx *gorm.DB, clientID uuid.UUID, points int) error
	FindLoyalty(ctx context.Context, clientID uuid.UUID) (*model.LoyaltyRecord, error)
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository { return &clientRepo{db: db} }

func (r *clientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *clientRepo) UpdateVisitTotalsTx(tx *gorm.DB, id uuid.UUID, spent decimal.Decimal, visitedAt time.Time) error {
	return tx.Model(&model.Client{}).Where("id = ?", id).Updates(map[string]interface{}{
		"last_visit_date": visitedAt,
		"total_spent":     gorm.Expr("total_spent + ?", spent),
	}).Error
}

func (r *clientRepo) UpsertLoyaltyTx(tx *gorm.DB, clientID uuid.UUID, points int) error {
	rec := model.LoyaltyRecord{ID: uuid.New(), ClientID: clientID, Points: points, Status: "active"}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"points": gorm.Expr("loyalty_records.points + ?", points)}),
	}).Create(&rec).Error
}

func (r *clientRepo) FindLoyalty(ctx context.Context, clientID uuid.UUID) (*model.LoyaltyRecord, error) {
	var rec model.LoyaltyRecord
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&rec).Error
	return &rec, err
}
