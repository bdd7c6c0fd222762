package repository

import (
	"context"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerRepository groups the insert-only stores the checkout writes as side
// effects: revenue entries, audit actions, deliveries and notifications.
type LedgerRepository interface {
	CreateRevenueTx(tx *gorm.DB, e *model.RevenueEntry) error
	CreateAuditTx(tx *gorm.DB, a *model.AuditAction) error
	CreateDeliveryTx(tx *gorm.DB, d *model.Delivery) error
	CreateNotificationTx(tx *gorm.DB, n *model.Notification) error

	// Delivery and retry support for notifications.
	FindNotificationByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	ListPendingNotificationRetries(ctx context.Context, before time.Time, limit int) ([]model.Notification, error)
	UpdateNotification(ctx context.Context, n *model.Notification) error
}

type ledgerRepo struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) LedgerRepository { return &ledgerRepo{db: db} }

func (r *ledgerRepo) CreateRevenueTx(tx *gorm.DB, e *model.RevenueEntry) error {
	return tx.Create(e).Error
}

func (r *ledgerRepo) CreateAuditTx(tx *gorm.DB, a *model.AuditAction) error {
	return tx.Create(a).Error
}

func (r *ledgerRepo) CreateDeliveryTx(tx *gorm.DB, d *model.Delivery) error {
	return tx.Create(d).Error
}

func (r *ledgerRepo) CreateNotificationTx(tx *gorm.DB, n *model.Notification) error {
	return tx.Create(n).Error
}

func (r *ledgerRepo) FindNotificationByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *ledgerRepo) ListPendingNotificationRetries(ctx context.Context, before time.Time, limit int) ([]model.Notification, error) {
	var ns []model.Notification
	err := r.db.WithContext(ctx).
		Where("status = 'failed' AND next_retry_at IS NOT NULL AND next_retry_at <= ?", before).
		Order("next_retry_at ASC").Limit(limit).Find(&ns).Error
	return ns, err
}

func (r *ledgerRepo) UpdateNotification(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}
