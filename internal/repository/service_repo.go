package repository

import (
	"context"

	"github.com/DoniniDjessa/cercleof-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Service, error)
	List(ctx context.Context) ([]model.Service, error)
	CreateSalonEntryTx(tx *gorm.DB, e *model.SalonEntry) error
}

type serviceRepo struct{ db *gorm.DB }

func NewServiceRepository(db *gorm.DB) ServiceRepository { return &serviceRepo{db: db} }

func (r *serviceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	var s model.Service
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *serviceRepo) List(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&services).Error
	return services, err
}

func (r *serviceRepo) CreateSalonEntryTx(tx *gorm.DB, e *model.SalonEntry) error {
	return tx.Create(e).Error
}
