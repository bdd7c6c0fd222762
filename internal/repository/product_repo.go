package repository

import (
	"context"

	"github.com/DoniniDjessa/cercleof-sub000/internal/dto"
	"github.com/DoniniDjessa/cercleof-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products and their
// variants. Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via stubs.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindVariantByID(ctx context.Context, id uuid.UUID) (*model.ProductVariant, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)

	// DecrementStockTx atomically decrements stock_quantity inside a sale
	// transaction — no read-then-write, so concurrent sales cannot lose updates.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error
	DecrementVariantStockTx(tx *gorm.DB, id uuid.UUID, qty int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Variants").First(&p, id).Error
	return &p, err
}

func (r *productRepo) FindVariantByID(ctx context.Context, id uuid.UUID) (*model.ProductVariant, error) {
	var v model.ProductVariant
	err := r.db.WithContext(ctx).First(&v, id).Error
	return &v, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{}).Where("active = true")

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Variants").Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty)).Error
}

func (r *productRepo) DecrementVariantStockTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	return tx.Model(&model.ProductVariant{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity - ?", qty)).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
