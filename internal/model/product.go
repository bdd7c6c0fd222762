package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable good tracked in inventory. Products may declare
// variants (size, color) carrying their own sub-stock.
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string          `gorm:"index;not null"`
	Description   *string
	Category      string          `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Variants []ProductVariant `gorm:"foreignKey:ProductID"`
}

// ProductVariant holds a per-variant stock counter on top of the parent
// product's stock. Selling a variant decrements both.
type ProductVariant struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name      string           `gorm:"not null"`
	Price     *decimal.Decimal `gorm:"type:decimal(12,2)"` // nil = parent price
	Quantity  int              `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
