package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is the committed result of a checkout. Created once, immutable from
// the engine's perspective after creation.
// LineType: "product" | "service" | "mixed"
type Sale struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID        *uuid.UUID      `gorm:"type:uuid;index"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineType        string          `gorm:"type:varchar(20);not null"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	GiftCardAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod   string          `gorm:"type:varchar(30);not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'paid'"`
	PromotionID     *uuid.UUID      `gorm:"type:uuid;index"`
	GiftCardID      *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt       time.Time

	Items  []SaleItem `gorm:"foreignKey:SaleID"`
	Client *Client    `gorm:"foreignKey:ClientID"`
	User   *User      `gorm:"foreignKey:UserID"`
}

// SaleItem is one committed cart line. Exactly one of ProductID/ServiceID is
// set; VariantID qualifies a product line.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID *uuid.UUID      `gorm:"type:uuid;index"`
	ServiceID *uuid.UUID      `gorm:"type:uuid;index"`
	VariantID *uuid.UUID      `gorm:"type:uuid"`
	Label     string          `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
}
