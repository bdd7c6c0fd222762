package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GiftCard is a prepaid card debited at checkout.
// Status: "active" | "used" | "expired"
// Balance is monotonically non-increasing; status flips active→used when the
// balance reaches zero, and active→expired lazily at validation time once
// ExpiryDate has passed.
type GiftCard struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code       string          `gorm:"uniqueIndex;not null"`
	Balance    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status     string          `gorm:"type:varchar(20);not null;default:'active'"`
	ExpiryDate *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GiftCardTransaction is the append-only ledger row written for every balance
// mutation: Amount is negative for usage, with the before/after balances
// captured so the full history reconstructs the balance.
type GiftCardTransaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GiftCardID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Type          string          `gorm:"type:varchar(20);not null;default:'usage'"`
	CreatedAt     time.Time
}
