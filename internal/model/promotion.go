package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Promotion is a discount code with an activity window.
// ValueType: "percentage" | "amount"
// UsageCount is incremented exactly once per committed sale that used the
// code; when IsUniqueUsagePerClient is set a given client may redeem it once.
type Promotion struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code                   string          `gorm:"uniqueIndex;not null"`
	Value                  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValueType              string          `gorm:"type:varchar(20);not null"`
	ActiveFrom             time.Time       `gorm:"not null"`
	ActiveTo               time.Time       `gorm:"not null"`
	IsActive               bool            `gorm:"not null;default:true"`
	IsUniqueUsagePerClient bool            `gorm:"not null;default:false"`
	UsageCount             int             `gorm:"not null;default:0"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// ValidAt reports whether the promotion is redeemable at the given instant.
func (p *Promotion) ValidAt(now time.Time) bool {
	return p.IsActive && !now.Before(p.ActiveFrom) && !now.After(p.ActiveTo)
}
