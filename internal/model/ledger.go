package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueEntry is the revenue-ledger row written per committed sale.
type RevenueEntry struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(30);not null"`
	Source        string          `gorm:"type:varchar(20);not null;default:'sale'"`
	CreatedAt     time.Time
}

// AuditAction is the append-only human-readable audit trail row.
// Description starts with a time-bucketed prefix ("today HH:MM",
// "hier:HH:MM", or "DD/MM HH:MM").
type AuditAction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"type:varchar(30);not null"`
	TargetTable string    `gorm:"type:varchar(40);not null"`
	TargetID    uuid.UUID `gorm:"type:uuid;not null"`
	Description string    `gorm:"not null"`
	CreatedAt   time.Time
}

// Notification is a client-facing message created for product sales with a
// client attached. The notification worker delivers it by email; failures
// are retried by the cron with exponential backoff.
type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	SaleID      *uuid.UUID `gorm:"type:uuid;index"`
	Title       string     `gorm:"not null"`
	Body        string     `gorm:"not null"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'"`
	RetryCount  int        `gorm:"not null;default:0"`
	NextRetryAt *time.Time `gorm:"index"`
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Delivery is created when the checkout requested a home delivery.
type Delivery struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Address   string    `gorm:"not null"`
	Phone     *string
	Status    string `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization (deliverys → deliveries).
func (Delivery) TableName() string { return "deliveries" }
