package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client is a registered customer. Checkout updates LastVisitDate and
// TotalSpent on every committed sale with a client attached.
type Client struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"index;not null"`
	Phone         string    `gorm:"index"`
	Email         *string
	LastVisitDate *time.Time
	TotalSpent    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LoyaltyRecord accumulates fidelity points per client.
// Points grow by floor(total/1000) per committed sale; the record is
// upserted on the client's first purchase.
type LoyaltyRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Points    int       `gorm:"not null;default:0"`
	Status    string    `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Client *Client `gorm:"foreignKey:ClientID"`
}
