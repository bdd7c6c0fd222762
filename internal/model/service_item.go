package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is a salon prestation (haircut, braiding, care…). Services carry
// no stock; selling one creates a SalonEntry workflow row instead.
type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DurationMin int             `gorm:"not null;default:30"`
	Active      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SalonEntry is the workflow row created for every service line of a
// committed sale. It is a scheduling convenience, not a financial fact.
type SalonEntry struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ServiceID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientID  *uuid.UUID `gorm:"type:uuid;index"`
	Status    string     `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt time.Time

	Service *Service `gorm:"foreignKey:ServiceID"`
}

// TableName overrides GORM's default pluralization (salon_entrys → salon_entries).
func (SalonEntry) TableName() string { return "salon_entries" }
