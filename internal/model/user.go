package model

import (
	"time"

	"github.com/google/uuid"
)

// User stores staff accounts with role-based access.
// Role: "cashier" | "manager" | "admin"
// Manager and admin hold the discount capability: only they may apply a
// manual discount at checkout.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null"`
	Active       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanDiscount reports whether this user holds the manual-discount capability.
func (u *User) CanDiscount() bool {
	return u.Role == "manager" || u.Role == "admin"
}
