package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds a user's spendable balance and promotional credit balance.
// One wallet per user, created lazily on first access and never deleted.
// Balances are mutated only through the wallet service, never directly.
type Wallet struct {
	ID            uint    `gorm:"primarykey"`
	UserID        uint    `gorm:"uniqueIndex;not null"`
	Balance       float64 `gorm:"not null;default:0"`
	CreditBalance float64 `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// Balances always start at zero regardless of what the caller set
	w.Balance = 0
	w.CreditBalance = 0
	return nil
}
