package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet holds a user's funds. Balance is immediately spendable;
// PendingBalance is earmarked for in-flight withdrawals. Neither field may
// ever go negative, and both are only ever changed through
// repositories.WalletRepository.ApplyDelta.
type Wallet struct {
	ID             uint            `gorm:"primarykey"`
	OwnerID        uint            `gorm:"uniqueIndex;not null"`
	Balance        decimal.Decimal `gorm:"type:decimal(19,2);not null;default:0"`
	PendingBalance decimal.Decimal `gorm:"type:decimal(19,2);not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// Wallets always open empty, whatever the caller set.
	w.Balance = decimal.Zero
	w.PendingBalance = decimal.Zero
	return nil
}
