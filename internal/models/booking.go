package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking is owned by the scheduling subsystem. The payments engine only
// reads it, to validate booking references on ledger entries and to
// describe earnings.
type Booking struct {
	ID          uint            `gorm:"primarykey"`
	UserID      uint            `gorm:"index;not null"`
	ProviderID  uint            `gorm:"index;not null"`
	ServiceName string          `gorm:"not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(19,2);not null"`
	Status      string          `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
