package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionTypeProviderEarning  TransactionType = "SERVICE_PROVIDER_EARNING"
	TransactionTypeWithdrawal       TransactionType = "WITHDRAWAL"
	TransactionTypeSystemAdjustment TransactionType = "SYSTEM_ADJUSTMENT"
	TransactionTypeDeposit          TransactionType = "DEPOSIT"
)

// Valid reports whether the type is one of the known ledger entry types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeProviderEarning,
		TransactionTypeWithdrawal,
		TransactionTypeSystemAdjustment,
		TransactionTypeDeposit:
		return true
	}
	return false
}

// Title returns the user-facing label for the entry type.
func (t TransactionType) Title() string {
	switch t {
	case TransactionTypeProviderEarning:
		return "Service earning"
	case TransactionTypeWithdrawal:
		return "Withdrawal"
	case TransactionTypeSystemAdjustment:
		return "Balance adjustment"
	case TransactionTypeDeposit:
		return "Deposit"
	default:
		return "Transaction"
	}
}

// TransactionStatus is the lifecycle state of a ledger entry.
// Pending entries may settle to completed or failed; completed and
// failed are terminal.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further status change is allowed.
func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

// WalletTransaction is an immutable ledger entry. Amount is signed:
// positive entries credit the wallet, negative entries debit it. Once
// written, only Status may change, and only from PENDING.
type WalletTransaction struct {
	ID          uint              `gorm:"primarykey"`
	WalletID    uint              `gorm:"index;not null"`
	Amount      decimal.Decimal   `gorm:"type:decimal(19,2);not null"`
	Type        TransactionType   `gorm:"type:varchar(32);not null"`
	Status      TransactionStatus `gorm:"type:varchar(16);not null;default:'PENDING'"`
	BookingID   *uint             `gorm:"index"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Credit reports whether the entry adds funds to the wallet.
func (t *WalletTransaction) Credit() bool {
	return t.Amount.IsPositive()
}
