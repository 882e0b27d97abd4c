package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus is the state of a withdrawal request.
//
// The allowed transitions are:
//
//	PENDING    -> APPROVED | REJECTED
//	APPROVED   -> PROCESSING
//	PROCESSING -> COMPLETED | FAILED
//
// COMPLETED, REJECTED and FAILED are terminal.
type WithdrawalStatus string

const (
	WithdrawalStatusPending    WithdrawalStatus = "PENDING"
	WithdrawalStatusApproved   WithdrawalStatus = "APPROVED"
	WithdrawalStatusProcessing WithdrawalStatus = "PROCESSING"
	WithdrawalStatusCompleted  WithdrawalStatus = "COMPLETED"
	WithdrawalStatusRejected   WithdrawalStatus = "REJECTED"
	WithdrawalStatusFailed     WithdrawalStatus = "FAILED"
)

func (s WithdrawalStatus) Valid() bool {
	switch s {
	case WithdrawalStatusPending, WithdrawalStatusApproved, WithdrawalStatusProcessing,
		WithdrawalStatusCompleted, WithdrawalStatusRejected, WithdrawalStatusFailed:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transition.
func (s WithdrawalStatus) Terminal() bool {
	switch s {
	case WithdrawalStatusCompleted, WithdrawalStatusRejected, WithdrawalStatusFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows moving from s
// to next.
func (s WithdrawalStatus) CanTransitionTo(next WithdrawalStatus) bool {
	switch s {
	case WithdrawalStatusPending:
		return next == WithdrawalStatusApproved || next == WithdrawalStatusRejected
	case WithdrawalStatusApproved:
		return next == WithdrawalStatusProcessing
	case WithdrawalStatusProcessing:
		return next == WithdrawalStatusCompleted || next == WithdrawalStatusFailed
	default:
		return false
	}
}

// Title returns the user-facing label for the status.
func (s WithdrawalStatus) Title() string {
	switch s {
	case WithdrawalStatusPending:
		return "Awaiting review"
	case WithdrawalStatusApproved:
		return "Approved"
	case WithdrawalStatusProcessing:
		return "Transfer in progress"
	case WithdrawalStatusCompleted:
		return "Paid out"
	case WithdrawalStatusRejected:
		return "Rejected"
	case WithdrawalStatusFailed:
		return "Transfer failed"
	default:
		return "Unknown"
	}
}

// Withdrawal is a provider's request to move wallet funds to a bank
// account. Amount, Fee and NetAmount are frozen at creation;
// NetAmount = Amount - Fee always holds.
type Withdrawal struct {
	ID         uint             `gorm:"primarykey"`
	WalletID   uint             `gorm:"index;not null"`
	ProviderID uint             `gorm:"index;not null"`
	Amount     decimal.Decimal  `gorm:"type:decimal(19,2);not null"`
	Fee        decimal.Decimal  `gorm:"type:decimal(19,2);not null"`
	NetAmount  decimal.Decimal  `gorm:"type:decimal(19,2);not null"`
	Status     WithdrawalStatus `gorm:"type:varchar(16);not null;default:'PENDING'"`

	BankCode          string `gorm:"not null"`
	BankName          string `gorm:"not null"`
	AccountNumber     string `gorm:"not null"`
	AccountHolderName string `gorm:"not null"`

	// HoldTransactionID links the pending ledger debit written when the
	// request was created; it is settled when the withdrawal reaches a
	// terminal state.
	HoldTransactionID *uint

	TransactionRef  string `gorm:"index"`
	AdminNote       string
	RejectionReason string
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MaskedAccountNumber hides all but the last four digits of the bank
// account number for API responses and notifications.
func (w *Withdrawal) MaskedAccountNumber() string {
	n := len(w.AccountNumber)
	if n <= 4 {
		return w.AccountNumber
	}
	masked := make([]byte, n)
	for i := 0; i < n-4; i++ {
		masked[i] = '*'
	}
	copy(masked[n-4:], w.AccountNumber[n-4:])
	return string(masked)
}
