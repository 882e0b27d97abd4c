package wallet

import (
	"context"

	"pawpay/internal/models"

	"github.com/shopspring/decimal"
)

// Service defines the wallet store interface. It owns wallet lifecycle
// and every credit primitive; withdrawals are driven by the withdrawal
// service on top of the same repositories.
type Service interface {
	// Core wallet operations
	GetWallet(ctx context.Context, ownerID uint) (*models.Wallet, error)
	CreateWallet(ctx context.Context, ownerID uint) (*models.Wallet, error)
	// GetOrCreateWallet backs lazy wallet creation on a provider's first
	// earning.
	GetOrCreateWallet(ctx context.Context, ownerID uint) (*models.Wallet, error)

	// Credit primitives. Each runs as one atomic unit: balance delta plus
	// a completed ledger entry, committed or rolled back together.
	RecordEarning(ctx context.Context, providerID, bookingID uint, amount decimal.Decimal, description string) (*models.WalletTransaction, error)
	RecordDeposit(ctx context.Context, ownerID uint, amount decimal.Decimal, description string) (*models.WalletTransaction, error)
	RecordAdjustment(ctx context.Context, ownerID uint, amount decimal.Decimal, description string) (*models.WalletTransaction, error)
}

// CacheOperator defines the caching operations the wallet service needs.
type CacheOperator interface {
	GetWallet(ctx context.Context, ownerID uint) (*models.Wallet, error)
	CacheWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, ownerID uint) error
}
