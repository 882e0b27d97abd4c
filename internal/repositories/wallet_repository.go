package repositories

import (
	"context"
	"errors"

	"pawpay/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrDuplicateWallet     = errors.New("wallet already exists")
	ErrTransactionNotFound = errors.New("wallet transaction not found")
	ErrTransactionSettled  = errors.New("wallet transaction is not pending")
	ErrNegativeBalance     = errors.New("balance would go negative")
)

// TransactionSummary aggregates a wallet's completed ledger entries.
type TransactionSummary struct {
	TotalCredits decimal.Decimal
	TotalDebits  decimal.Decimal
	Count        int64
}

// WalletRepository defines database operations for wallets and their
// ledger entries. Mutating methods are meant to run inside
// ExecuteInTransaction; the ForUpdate variants take a row lock so
// concurrent units of work against the same wallet serialize.
type WalletRepository interface {
	// Wallet operations
	Create(wallet *models.Wallet) error
	GetByID(id uint) (*models.Wallet, error)
	GetByOwnerID(ownerID uint) (*models.Wallet, error)
	GetByIDForUpdate(id uint) (*models.Wallet, error)
	GetByOwnerIDForUpdate(ownerID uint) (*models.Wallet, error)

	// ApplyDelta atomically adjusts both balance fields by the given
	// signed deltas. It fails with ErrNegativeBalance if either result
	// would drop below zero, leaving the row untouched. Every balance
	// mutation in the engine goes through here.
	ApplyDelta(walletID uint, balanceDelta, pendingDelta decimal.Decimal) error

	// Ledger operations
	CreateTransaction(tx *models.WalletTransaction) error
	GetTransactionByID(id uint) (*models.WalletTransaction, error)
	// SettleTransaction moves a PENDING entry to a terminal status. The
	// update is guarded on the current status so a settled entry can
	// never be settled again.
	SettleTransaction(id uint, status models.TransactionStatus) error
	GetTransactionsByWallet(ctx context.Context, walletID uint, limit, offset int) ([]models.WalletTransaction, int64, error)
	GetTransactionSummary(ctx context.Context, walletID uint) (*TransactionSummary, error)
	// GetLedgerTotals returns the signed sum over all entries and the
	// signed sum over pending entries. Every balance mutation appends an
	// entry whose amount equals the balance delta, so at any quiet point
	// the wallet balance equals the first sum and the pending balance
	// equals the negation of the second.
	GetLedgerTotals(ctx context.Context, walletID uint) (all decimal.Decimal, pending decimal.Decimal, err error)

	// ExecuteInTransaction runs fn inside one database transaction; the
	// repository passed to fn is bound to that transaction.
	ExecuteInTransaction(fn func(WalletRepository) error) error
}
