package repositories

import (
	"context"
	"errors"
	"time"

	"pawpay/internal/models"

	"github.com/shopspring/decimal"
)

var ErrWithdrawalNotFound = errors.New("withdrawal not found")

// WithdrawalRepository defines database operations for withdrawal
// requests. Workflow transitions span the withdrawal, the wallet and the
// ledger, so ExecuteInTransaction hands fn both repositories bound to
// the same database transaction.
type WithdrawalRepository interface {
	Create(w *models.Withdrawal) error
	GetByID(id uint) (*models.Withdrawal, error)
	// GetByIDForUpdate locks the withdrawal row so two concurrent
	// transitions on the same request serialize.
	GetByIDForUpdate(id uint) (*models.Withdrawal, error)
	Update(w *models.Withdrawal) error

	ListByProvider(ctx context.Context, providerID uint, limit, offset int) ([]models.Withdrawal, int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Withdrawal, int64, error)

	// GetRequestedTotal sums the amounts of all withdrawals the provider
	// requested in [since, until) that still count against velocity
	// limits, i.e. everything not rejected or failed.
	GetRequestedTotal(ctx context.Context, providerID uint, since, until time.Time) (decimal.Decimal, error)

	ExecuteInTransaction(fn func(WithdrawalRepository, WalletRepository) error) error
}
