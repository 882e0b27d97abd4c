package withdrawal

import (
	"context"

	"pawpay/internal/models"
)

// Service drives withdrawal requests through the settlement state
// machine. Every transition commits the withdrawal status, the wallet
// balance change and the ledger write as one unit of work.
type Service interface {
	// Create opens a PENDING request: fee computed, limits enforced,
	// the amount moved from available to pending balance and a pending
	// ledger debit recorded.
	Create(ctx context.Context, providerID uint, input CreateInput) (*models.Withdrawal, error)

	// Approve moves a PENDING request through APPROVED into PROCESSING,
	// commits, then invokes the bank-transfer gateway. A synchronous
	// gateway result drives Complete or FailSettlement before Approve
	// returns; an asynchronous rail calls them later.
	Approve(ctx context.Context, withdrawalID uint, adminNote string) (*models.Withdrawal, error)

	// Reject declines a PENDING request and returns the held funds.
	Reject(ctx context.Context, withdrawalID uint, reason string) (*models.Withdrawal, error)

	// Complete finishes a PROCESSING request: the hold is released and
	// the funds have permanently left the platform.
	Complete(ctx context.Context, withdrawalID uint, note string) (*models.Withdrawal, error)

	// FailSettlement records a failed bank transfer on a PROCESSING
	// request and returns the held funds, mirroring Reject.
	FailSettlement(ctx context.Context, withdrawalID uint, reason string) (*models.Withdrawal, error)

	// Reads
	Get(ctx context.Context, withdrawalID uint) (*models.Withdrawal, error)
	ListByProvider(ctx context.Context, providerID uint, limit, offset int) ([]models.Withdrawal, int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Withdrawal, int64, error)
}
