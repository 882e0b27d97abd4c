// Package ledger provides the read side of the wallet transaction
// ledger: history pages, summaries, settlement of pending entries and
// reconciliation against the wallet balances. Entries themselves are
// appended by the wallet and withdrawal services inside their own units
// of work; nothing here ever edits a recorded amount.
package ledger

import (
	"context"
	"errors"
	"fmt"

	domain "pawpay/internal/errors"
	"pawpay/internal/models"
	"pawpay/internal/repositories"

	"github.com/shopspring/decimal"
)

// Summary aggregates a wallet's completed entries.
type Summary struct {
	TotalCredits decimal.Decimal `json:"total_credits"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	Net          decimal.Decimal `json:"net"`
	Count        int64           `json:"count"`
}

// Report is the result of reconciling a wallet against its ledger.
// A healthy wallet satisfies Balance == LedgerBalance and
// PendingBalance == LedgerPending.
type Report struct {
	WalletID       uint            `json:"wallet_id"`
	Balance        decimal.Decimal `json:"balance"`
	PendingBalance decimal.Decimal `json:"pending_balance"`
	LedgerBalance  decimal.Decimal `json:"ledger_balance"`
	LedgerPending  decimal.Decimal `json:"ledger_pending"`
	Consistent     bool            `json:"consistent"`
}

type Service interface {
	ListByWallet(ctx context.Context, ownerID uint, limit, offset int) ([]models.WalletTransaction, int64, error)
	Summarize(ctx context.Context, ownerID uint) (*Summary, error)
	// Settle moves a pending entry to completed or failed. Terminal
	// entries never change again.
	Settle(ctx context.Context, transactionID uint, status models.TransactionStatus) error
	Reconcile(ctx context.Context, ownerID uint) (*Report, error)
}

type service struct {
	repo repositories.WalletRepository
}

func NewService(repo repositories.WalletRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

func (s *service) ListByWallet(ctx context.Context, ownerID uint, limit, offset int) ([]models.WalletTransaction, int64, error) {
	wallet, err := s.walletFor(ownerID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.GetTransactionsByWallet(ctx, wallet.ID, limit, offset)
}

func (s *service) Summarize(ctx context.Context, ownerID uint) (*Summary, error) {
	wallet, err := s.walletFor(ownerID)
	if err != nil {
		return nil, err
	}

	agg, err := s.repo.GetTransactionSummary(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}
	return &Summary{
		TotalCredits: agg.TotalCredits,
		TotalDebits:  agg.TotalDebits,
		Net:          agg.TotalCredits.Sub(agg.TotalDebits),
		Count:        agg.Count,
	}, nil
}

func (s *service) Settle(ctx context.Context, transactionID uint, status models.TransactionStatus) error {
	if !status.Terminal() {
		return domain.ErrInvalidStateTransition
	}
	err := s.repo.SettleTransaction(transactionID, status)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return domain.ErrTransactionNotFound
		}
		if errors.Is(err, repositories.ErrTransactionSettled) {
			return domain.ErrInvalidStateTransition
		}
		return fmt.Errorf("failed to settle ledger entry: %w", err)
	}
	return nil
}

func (s *service) Reconcile(ctx context.Context, ownerID uint) (*Report, error) {
	wallet, err := s.walletFor(ownerID)
	if err != nil {
		return nil, err
	}

	all, pending, err := s.repo.GetLedgerTotals(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}

	ledgerPending := pending.Neg()
	return &Report{
		WalletID:       wallet.ID,
		Balance:        wallet.Balance,
		PendingBalance: wallet.PendingBalance,
		LedgerBalance:  all,
		LedgerPending:  ledgerPending,
		Consistent: wallet.Balance.Equal(all) &&
			wallet.PendingBalance.Equal(ledgerPending),
	}, nil
}

func (s *service) walletFor(ownerID uint) (*models.Wallet, error) {
	wallet, err := s.repo.GetByOwnerID(ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return wallet, nil
}
