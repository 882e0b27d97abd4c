package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	domain "pawpay/internal/errors"
	"pawpay/internal/models"
	"pawpay/internal/repositories"
	"pawpay/internal/services/banktransfer"
	"pawpay/internal/services/notification"
	"pawpay/internal/services/wallet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type service struct {
	withdrawals repositories.WithdrawalRepository
	users       repositories.UserRepository
	cache       wallet.CacheOperator
	gateway     banktransfer.Gateway
	notifier    notification.Dispatcher
	fees        FeePolicy
	limits      LimitPolicy
	now         func() time.Time
}

// NewService creates a new withdrawal service
func NewService(
	withdrawals repositories.WithdrawalRepository,
	users repositories.UserRepository,
	cache wallet.CacheOperator,
	gateway banktransfer.Gateway,
	notifier notification.Dispatcher,
	cfg Config,
) Service {
	if withdrawals == nil {
		panic("withdrawal repo is required")
	}
	if users == nil {
		panic("user repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if gateway == nil {
		panic("bank transfer gateway is required")
	}
	if notifier == nil {
		panic("notification dispatcher is required")
	}

	if cfg.Fees.Rate.IsZero() && cfg.Fees.MinFee.IsZero() && cfg.Fees.MaxFee.IsZero() {
		cfg.Fees = FeePolicy{
			Rate:   decimal.RequireFromString(DefaultFeeRate),
			MinFee: decimal.RequireFromString(DefaultMinFee),
			MaxFee: decimal.RequireFromString(DefaultMaxFee),
		}
	}
	if cfg.Limits.DailyCap.IsZero() && cfg.Limits.MonthlyCap.IsZero() {
		cfg.Limits = LimitPolicy{
			DailyCap:   decimal.RequireFromString(DefaultDailyCap),
			MonthlyCap: decimal.RequireFromString(DefaultMonthlyCap),
		}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &service{
		withdrawals: withdrawals,
		users:       users,
		cache:       cache,
		gateway:     gateway,
		notifier:    notifier,
		fees:        cfg.Fees,
		limits:      cfg.Limits,
		now:         cfg.Clock,
	}
}

func (s *service) Create(ctx context.Context, providerID uint, input CreateInput) (*models.Withdrawal, error) {
	user, err := s.users.GetByID(providerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve provider: %w", err)
	}
	if !user.IsProvider() {
		return nil, domain.ErrForbidden
	}

	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if !input.bankDetailsComplete() {
		return nil, domain.ErrInvalidBankDetails
	}

	fee := s.fees.Compute(input.Amount)
	netAmount := input.Amount.Sub(fee)
	if !netAmount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	var created *models.Withdrawal
	err = s.withdrawals.ExecuteInTransaction(func(wtx repositories.WithdrawalRepository, wltx repositories.WalletRepository) error {
		// Lock the wallet row before any read: this serializes
		// concurrent requests against the same wallet, so the balance
		// check and the limit totals below see committed state that
		// cannot change under us.
		w, err := wltx.GetByOwnerIDForUpdate(providerID)
		if err != nil {
			if errors.Is(err, repositories.ErrWalletNotFound) {
				return domain.ErrWalletNotFound
			}
			return err
		}

		if w.Balance.LessThan(input.Amount) {
			return domain.ErrInsufficientBalance
		}

		now := s.now()
		dayStart, dayEnd := dayWindow(now)
		monthStart, monthEnd := monthWindow(now)

		requestedToday, err := wtx.GetRequestedTotal(ctx, providerID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		requestedThisMonth, err := wtx.GetRequestedTotal(ctx, providerID, monthStart, monthEnd)
		if err != nil {
			return err
		}
		if err := s.limits.Check(requestedToday, requestedThisMonth, input.Amount); err != nil {
			return err
		}

		created = &models.Withdrawal{
			WalletID:          w.ID,
			ProviderID:        providerID,
			Amount:            input.Amount,
			Fee:               fee,
			NetAmount:         netAmount,
			Status:            models.WithdrawalStatusPending,
			BankCode:          input.BankCode,
			BankName:          input.BankName,
			AccountNumber:     input.AccountNumber,
			AccountHolderName: input.AccountHolderName,
		}
		if err := wtx.Create(created); err != nil {
			return err
		}

		hold := &models.WalletTransaction{
			WalletID:    w.ID,
			Amount:      input.Amount.Neg(),
			Type:        models.TransactionTypeWithdrawal,
			Status:      models.TransactionStatusPending,
			Description: fmt.Sprintf("Withdrawal request %d", created.ID),
		}
		if err := wltx.CreateTransaction(hold); err != nil {
			return err
		}
		created.HoldTransactionID = &hold.ID
		if err := wtx.Update(created); err != nil {
			return err
		}

		// Move the amount from available to pending.
		return wltx.ApplyDelta(w.ID, input.Amount.Neg(), input.Amount)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNegativeBalance) {
			return nil, domain.ErrInvariantViolation
		}
		return nil, err
	}

	s.invalidateWallet(ctx, providerID)
	log.Printf("Withdrawal request %d created for provider %d (amount %s, fee %s)",
		created.ID, providerID, created.Amount, created.Fee)
	return created, nil
}

func (s *service) Approve(ctx context.Context, withdrawalID uint, adminNote string) (*models.Withdrawal, error) {
	var approved *models.Withdrawal
	err := s.withdrawals.ExecuteInTransaction(func(wtx repositories.WithdrawalRepository, _ repositories.WalletRepository) error {
		w, err := s.lockedWithdrawal(wtx, withdrawalID)
		if err != nil {
			return err
		}
		if !w.Status.CanTransitionTo(models.WithdrawalStatusApproved) {
			return domain.ErrInvalidStateTransition
		}

		now := s.now()
		w.Status = models.WithdrawalStatusApproved
		w.AdminNote = adminNote
		w.ProcessedAt = &now

		// Hand off to settlement before the transfer call: the
		// PROCESSING state and its reference must be durable before any
		// money moves on the rail.
		w.Status = models.WithdrawalStatusProcessing
		w.TransactionRef = "TXN-" + uuid.NewString()

		if err := wtx.Update(w); err != nil {
			return err
		}
		approved = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.WithdrawalApproved(ctx, approved)
	log.Printf("Withdrawal %d approved, settling as %s", approved.ID, approved.TransactionRef)

	return s.settle(ctx, approved)
}

// settle runs the bank transfer for a committed PROCESSING withdrawal.
// The wallet lock is not held here; the gateway call may be slow.
func (s *service) settle(ctx context.Context, w *models.Withdrawal) (*models.Withdrawal, error) {
	result, err := s.gateway.Transfer(ctx, banktransfer.TransferRequest{
		Reference:         w.TransactionRef,
		Amount:            w.NetAmount,
		BankCode:          w.BankCode,
		BankName:          w.BankName,
		AccountNumber:     w.AccountNumber,
		AccountHolderName: w.AccountHolderName,
		Description:       fmt.Sprintf("Withdrawal %d payout", w.ID),
	})
	if err != nil {
		log.Printf("Bank transfer for withdrawal %d failed: %v", w.ID, err)
		return s.FailSettlement(ctx, w.ID, "bank transfer failed")
	}

	return s.Complete(ctx, w.ID, "Bank transfer completed: "+result.GatewayRef)
}

func (s *service) Reject(ctx context.Context, withdrawalID uint, reason string) (*models.Withdrawal, error) {
	rejected, err := s.reverse(ctx, withdrawalID, models.WithdrawalStatusRejected, reason,
		"Withdrawal rejected, funds returned")
	if err != nil {
		return nil, err
	}

	s.notifier.WithdrawalRejected(ctx, rejected)
	log.Printf("Withdrawal %d rejected: %s", rejected.ID, reason)
	return rejected, nil
}

func (s *service) FailSettlement(ctx context.Context, withdrawalID uint, reason string) (*models.Withdrawal, error) {
	failed, err := s.reverse(ctx, withdrawalID, models.WithdrawalStatusFailed, reason,
		"Withdrawal transfer failed, funds returned")
	if err != nil {
		return nil, err
	}

	s.notifier.WithdrawalFailed(ctx, failed)
	log.Printf("Withdrawal %d settlement failed: %s", failed.ID, reason)
	return failed, nil
}

// reverse moves a withdrawal to a refunding terminal state: the hold is
// released back to the available balance, a corrective credit entry
// documents the refund and the original pending debit settles as
// failed. Used by both Reject and FailSettlement.
func (s *service) reverse(ctx context.Context, withdrawalID uint, target models.WithdrawalStatus, reason, description string) (*models.Withdrawal, error) {
	var reversed *models.Withdrawal
	err := s.withdrawals.ExecuteInTransaction(func(wtx repositories.WithdrawalRepository, wltx repositories.WalletRepository) error {
		w, err := s.lockedWithdrawal(wtx, withdrawalID)
		if err != nil {
			return err
		}
		if !w.Status.CanTransitionTo(target) {
			return domain.ErrInvalidStateTransition
		}

		now := s.now()
		w.Status = target
		w.RejectionReason = reason
		w.ProcessedAt = &now
		if err := wtx.Update(w); err != nil {
			return err
		}

		if err := wltx.ApplyDelta(w.WalletID, w.Amount, w.Amount.Neg()); err != nil {
			return err
		}

		refund := &models.WalletTransaction{
			WalletID:    w.WalletID,
			Amount:      w.Amount,
			Type:        models.TransactionTypeSystemAdjustment,
			Status:      models.TransactionStatusCompleted,
			Description: fmt.Sprintf("%s (withdrawal %d)", description, w.ID),
		}
		if err := wltx.CreateTransaction(refund); err != nil {
			return err
		}

		if w.HoldTransactionID != nil {
			if err := wltx.SettleTransaction(*w.HoldTransactionID, models.TransactionStatusFailed); err != nil {
				return err
			}
		}

		reversed = w
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNegativeBalance) {
			return nil, domain.ErrInvariantViolation
		}
		return nil, err
	}

	s.invalidateWallet(ctx, reversed.ProviderID)
	return reversed, nil
}

func (s *service) Complete(ctx context.Context, withdrawalID uint, note string) (*models.Withdrawal, error) {
	var completed *models.Withdrawal
	err := s.withdrawals.ExecuteInTransaction(func(wtx repositories.WithdrawalRepository, wltx repositories.WalletRepository) error {
		w, err := s.lockedWithdrawal(wtx, withdrawalID)
		if err != nil {
			return err
		}
		if !w.Status.CanTransitionTo(models.WithdrawalStatusCompleted) {
			return domain.ErrInvalidStateTransition
		}

		w.Status = models.WithdrawalStatusCompleted
		if note != "" {
			w.AdminNote = note
		}
		if err := wtx.Update(w); err != nil {
			return err
		}

		// The balance was already debited at creation; the funds now
		// leave the pending hold for good.
		if err := wltx.ApplyDelta(w.WalletID, decimal.Zero, w.Amount.Neg()); err != nil {
			return err
		}

		if w.HoldTransactionID != nil {
			if err := wltx.SettleTransaction(*w.HoldTransactionID, models.TransactionStatusCompleted); err != nil {
				return err
			}
		}

		completed = w
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNegativeBalance) {
			return nil, domain.ErrInvariantViolation
		}
		return nil, err
	}

	s.invalidateWallet(ctx, completed.ProviderID)
	s.notifier.WithdrawalCompleted(ctx, completed)
	log.Printf("Withdrawal %d completed", completed.ID)
	return completed, nil
}

func (s *service) Get(ctx context.Context, withdrawalID uint) (*models.Withdrawal, error) {
	w, err := s.withdrawals.GetByID(withdrawalID)
	if err != nil {
		if errors.Is(err, repositories.ErrWithdrawalNotFound) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("failed to get withdrawal: %w", err)
	}
	return w, nil
}

func (s *service) ListByProvider(ctx context.Context, providerID uint, limit, offset int) ([]models.Withdrawal, int64, error) {
	return s.withdrawals.ListByProvider(ctx, providerID, limit, offset)
}

func (s *service) ListAll(ctx context.Context, limit, offset int) ([]models.Withdrawal, int64, error) {
	return s.withdrawals.ListAll(ctx, limit, offset)
}

func (s *service) lockedWithdrawal(wtx repositories.WithdrawalRepository, id uint) (*models.Withdrawal, error) {
	w, err := wtx.GetByIDForUpdate(id)
	if err != nil {
		if errors.Is(err, repositories.ErrWithdrawalNotFound) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *service) invalidateWallet(ctx context.Context, ownerID uint) {
	if err := s.cache.InvalidateWallet(ctx, ownerID); err != nil {
		log.Printf("Failed to invalidate wallet cache for owner %d: %v", ownerID, err)
	}
}
