package wallet

import (
	"context"
	"errors"
	"fmt"

	domain "pawpay/internal/errors"
	"pawpay/internal/models"
	"pawpay/internal/repositories"

	"github.com/shopspring/decimal"
)

type service struct {
	repo     repositories.WalletRepository
	bookings repositories.BookingRepository
	cache    CacheOperator
	metrics  MetricsCollector
}

// NewService creates a new wallet service
func NewService(
	repo repositories.WalletRepository,
	bookings repositories.BookingRepository,
	cache CacheOperator,
	metrics MetricsCollector,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if bookings == nil {
		panic("booking repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		repo:     repo,
		bookings: bookings,
		cache:    cache,
		metrics:  metrics,
	}
}

func (s *service) GetWallet(ctx context.Context, ownerID uint) (*models.Wallet, error) {
	// Try cache first
	if wallet, err := s.cache.GetWallet(ctx, ownerID); err == nil {
		s.metrics.RecordCacheHit(walletKey(ownerID))
		return wallet, nil
	}
	s.metrics.RecordCacheMiss(walletKey(ownerID))

	wallet, err := s.repo.GetByOwnerID(ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	if err := s.cache.CacheWallet(ctx, wallet); err != nil {
		s.metrics.RecordError("get_wallet", "cache_write")
	}
	return wallet, nil
}

func (s *service) CreateWallet(ctx context.Context, ownerID uint) (*models.Wallet, error) {
	wallet := &models.Wallet{OwnerID: ownerID}

	if err := s.repo.Create(wallet); err != nil {
		if errors.Is(err, repositories.ErrDuplicateWallet) {
			return nil, domain.ErrWalletExists
		}
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	if err := s.cache.CacheWallet(ctx, wallet); err != nil {
		s.metrics.RecordError("create_wallet", "cache_write")
	}
	return wallet, nil
}

func (s *service) GetOrCreateWallet(ctx context.Context, ownerID uint) (*models.Wallet, error) {
	wallet, err := s.GetWallet(ctx, ownerID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, domain.ErrWalletNotFound) {
		return nil, err
	}

	wallet, err = s.CreateWallet(ctx, ownerID)
	if errors.Is(err, domain.ErrWalletExists) {
		// Lost a creation race; the row exists now.
		return s.GetWallet(ctx, ownerID)
	}
	return wallet, err
}

func (s *service) RecordEarning(ctx context.Context, providerID, bookingID uint, amount decimal.Decimal, description string) (*models.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrBookingNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to resolve booking: %w", err)
	}
	if description == "" {
		description = fmt.Sprintf("Earning for booking %d (%s)", booking.ID, booking.ServiceName)
	}

	entry, err := s.credit(ctx, providerID, amount, models.TransactionTypeProviderEarning, &bookingID, description)
	if err != nil {
		s.metrics.RecordError("record_earning", err.Error())
		return nil, err
	}
	s.metrics.RecordTransaction(string(models.TransactionTypeProviderEarning), amount)
	return entry, nil
}

func (s *service) RecordDeposit(ctx context.Context, ownerID uint, amount decimal.Decimal, description string) (*models.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	entry, err := s.credit(ctx, ownerID, amount, models.TransactionTypeDeposit, nil, description)
	if err != nil {
		s.metrics.RecordError("record_deposit", err.Error())
		return nil, err
	}
	s.metrics.RecordTransaction(string(models.TransactionTypeDeposit), amount)
	return entry, nil
}

func (s *service) RecordAdjustment(ctx context.Context, ownerID uint, amount decimal.Decimal, description string) (*models.WalletTransaction, error) {
	if amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}

	entry, err := s.credit(ctx, ownerID, amount, models.TransactionTypeSystemAdjustment, nil, description)
	if err != nil {
		s.metrics.RecordError("record_adjustment", err.Error())
		return nil, err
	}
	s.metrics.RecordTransaction(string(models.TransactionTypeSystemAdjustment), amount)
	return entry, nil
}

// credit applies a signed balance delta and appends the matching
// completed ledger entry in one database transaction. The wallet row is
// locked first so concurrent operations on the same wallet serialize.
func (s *service) credit(ctx context.Context, ownerID uint, amount decimal.Decimal, txType models.TransactionType, bookingID *uint, description string) (*models.WalletTransaction, error) {
	wallet, err := s.GetOrCreateWallet(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var entry *models.WalletTransaction
	err = s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		locked, err := tx.GetByIDForUpdate(wallet.ID)
		if err != nil {
			return err
		}

		if err := tx.ApplyDelta(locked.ID, amount, decimal.Zero); err != nil {
			return err
		}

		entry = &models.WalletTransaction{
			WalletID:    locked.ID,
			Amount:      amount,
			Type:        txType,
			Status:      models.TransactionStatusCompleted,
			BookingID:   bookingID,
			Description: description,
		}
		return tx.CreateTransaction(entry)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNegativeBalance) {
			return nil, domain.ErrInvariantViolation
		}
		return nil, err
	}

	if err := s.cache.InvalidateWallet(ctx, ownerID); err != nil {
		s.metrics.RecordError("credit", "cache_invalidate")
	}
	return entry, nil
}

func walletKey(ownerID uint) string {
	return fmt.Sprintf("%s%d", WalletCachePrefix, ownerID)
}
