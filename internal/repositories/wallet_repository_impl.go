package repositories

import (
	"context"
	"errors"
	"fmt"

	"pawpay/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	result := r.db.Create(wallet)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateWallet
		}
		return fmt.Errorf("failed to create wallet: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) GetByID(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.First(&wallet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetByOwnerID(ownerID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("owner_id = ?", ownerID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetByIDForUpdate(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&wallet, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetByOwnerIDForUpdate(ownerID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("owner_id = ?", ownerID).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) ApplyDelta(walletID uint, balanceDelta, pendingDelta decimal.Decimal) error {
	wallet, err := r.GetByIDForUpdate(walletID)
	if err != nil {
		return err
	}

	newBalance := wallet.Balance.Add(balanceDelta)
	newPending := wallet.PendingBalance.Add(pendingDelta)
	if newBalance.IsNegative() || newPending.IsNegative() {
		return ErrNegativeBalance
	}

	result := r.db.Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Updates(map[string]interface{}{
			"balance":         newBalance,
			"pending_balance": newPending,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to apply balance delta: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) CreateTransaction(tx *models.WalletTransaction) error {
	result := r.db.Create(tx)
	if result.Error != nil {
		return fmt.Errorf("failed to create wallet transaction: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) GetTransactionByID(id uint) (*models.WalletTransaction, error) {
	var tx models.WalletTransaction
	if err := r.db.First(&tx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get wallet transaction: %w", err)
	}
	return &tx, nil
}

func (r *walletRepository) SettleTransaction(id uint, status models.TransactionStatus) error {
	if !status.Terminal() {
		return fmt.Errorf("cannot settle transaction %d to non-terminal status %s", id, status)
	}

	result := r.db.Model(&models.WalletTransaction{}).
		Where("id = ? AND status = ?", id, models.TransactionStatusPending).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to settle wallet transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetTransactionByID(id); err != nil {
			return err
		}
		return ErrTransactionSettled
	}
	return nil
}

func (r *walletRepository) GetTransactionsByWallet(ctx context.Context, walletID uint, limit, offset int) ([]models.WalletTransaction, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.WalletTransaction{}).
		Where("wallet_id = ?", walletID).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count wallet transactions: %w", err)
	}

	var txs []models.WalletTransaction
	err = r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get wallet transactions: %w", err)
	}
	return txs, total, nil
}

func (r *walletRepository) GetTransactionSummary(ctx context.Context, walletID uint) (*TransactionSummary, error) {
	var summary TransactionSummary
	err := r.db.WithContext(ctx).
		Model(&models.WalletTransaction{}).
		Where("wallet_id = ? AND status = ?", walletID, models.TransactionStatusCompleted).
		Select(`
			COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) as total_credits,
			COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0) as total_debits,
			COUNT(*) as count
		`).
		Scan(&summary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction summary: %w", err)
	}
	return &summary, nil
}

func (r *walletRepository) GetLedgerTotals(ctx context.Context, walletID uint) (decimal.Decimal, decimal.Decimal, error) {
	var all decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.WalletTransaction{}).
		Where("wallet_id = ?", walletID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&all).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum ledger entries: %w", err)
	}

	var pending decimal.Decimal
	err = r.db.WithContext(ctx).
		Model(&models.WalletTransaction{}).
		Where("wallet_id = ? AND status = ?", walletID, models.TransactionStatusPending).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&pending).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum pending ledger entries: %w", err)
	}
	return all, pending, nil
}

func (r *walletRepository) ExecuteInTransaction(fn func(WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &walletRepository{db: tx}
		return fn(txRepo)
	})
}
