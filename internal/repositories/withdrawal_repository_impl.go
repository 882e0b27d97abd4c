package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pawpay/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type withdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &withdrawalRepository{
		db: db,
	}
}

func (r *withdrawalRepository) Create(w *models.Withdrawal) error {
	if result := r.db.Create(w); result.Error != nil {
		return fmt.Errorf("failed to create withdrawal: %w", result.Error)
	}
	return nil
}

func (r *withdrawalRepository) GetByID(id uint) (*models.Withdrawal, error) {
	var w models.Withdrawal
	if err := r.db.First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("failed to get withdrawal: %w", err)
	}
	return &w, nil
}

func (r *withdrawalRepository) GetByIDForUpdate(id uint) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("failed to lock withdrawal: %w", err)
	}
	return &w, nil
}

func (r *withdrawalRepository) Update(w *models.Withdrawal) error {
	if result := r.db.Save(w); result.Error != nil {
		return fmt.Errorf("failed to update withdrawal: %w", result.Error)
	}
	return nil
}

func (r *withdrawalRepository) ListByProvider(ctx context.Context, providerID uint, limit, offset int) ([]models.Withdrawal, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Withdrawal{}).
		Where("provider_id = ?", providerID).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count withdrawals: %w", err)
	}

	var ws []models.Withdrawal
	err = r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ws).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return ws, total, nil
}

func (r *withdrawalRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Withdrawal, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Withdrawal{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count withdrawals: %w", err)
	}

	var ws []models.Withdrawal
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ws).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return ws, total, nil
}

func (r *withdrawalRepository) GetRequestedTotal(ctx context.Context, providerID uint, since, until time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Withdrawal{}).
		Where("provider_id = ? AND created_at >= ? AND created_at < ? AND status NOT IN ?",
			providerID, since, until,
			[]models.WithdrawalStatus{models.WithdrawalStatusRejected, models.WithdrawalStatusFailed}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get requested withdrawal total: %w", err)
	}
	return total, nil
}

func (r *withdrawalRepository) ExecuteInTransaction(fn func(WithdrawalRepository, WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&withdrawalRepository{db: tx}, &walletRepository{db: tx})
	})
}
