package ledger

import (
	"context"
	"sort"
	"testing"
	"time"

	domain "pawpay/internal/errors"
	"pawpay/internal/models"
	"pawpay/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// memRepo is an in-memory WalletRepository seeded directly by tests.
type memRepo struct {
	wallets map[uint]*models.Wallet
	txs     map[uint]*models.WalletTransaction
	nextTx  uint
}

func newMemRepo() *memRepo {
	return &memRepo{
		wallets: make(map[uint]*models.Wallet),
		txs:     make(map[uint]*models.WalletTransaction),
	}
}

func (m *memRepo) addWallet(id, ownerID uint, balance, pending string) *models.Wallet {
	w := &models.Wallet{
		ID:             id,
		OwnerID:        ownerID,
		Balance:        dec(balance),
		PendingBalance: dec(pending),
	}
	m.wallets[id] = w
	return w
}

func (m *memRepo) addEntry(walletID uint, amount string, status models.TransactionStatus) *models.WalletTransaction {
	m.nextTx++
	tx := &models.WalletTransaction{
		ID:        m.nextTx,
		WalletID:  walletID,
		Amount:    dec(amount),
		Type:      models.TransactionTypeDeposit,
		Status:    status,
		CreatedAt: time.Now(),
	}
	m.txs[tx.ID] = tx
	return tx
}

func (m *memRepo) Create(w *models.Wallet) error { return nil }

func (m *memRepo) GetByID(id uint) (*models.Wallet, error) {
	w, ok := m.wallets[id]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	return w, nil
}

func (m *memRepo) GetByOwnerID(ownerID uint) (*models.Wallet, error) {
	for _, w := range m.wallets {
		if w.OwnerID == ownerID {
			return w, nil
		}
	}
	return nil, repositories.ErrWalletNotFound
}

func (m *memRepo) GetByIDForUpdate(id uint) (*models.Wallet, error) { return m.GetByID(id) }

func (m *memRepo) GetByOwnerIDForUpdate(ownerID uint) (*models.Wallet, error) {
	return m.GetByOwnerID(ownerID)
}

func (m *memRepo) ApplyDelta(walletID uint, balanceDelta, pendingDelta decimal.Decimal) error {
	return nil
}

func (m *memRepo) CreateTransaction(tx *models.WalletTransaction) error {
	m.nextTx++
	tx.ID = m.nextTx
	m.txs[tx.ID] = tx
	return nil
}

func (m *memRepo) GetTransactionByID(id uint) (*models.WalletTransaction, error) {
	tx, ok := m.txs[id]
	if !ok {
		return nil, repositories.ErrTransactionNotFound
	}
	return tx, nil
}

func (m *memRepo) SettleTransaction(id uint, status models.TransactionStatus) error {
	tx, ok := m.txs[id]
	if !ok {
		return repositories.ErrTransactionNotFound
	}
	if tx.Status != models.TransactionStatusPending {
		return repositories.ErrTransactionSettled
	}
	tx.Status = status
	return nil
}

func (m *memRepo) GetTransactionsByWallet(ctx context.Context, walletID uint, limit, offset int) ([]models.WalletTransaction, int64, error) {
	var all []models.WalletTransaction
	for _, tx := range m.txs {
		if tx.WalletID == walletID {
			all = append(all, *tx)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *memRepo) GetTransactionSummary(ctx context.Context, walletID uint) (*repositories.TransactionSummary, error) {
	summary := &repositories.TransactionSummary{
		TotalCredits: decimal.Zero,
		TotalDebits:  decimal.Zero,
	}
	for _, tx := range m.txs {
		if tx.WalletID != walletID || tx.Status != models.TransactionStatusCompleted {
			continue
		}
		summary.Count++
		if tx.Amount.IsNegative() {
			summary.TotalDebits = summary.TotalDebits.Add(tx.Amount.Neg())
		} else {
			summary.TotalCredits = summary.TotalCredits.Add(tx.Amount)
		}
	}
	return summary, nil
}

func (m *memRepo) GetLedgerTotals(ctx context.Context, walletID uint) (decimal.Decimal, decimal.Decimal, error) {
	all, pending := decimal.Zero, decimal.Zero
	for _, tx := range m.txs {
		if tx.WalletID != walletID {
			continue
		}
		all = all.Add(tx.Amount)
		if tx.Status == models.TransactionStatusPending {
			pending = pending.Add(tx.Amount)
		}
	}
	return all, pending, nil
}

func (m *memRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	return fn(m)
}

func TestLedgerService_ListByWallet(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.addWallet(1, 7, "0", "0")
	repo.addEntry(1, "100", models.TransactionStatusCompleted)
	repo.addEntry(1, "-40", models.TransactionStatusCompleted)
	repo.addEntry(2, "999", models.TransactionStatusCompleted) // other wallet

	svc := NewService(repo)

	entries, total, err := svc.ListByWallet(ctx, 7, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, entries, 2)

	_, _, err = svc.ListByWallet(ctx, 99, 10, 0)
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestLedgerService_Summarize(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.addWallet(1, 7, "0", "0")
	repo.addEntry(1, "100000", models.TransactionStatusCompleted)
	repo.addEntry(1, "-30000", models.TransactionStatusCompleted)
	// Pending and failed entries stay out of the summary.
	repo.addEntry(1, "-50000", models.TransactionStatusPending)
	repo.addEntry(1, "42", models.TransactionStatusFailed)

	svc := NewService(repo)

	summary, err := svc.Summarize(ctx, 7)
	require.NoError(t, err)
	assert.True(t, summary.TotalCredits.Equal(dec("100000")))
	assert.True(t, summary.TotalDebits.Equal(dec("30000")))
	assert.True(t, summary.Net.Equal(dec("70000")))
	assert.EqualValues(t, 2, summary.Count)
}

func TestLedgerService_Settle(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.addWallet(1, 7, "0", "0")
	pending := repo.addEntry(1, "-500", models.TransactionStatusPending)
	settled := repo.addEntry(1, "100", models.TransactionStatusCompleted)

	svc := NewService(repo)

	t.Run("pending entry settles once", func(t *testing.T) {
		err := svc.Settle(ctx, pending.ID, models.TransactionStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusCompleted, pending.Status)

		// Terminal entries never change again.
		err = svc.Settle(ctx, pending.ID, models.TransactionStatusFailed)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
		assert.Equal(t, models.TransactionStatusCompleted, pending.Status)
	})

	t.Run("completed entry cannot settle", func(t *testing.T) {
		err := svc.Settle(ctx, settled.ID, models.TransactionStatusFailed)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	})

	t.Run("PENDING is not a terminal target", func(t *testing.T) {
		err := svc.Settle(ctx, settled.ID, models.TransactionStatusPending)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	})

	t.Run("unknown entry", func(t *testing.T) {
		err := svc.Settle(ctx, 999, models.TransactionStatusCompleted)
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})
}

func TestLedgerService_Reconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("consistent wallet", func(t *testing.T) {
		repo := newMemRepo()
		// 100,000 earned, 40,000 held for a withdrawal in flight:
		// balance 60,000, pending 40,000.
		repo.addWallet(1, 7, "60000", "40000")
		repo.addEntry(1, "100000", models.TransactionStatusCompleted)
		repo.addEntry(1, "-40000", models.TransactionStatusPending)

		report, err := NewService(repo).Reconcile(ctx, 7)
		require.NoError(t, err)
		assert.True(t, report.Consistent)
		assert.True(t, report.LedgerBalance.Equal(dec("60000")))
		assert.True(t, report.LedgerPending.Equal(dec("40000")))
	})

	t.Run("drifted wallet is flagged", func(t *testing.T) {
		repo := newMemRepo()
		repo.addWallet(1, 7, "61000", "40000")
		repo.addEntry(1, "100000", models.TransactionStatusCompleted)
		repo.addEntry(1, "-40000", models.TransactionStatusPending)

		report, err := NewService(repo).Reconcile(ctx, 7)
		require.NoError(t, err)
		assert.False(t, report.Consistent)
	})

	t.Run("unknown wallet", func(t *testing.T) {
		_, err := NewService(newMemRepo()).Reconcile(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrWalletNotFound)
	})
}
