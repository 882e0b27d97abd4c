package withdrawal

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pawpay/internal/models"
	"pawpay/internal/repositories"
	"pawpay/internal/services/banktransfer"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory fakes for the repository interfaces. They keep real state
// so workflow tests can assert balances and ledger entries after a full
// transition, which expectation-style mocks cannot express.

type fakeWalletRepo struct {
	// mu stands in for the wallet row lock: in production a unit of work
	// takes the lock up front (GetByOwnerIDForUpdate) and holds it to
	// commit, so transactions against the same wallet run one at a time.
	mu       sync.Mutex
	wallets  map[uint]*models.Wallet
	txs      map[uint]*models.WalletTransaction
	nextTxID uint
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{
		wallets: make(map[uint]*models.Wallet),
		txs:     make(map[uint]*models.WalletTransaction),
	}
}

func (f *fakeWalletRepo) addWallet(id, ownerID uint, balance string) *models.Wallet {
	w := &models.Wallet{
		ID:             id,
		OwnerID:        ownerID,
		Balance:        decimal.RequireFromString(balance),
		PendingBalance: decimal.Zero,
	}
	f.wallets[id] = w
	return w
}

func (f *fakeWalletRepo) Create(w *models.Wallet) error {
	for _, existing := range f.wallets {
		if existing.OwnerID == w.OwnerID {
			return repositories.ErrDuplicateWallet
		}
	}
	w.ID = uint(len(f.wallets) + 1)
	f.wallets[w.ID] = w
	return nil
}

func (f *fakeWalletRepo) GetByID(id uint) (*models.Wallet, error) {
	w, ok := f.wallets[id]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	return w, nil
}

func (f *fakeWalletRepo) GetByOwnerID(ownerID uint) (*models.Wallet, error) {
	for _, w := range f.wallets {
		if w.OwnerID == ownerID {
			return w, nil
		}
	}
	return nil, repositories.ErrWalletNotFound
}

func (f *fakeWalletRepo) GetByIDForUpdate(id uint) (*models.Wallet, error) {
	return f.GetByID(id)
}

func (f *fakeWalletRepo) GetByOwnerIDForUpdate(ownerID uint) (*models.Wallet, error) {
	return f.GetByOwnerID(ownerID)
}

func (f *fakeWalletRepo) ApplyDelta(walletID uint, balanceDelta, pendingDelta decimal.Decimal) error {
	w, ok := f.wallets[walletID]
	if !ok {
		return repositories.ErrWalletNotFound
	}
	newBalance := w.Balance.Add(balanceDelta)
	newPending := w.PendingBalance.Add(pendingDelta)
	if newBalance.IsNegative() || newPending.IsNegative() {
		return repositories.ErrNegativeBalance
	}
	w.Balance = newBalance
	w.PendingBalance = newPending
	return nil
}

func (f *fakeWalletRepo) CreateTransaction(tx *models.WalletTransaction) error {
	f.nextTxID++
	tx.ID = f.nextTxID
	tx.CreatedAt = time.Now()
	f.txs[tx.ID] = tx
	return nil
}

func (f *fakeWalletRepo) GetTransactionByID(id uint) (*models.WalletTransaction, error) {
	tx, ok := f.txs[id]
	if !ok {
		return nil, repositories.ErrTransactionNotFound
	}
	return tx, nil
}

func (f *fakeWalletRepo) SettleTransaction(id uint, status models.TransactionStatus) error {
	tx, ok := f.txs[id]
	if !ok {
		return repositories.ErrTransactionNotFound
	}
	if tx.Status != models.TransactionStatusPending {
		return repositories.ErrTransactionSettled
	}
	tx.Status = status
	return nil
}

func (f *fakeWalletRepo) GetTransactionsByWallet(ctx context.Context, walletID uint, limit, offset int) ([]models.WalletTransaction, int64, error) {
	var out []models.WalletTransaction
	for _, tx := range f.txs {
		if tx.WalletID == walletID {
			out = append(out, *tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeWalletRepo) GetTransactionSummary(ctx context.Context, walletID uint) (*repositories.TransactionSummary, error) {
	summary := &repositories.TransactionSummary{
		TotalCredits: decimal.Zero,
		TotalDebits:  decimal.Zero,
	}
	for _, tx := range f.txs {
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

func (f *fakeWalletRepo) GetLedgerTotals(ctx context.Context, walletID uint) (decimal.Decimal, decimal.Decimal, error) {
	all, pending := decimal.Zero, decimal.Zero
	for _, tx := range f.txs {
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

func (f *fakeWalletRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f)
}

// entriesOfType returns the wallet's ledger entries of one type, oldest
// first.
func (f *fakeWalletRepo) entriesOfType(walletID uint, typ models.TransactionType) []*models.WalletTransaction {
	var out []*models.WalletTransaction
	for _, tx := range f.txs {
		if tx.WalletID == walletID && tx.Type == typ {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeWithdrawalRepo struct {
	wallet      *fakeWalletRepo
	withdrawals map[uint]*models.Withdrawal
	nextID      uint
}

func newFakeWithdrawalRepo(wallet *fakeWalletRepo) *fakeWithdrawalRepo {
	return &fakeWithdrawalRepo{
		wallet:      wallet,
		withdrawals: make(map[uint]*models.Withdrawal),
	}
}

func (f *fakeWithdrawalRepo) Create(w *models.Withdrawal) error {
	f.nextID++
	w.ID = f.nextID
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	f.withdrawals[w.ID] = w
	return nil
}

func (f *fakeWithdrawalRepo) GetByID(id uint) (*models.Withdrawal, error) {
	w, ok := f.withdrawals[id]
	if !ok {
		return nil, repositories.ErrWithdrawalNotFound
	}
	return w, nil
}

func (f *fakeWithdrawalRepo) GetByIDForUpdate(id uint) (*models.Withdrawal, error) {
	return f.GetByID(id)
}

func (f *fakeWithdrawalRepo) Update(w *models.Withdrawal) error {
	if _, ok := f.withdrawals[w.ID]; !ok {
		return repositories.ErrWithdrawalNotFound
	}
	f.withdrawals[w.ID] = w
	return nil
}

func (f *fakeWithdrawalRepo) ListByProvider(ctx context.Context, providerID uint, limit, offset int) ([]models.Withdrawal, int64, error) {
	var out []models.Withdrawal
	for _, w := range f.withdrawals {
		if w.ProviderID == providerID {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeWithdrawalRepo) ListAll(ctx context.Context, limit, offset int) ([]models.Withdrawal, int64, error) {
	var out []models.Withdrawal
	for _, w := range f.withdrawals {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeWithdrawalRepo) GetRequestedTotal(ctx context.Context, providerID uint, since, until time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, w := range f.withdrawals {
		if w.ProviderID != providerID {
			continue
		}
		if w.Status == models.WithdrawalStatusRejected || w.Status == models.WithdrawalStatusFailed {
			continue
		}
		if w.CreatedAt.Before(since) || !w.CreatedAt.Before(until) {
			continue
		}
		total = total.Add(w.Amount)
	}
	return total, nil
}

func (f *fakeWithdrawalRepo) ExecuteInTransaction(fn func(repositories.WithdrawalRepository, repositories.WalletRepository) error) error {
	f.wallet.mu.Lock()
	defer f.wallet.mu.Unlock()
	return fn(f, f.wallet)
}

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

type fakeCache struct {
	mu            sync.Mutex
	invalidations int
}

var errCacheMiss = errors.New("cache miss")

func (f *fakeCache) GetWallet(ctx context.Context, ownerID uint) (*models.Wallet, error) {
	return nil, errCacheMiss
}

func (f *fakeCache) CacheWallet(ctx context.Context, w *models.Wallet) error { return nil }

func (f *fakeCache) InvalidateWallet(ctx context.Context, ownerID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidations++
	return nil
}

type fakeGateway struct {
	err   error
	calls []banktransfer.TransferRequest
}

func (f *fakeGateway) Transfer(ctx context.Context, req banktransfer.TransferRequest) (*banktransfer.TransferResult, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &banktransfer.TransferResult{GatewayRef: "gw_" + req.Reference}, nil
}

type fakeNotifier struct {
	approved  []uint
	rejected  []uint
	completed []uint
	failed    []uint
}

func (f *fakeNotifier) WithdrawalApproved(ctx context.Context, w *models.Withdrawal) {
	f.approved = append(f.approved, w.ID)
}

func (f *fakeNotifier) WithdrawalRejected(ctx context.Context, w *models.Withdrawal) {
	f.rejected = append(f.rejected, w.ID)
}

func (f *fakeNotifier) WithdrawalCompleted(ctx context.Context, w *models.Withdrawal) {
	f.completed = append(f.completed, w.ID)
}

func (f *fakeNotifier) WithdrawalFailed(ctx context.Context, w *models.Withdrawal) {
	f.failed = append(f.failed, w.ID)
}

// harness wires a withdrawal service over the fakes with one provider
// wallet seeded.
type harness struct {
	svc        Service
	walletRepo *fakeWalletRepo
	repo       *fakeWithdrawalRepo
	gateway    *fakeGateway
	notifier   *fakeNotifier
	cache      *fakeCache
	wallet     *models.Wallet
}

const (
	testProviderID = uint(7)
	testWalletID   = uint(1)
)

func newHarness(balance string) *harness {
	walletRepo := newFakeWalletRepo()
	w := walletRepo.addWallet(testWalletID, testProviderID, balance)

	users := newFakeUserRepo(
		&models.User{Model: gorm.Model{ID: testProviderID}, Email: "provider@example.com", Role: models.RoleProvider},
		&models.User{Model: gorm.Model{ID: 8}, Email: "customer@example.com", Role: models.RoleUser},
	)

	h := &harness{
		walletRepo: walletRepo,
		repo:       newFakeWithdrawalRepo(walletRepo),
		gateway:    &fakeGateway{},
		notifier:   &fakeNotifier{},
		cache:      &fakeCache{},
		wallet:     w,
	}
	h.svc = NewService(h.repo, users, h.cache, h.gateway, h.notifier, Config{})
	return h
}

func gormModelWithID(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

func validInput(amount string) CreateInput {
	return CreateInput{
		Amount:            decimal.RequireFromString(amount),
		BankCode:          "VCB",
		BankName:          "Vietcombank",
		AccountNumber:     "0123456789",
		AccountHolderName: "Nguyen Van A",
	}
}
