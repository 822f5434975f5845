package wallet

import (
	"context"
	"errors"
	"sync"
	"testing"

	"servio/internal/models"
	"servio/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFakeTransient = errors.New("connection reset")

// fakeWalletRepo is an in-memory WalletRepository with transactional
// semantics: writes inside ExecuteInTransaction are rolled back when the
// closure fails, mirroring the database contract the service relies on.
type fakeWalletRepo struct {
	mu      sync.Mutex
	wallets map[uint]*models.Wallet
	txns    []models.Transaction
	nextID  uint

	failTxnAppend     bool
	transientFailures int
	missReads         int
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{wallets: make(map[uint]*models.Wallet)}
}

func (r *fakeWalletRepo) create(w *models.Wallet) error {
	for _, existing := range r.wallets {
		if existing.UserID == w.UserID {
			return repositories.ErrDuplicateWallet
		}
	}
	r.nextID++
	w.ID = r.nextID
	w.Balance = 0
	w.CreditBalance = 0
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *fakeWalletRepo) getByID(id uint) (*models.Wallet, error) {
	w, ok := r.wallets[id]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWalletRepo) getByUserID(userID uint) (*models.Wallet, error) {
	if r.missReads > 0 {
		r.missReads--
		return nil, repositories.ErrWalletNotFound
	}
	for _, w := range r.wallets {
		if w.UserID == userID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, repositories.ErrWalletNotFound
}

func (r *fakeWalletRepo) update(w *models.Wallet) error {
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *fakeWalletRepo) createTransaction(tx *models.Transaction) error {
	if r.failTxnAppend {
		return errors.New("append failed")
	}
	r.txns = append(r.txns, *tx)
	return nil
}

// Locked outer methods.

func (r *fakeWalletRepo) Create(w *models.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.create(w)
}

func (r *fakeWalletRepo) GetByID(id uint) (*models.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getByID(id)
}

func (r *fakeWalletRepo) GetByIDForUpdate(id uint) (*models.Wallet, error) {
	return r.GetByID(id)
}

func (r *fakeWalletRepo) GetByUserID(userID uint) (*models.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getByUserID(userID)
}

func (r *fakeWalletRepo) Update(w *models.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.update(w)
}

func (r *fakeWalletRepo) CreateTransaction(tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createTransaction(tx)
}

func (r *fakeWalletRepo) GetTransactionByID(id uint) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.txns {
		if tx.ID == id {
			cp := tx
			return &cp, nil
		}
	}
	return nil, repositories.ErrTransactionNotFound
}

func (r *fakeWalletRepo) ListTransactionsByTypes(ctx context.Context, walletID uint, types []string, limit, offset int) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Transaction
	for _, tx := range r.txns {
		if tx.WalletID != walletID {
			continue
		}
		for _, t := range types {
			if tx.Type == t {
				out = append(out, tx)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeWalletRepo) CountTransactionsByTypes(ctx context.Context, walletID uint, types []string) (int64, error) {
	txs, _ := r.ListTransactionsByTypes(ctx, walletID, types, 0, 0)
	return int64(len(txs)), nil
}

// ExecuteInTransaction serializes writers (the row-lock stand-in) and rolls
// the in-memory state back when fn fails.
func (r *fakeWalletRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.transientFailures > 0 {
		r.transientFailures--
		return errFakeTransient
	}

	snapshot := make(map[uint]*models.Wallet, len(r.wallets))
	for id, w := range r.wallets {
		cp := *w
		snapshot[id] = &cp
	}
	txnLen := len(r.txns)

	if err := fn(&fakeTxRepo{r}); err != nil {
		r.wallets = snapshot
		r.txns = r.txns[:txnLen]
		return err
	}
	return nil
}

// fakeTxRepo is the transaction-scoped view: same state, no locking (the
// surrounding ExecuteInTransaction already holds the mutex).
type fakeTxRepo struct {
	r *fakeWalletRepo
}

func (t *fakeTxRepo) Create(w *models.Wallet) error { return t.r.create(w) }
func (t *fakeTxRepo) GetByID(id uint) (*models.Wallet, error) { return t.r.getByID(id) }
func (t *fakeTxRepo) GetByIDForUpdate(id uint) (*models.Wallet, error) {
	return t.r.getByID(id)
}
func (t *fakeTxRepo) GetByUserID(userID uint) (*models.Wallet, error) {
	return t.r.getByUserID(userID)
}
func (t *fakeTxRepo) Update(w *models.Wallet) error { return t.r.update(w) }
func (t *fakeTxRepo) CreateTransaction(tx *models.Transaction) error {
	return t.r.createTransaction(tx)
}
func (t *fakeTxRepo) GetTransactionByID(id uint) (*models.Transaction, error) {
	return nil, repositories.ErrTransactionNotFound
}
func (t *fakeTxRepo) ListTransactionsByTypes(ctx context.Context, walletID uint, types []string, limit, offset int) ([]models.Transaction, error) {
	return nil, nil
}
func (t *fakeTxRepo) CountTransactionsByTypes(ctx context.Context, walletID uint, types []string) (int64, error) {
	return 0, nil
}
func (t *fakeTxRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	return fn(t)
}

// fakeCache is a pass-through cache recording invalidations.
type fakeCache struct {
	mu            sync.Mutex
	wallets       map[uint]models.Wallet
	invalidations int

	failSet        bool
	failInvalidate bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{wallets: make(map[uint]models.Wallet)}
}

func (c *fakeCache) GetWallet(ctx context.Context, userID uint) (*models.Wallet, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.wallets[userID]
	if !ok {
		return nil, false, nil
	}
	cp := w
	return &cp, true, nil
}

func (c *fakeCache) SetWallet(ctx context.Context, wallet *models.Wallet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSet {
		return errFakeTransient
	}
	c.wallets[wallet.UserID] = *wallet
	return nil
}

func (c *fakeCache) InvalidateWallet(ctx context.Context, userID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failInvalidate {
		return errFakeTransient
	}
	delete(c.wallets, userID)
	c.invalidations++
	return nil
}

func newTestService(repo *fakeWalletRepo, cache *fakeCache) Service {
	return NewService(repo, cache, Config{}, nil)
}

func seedWallet(t *testing.T, repo *fakeWalletRepo, userID uint, balance, credit float64) *models.Wallet {
	t.Helper()
	w := &models.Wallet{UserID: userID}
	require.NoError(t, repo.Create(w))
	w.Balance = balance
	w.CreditBalance = credit
	require.NoError(t, repo.Update(w))
	return w
}

func TestGetOrCreate(t *testing.T) {
	t.Run("creates a zero wallet on first access", func(t *testing.T) {
		repo := newFakeWalletRepo()
		svc := newTestService(repo, newFakeCache())

		w, err := svc.GetOrCreate(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, uint(7), w.UserID)
		assert.Zero(t, w.Balance)
		assert.Zero(t, w.CreditBalance)
	})

	t.Run("returns the existing wallet without resetting it", func(t *testing.T) {
		repo := newFakeWalletRepo()
		seeded := seedWallet(t, repo, 7, 120, 5)
		svc := newTestService(repo, newFakeCache())

		w, err := svc.GetOrCreate(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, w.ID)
		assert.Equal(t, 120.0, w.Balance)
	})

	t.Run("loser of a creation conflict gets the winner's wallet", func(t *testing.T) {
		repo := newFakeWalletRepo()
		winner := seedWallet(t, repo, 9, 0, 0)
		// The first read misses, the insert then collides with the
		// winner's row and the conflict-retry re-reads it.
		repo.missReads = 1
		svc := newTestService(repo, newFakeCache())

		loser, err := svc.GetOrCreate(context.Background(), 9)
		require.NoError(t, err)
		assert.Equal(t, winner.ID, loser.ID)
		assert.Len(t, repo.wallets, 1)
	})

	t.Run("cache write failure does not fail the lookup", func(t *testing.T) {
		repo := newFakeWalletRepo()
		seedWallet(t, repo, 7, 120, 5)
		cache := newFakeCache()
		cache.failSet = true
		svc := newTestService(repo, cache)

		w, err := svc.GetOrCreate(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, 120.0, w.Balance)
	})

	t.Run("concurrent first access yields exactly one wallet", func(t *testing.T) {
		repo := newFakeWalletRepo()
		svc := newTestService(repo, newFakeCache())

		const callers = 20
		ids := make(chan uint, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w, err := svc.GetOrCreate(context.Background(), 42)
				if assert.NoError(t, err) {
					ids <- w.ID
				}
			}()
		}
		wg.Wait()
		close(ids)

		first := uint(0)
		for id := range ids {
			if first == 0 {
				first = id
			}
			assert.Equal(t, first, id)
		}
		assert.Len(t, repo.wallets, 1)
	})
}

func TestAdjustBalance(t *testing.T) {
	t.Run("rejects a debit past zero with no side effect", func(t *testing.T) {
		repo := newFakeWalletRepo()
		w := seedWallet(t, repo, 1, 100, 0)
		svc := newTestService(repo, newFakeCache())

		_, err := svc.AdjustBalance(context.Background(), w.ID, -150, models.TransactionTypeServicePayment, "job payment")
		assert.ErrorIs(t, err, ErrInsufficientBalance)

		reloaded, err := repo.GetByID(w.ID)
		require.NoError(t, err)
		assert.Equal(t, 100.0, reloaded.Balance)
		assert.Empty(t, repo.txns)
	})

	t.Run("commits balance and ledger entry together", func(t *testing.T) {
		repo := newFakeWalletRepo()
		w := seedWallet(t, repo, 1, 100, 0)
		cache := newFakeCache()
		svc := newTestService(repo, cache)

		updated, err := svc.AdjustBalance(context.Background(), w.ID, -50, models.TransactionTypeServicePayment, "job payment")
		require.NoError(t, err)
		assert.Equal(t, 50.0, updated.Balance)

		require.Len(t, repo.txns, 1)
		entry := repo.txns[0]
		assert.Equal(t, w.ID, entry.WalletID)
		assert.Equal(t, models.TransactionTypeServicePayment, entry.Type)
		assert.Equal(t, -50.0, entry.Amount)
		assert.Equal(t, models.TransactionStatusCompleted, entry.Status)
		assert.NotEmpty(t, entry.Reference)
		assert.Equal(t, 1, cache.invalidations)
	})

	t.Run("ledger append failure rolls back the balance change", func(t *testing.T) {
		repo := newFakeWalletRepo()
		w := seedWallet(t, repo, 1, 100, 0)
		repo.failTxnAppend = true
		svc := NewService(repo, newFakeCache(), Config{MaxRetries: 1}, nil)

		_, err := svc.AdjustBalance(context.Background(), w.ID, -50, models.TransactionTypeServicePayment, "job payment")
		assert.ErrorIs(t, err, ErrStorageUnavailable)

		reloaded, err := repo.GetByID(w.ID)
		require.NoError(t, err)
		assert.Equal(t, 100.0, reloaded.Balance)
		assert.Empty(t, repo.txns)
	})

	t.Run("rejects unknown transaction types", func(t *testing.T) {
		repo := newFakeWalletRepo()
		w := seedWallet(t, repo, 1, 100, 0)
		svc := newTestService(repo, newFakeCache())

		_, err := svc.AdjustBalance(context.Background(), w.ID, 10, "TIP", "")
		assert.ErrorIs(t, err, ErrInvalidTransactionType)
	})

	t.Run("unknown wallet", func(t *testing.T) {
		svc := newTestService(newFakeWalletRepo(), newFakeCache())

		_, err := svc.AdjustBalance(context.Background(), 99, 10, models.TransactionTypeAddMoney, "")
		assert.ErrorIs(t, err, ErrWalletNotFound)
	})

	t.Run("retries transient failures before succeeding", func(t *testing.T) {
		repo := newFakeWalletRepo()
		w := seedWallet(t, repo, 1, 100, 0)
		repo.transientFailures = 2
		svc := newTestService(repo, newFakeCache())

		updated, err := svc.AdjustBalance(context.Background(), w.ID, 25, models.TransactionTypeAddMoney, "top up")
		require.NoError(t, err)
		assert.Equal(t, 125.0, updated.Balance)
	})

	t.Run("surfaces exhausted retries as unavailability", func(t *testing.T) {
		repo := newFakeWalletRepo()
		w := seedWallet(t, repo, 1, 100, 0)
		repo.transientFailures = 10
		svc := newTestService(repo, newFakeCache())

		_, err := svc.AdjustBalance(context.Background(), w.ID, 25, models.TransactionTypeAddMoney, "top up")
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})

	t.Run("cache invalidation failure does not fail the mutation", func(t *testing.T) {
		repo := newFakeWalletRepo()
		w := seedWallet(t, repo, 1, 100, 0)
		cache := newFakeCache()
		cache.failInvalidate = true
		svc := newTestService(repo, cache)

		updated, err := svc.AdjustBalance(context.Background(), w.ID, 25, models.TransactionTypeAddMoney, "top up")
		require.NoError(t, err)
		assert.Equal(t, 125.0, updated.Balance)
		require.Len(t, repo.txns, 1)
	})

	t.Run("concurrent debits never overdraw", func(t *testing.T) {
		repo := newFakeWalletRepo()
		w := seedWallet(t, repo, 1, 100, 0)
		svc := newTestService(repo, newFakeCache())

		const debits = 10
		var wg sync.WaitGroup
		for i := 0; i < debits; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				// 10 x 30 exceeds the balance; some must fail.
				svc.AdjustBalance(context.Background(), w.ID, -30, models.TransactionTypeServiceFee, "fee")
			}()
		}
		wg.Wait()

		reloaded, err := repo.GetByID(w.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, reloaded.Balance, 0.0)
		assert.Equal(t, 100.0-30.0*float64(len(repo.txns)), reloaded.Balance)
	})
}

func TestAdjustCreditBalance(t *testing.T) {
	t.Run("grants and spends credit independently of money", func(t *testing.T) {
		repo := newFakeWalletRepo()
		w := seedWallet(t, repo, 1, 40, 0)
		svc := newTestService(repo, newFakeCache())

		updated, err := svc.AdjustCreditBalance(context.Background(), w.ID, 10, models.TransactionTypePurchaseCredit, "Credit 10")
		require.NoError(t, err)
		assert.Equal(t, 10.0, updated.CreditBalance)
		assert.Equal(t, 40.0, updated.Balance)

		updated, err = svc.AdjustCreditBalance(context.Background(), w.ID, -4, models.TransactionTypeDiscountCredit, "job discount")
		require.NoError(t, err)
		assert.Equal(t, 6.0, updated.CreditBalance)
	})

	t.Run("rejects spending past zero credit", func(t *testing.T) {
		repo := newFakeWalletRepo()
		w := seedWallet(t, repo, 1, 100, 3)
		svc := newTestService(repo, newFakeCache())

		_, err := svc.AdjustCreditBalance(context.Background(), w.ID, -5, models.TransactionTypeDiscountCredit, "")
		assert.ErrorIs(t, err, ErrInsufficientCreditBalance)

		reloaded, err := repo.GetByID(w.ID)
		require.NoError(t, err)
		assert.Equal(t, 3.0, reloaded.CreditBalance)
		assert.Empty(t, repo.txns)
	})
}

func TestLookups(t *testing.T) {
	t.Run("GetWallet does not auto-create", func(t *testing.T) {
		svc := newTestService(newFakeWalletRepo(), newFakeCache())

		_, err := svc.GetWallet(context.Background(), 1)
		assert.ErrorIs(t, err, ErrWalletNotFound)
	})

	t.Run("GetByUserID does not auto-create", func(t *testing.T) {
		repo := newFakeWalletRepo()
		svc := newTestService(repo, newFakeCache())

		_, err := svc.GetByUserID(context.Background(), 1)
		assert.ErrorIs(t, err, ErrWalletNotFound)
		assert.Empty(t, repo.wallets)
	})
}
