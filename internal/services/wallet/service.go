package wallet

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"servio/internal/models"
	"servio/internal/repositories"

	"github.com/google/uuid"
)

type service struct {
	repo    repositories.WalletRepository
	cache   CacheOperator
	config  Config
	metrics MetricsCollector
}

// NewService creates a new wallet service
func NewService(repo repositories.WalletRepository, cache CacheOperator, config Config, metrics MetricsCollector) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = DefaultMaxRetries
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		repo:    repo,
		cache:   cache,
		config:  config,
		metrics: metrics,
	}
}

func (s *service) GetOrCreate(ctx context.Context, userID uint) (*models.Wallet, error) {
	// Try cache first
	if w, ok, err := s.cache.GetWallet(ctx, userID); err == nil && ok {
		return w, nil
	}

	w, err := s.repo.GetByUserID(userID)
	if err == nil {
		s.cacheWallet(ctx, w)
		return w, nil
	}
	if !errors.Is(err, repositories.ErrWalletNotFound) {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	w = &models.Wallet{UserID: userID}
	if err := s.repo.Create(w); err != nil {
		if !errors.Is(err, repositories.ErrDuplicateWallet) {
			return nil, fmt.Errorf("failed to create wallet: %w", err)
		}
		// Lost the first-access race; the winner's wallet is authoritative.
		w, err = s.repo.GetByUserID(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get wallet after create conflict: %w", err)
		}
	}

	s.cacheWallet(ctx, w)
	return w, nil
}

// cacheWallet and invalidateWallet degrade to a log line on cache errors;
// the database already holds the truth and a stale entry must be visible to
// operators, not fatal to the caller.
func (s *service) cacheWallet(ctx context.Context, w *models.Wallet) {
	if err := s.cache.SetWallet(ctx, w); err != nil {
		log.Printf("Warning: failed to cache wallet for user %d: %v", w.UserID, err)
	}
}

func (s *service) invalidateWallet(ctx context.Context, userID uint) {
	if err := s.cache.InvalidateWallet(ctx, userID); err != nil {
		log.Printf("Warning: failed to invalidate cached wallet for user %d: %v", userID, err)
	}
}

func (s *service) AdjustBalance(ctx context.Context, walletID uint, delta float64, txType, description string) (*models.Wallet, error) {
	return s.adjust(ctx, "adjust_balance", walletID, delta, txType, description, false)
}

func (s *service) AdjustCreditBalance(ctx context.Context, walletID uint, delta float64, txType, description string) (*models.Wallet, error) {
	return s.adjust(ctx, "adjust_credit_balance", walletID, delta, txType, description, true)
}

// adjust applies delta to one of the two balances and appends the ledger
// entry inside a single database transaction. The wallet row is locked for
// the duration, so concurrent mutations of the same wallet serialize.
func (s *service) adjust(ctx context.Context, operation string, walletID uint, delta float64, txType, description string, credit bool) (*models.Wallet, error) {
	if !models.IsValidTransactionType(txType) {
		s.metrics.RecordError(operation, "invalid_type")
		return nil, ErrInvalidTransactionType
	}

	var updated *models.Wallet
	mutate := func(tx repositories.WalletRepository) error {
		w, err := tx.GetByIDForUpdate(walletID)
		if err != nil {
			if errors.Is(err, repositories.ErrWalletNotFound) {
				return ErrWalletNotFound
			}
			return err
		}

		if credit {
			if w.CreditBalance+delta < 0 {
				return ErrInsufficientCreditBalance
			}
			w.CreditBalance += delta
		} else {
			if w.Balance+delta < 0 {
				return ErrInsufficientBalance
			}
			w.Balance += delta
		}

		if err := tx.Update(w); err != nil {
			return err
		}

		entry := &models.Transaction{
			WalletID:    w.ID,
			Type:        txType,
			Amount:      delta,
			Description: description,
			Status:      models.TransactionStatusCompleted,
			Reference:   uuid.NewString(),
		}
		if err := tx.CreateTransaction(entry); err != nil {
			return err
		}

		updated = w
		return nil
	}

	for attempt := 0; ; attempt++ {
		err := s.repo.ExecuteInTransaction(mutate)
		if err == nil {
			break
		}

		if kind, fatal := classify(err); fatal {
			s.metrics.RecordError(operation, kind)
			return nil, err
		}

		if attempt+1 >= s.config.MaxRetries {
			s.metrics.RecordError(operation, "storage_unavailable")
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		time.Sleep(retryBackoff)
	}

	s.invalidateWallet(ctx, updated.UserID)
	s.metrics.RecordTransaction(txType, delta)
	return updated, nil
}

// classify splits mutation failures into non-retriable domain outcomes and
// retriable storage failures.
func classify(err error) (kind string, fatal bool) {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return "insufficient_balance", true
	case errors.Is(err, ErrInsufficientCreditBalance):
		return "insufficient_credit_balance", true
	case errors.Is(err, ErrWalletNotFound):
		return "wallet_not_found", true
	default:
		return "storage", false
	}
}

func (s *service) GetWallet(ctx context.Context, walletID uint) (*models.Wallet, error) {
	w, err := s.repo.GetByID(walletID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return w, nil
}

func (s *service) GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	if w, ok, err := s.cache.GetWallet(ctx, userID); err == nil && ok {
		return w, nil
	}

	w, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	s.cacheWallet(ctx, w)
	return w, nil
}
