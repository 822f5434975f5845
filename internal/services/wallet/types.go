package wallet

import (
	"context"

	"servio/internal/models"
)

// Service defines the wallet store interface consumed by the orchestration
// layer.
type Service interface {
	// GetOrCreate returns the user's wallet, creating a zero-balance one on
	// first access. Idempotent under concurrent first access: all callers
	// observe the same wallet.
	GetOrCreate(ctx context.Context, userID uint) (*models.Wallet, error)

	// AdjustBalance applies a signed delta to the money balance and appends
	// the matching ledger entry in the same atomic unit.
	AdjustBalance(ctx context.Context, walletID uint, delta float64, txType, description string) (*models.Wallet, error)

	// AdjustCreditBalance is AdjustBalance for the credit balance.
	AdjustCreditBalance(ctx context.Context, walletID uint, delta float64, txType, description string) (*models.Wallet, error)

	// Lookups; these never auto-create.
	GetWallet(ctx context.Context, walletID uint) (*models.Wallet, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error)
}

// Config holds configuration for wallet operations.
type Config struct {
	// MaxRetries bounds the retry loop around transient storage failures.
	MaxRetries int
}

// MetricsCollector receives operational metrics from the wallet service.
type MetricsCollector interface {
	RecordTransaction(txType string, amount float64)
	RecordError(operation, errType string)
}

// CacheOperator defines the caching operations the service needs.
type CacheOperator interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, bool, error)
	SetWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, userID uint) error
}
