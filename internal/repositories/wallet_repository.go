package repositories

import (
	"context"
	"errors"

	"servio/internal/models"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrDuplicateWallet     = errors.New("wallet already exists")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// WalletRepository defines the persistence port for wallets and their
// ledger entries. Transaction rows are owned by the same port because a
// balance change and its ledger append always commit in one atomic unit:
// callers mutate inside ExecuteInTransaction, where the repository they
// receive is scoped to the open database transaction.
type WalletRepository interface {
	// Wallet operations
	Create(wallet *models.Wallet) error
	GetByID(id uint) (*models.Wallet, error)
	// GetByIDForUpdate locks the wallet row for the duration of the
	// surrounding transaction, serializing concurrent mutations.
	GetByIDForUpdate(id uint) (*models.Wallet, error)
	GetByUserID(userID uint) (*models.Wallet, error)
	Update(wallet *models.Wallet) error

	// Ledger operations
	CreateTransaction(tx *models.Transaction) error
	GetTransactionByID(id uint) (*models.Transaction, error)
	ListTransactionsByTypes(ctx context.Context, walletID uint, types []string, limit, offset int) ([]models.Transaction, error)
	CountTransactionsByTypes(ctx context.Context, walletID uint, types []string) (int64, error)

	// ExecuteInTransaction runs fn against a transaction-scoped repository;
	// all writes inside fn commit or roll back together.
	ExecuteInTransaction(fn func(WalletRepository) error) error
}
