// Package ledger exposes read access to the append-only transaction
// history. Entries are written by the wallet service as the audit
// side-effect of balance mutations; this package only queries them,
// partitioned by reporting group.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"servio/internal/models"
	"servio/internal/pagination"
	"servio/internal/repositories"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrUnknownTypeGroup    = errors.New("unknown transaction type group")
)

// Service defines ledger history queries.
type Service interface {
	// History returns one page of the user's transactions scoped to a
	// single reporting group, newest first. Cross-group queries do not
	// exist: the credit statement and the general statement are separate
	// documents.
	History(ctx context.Context, userID uint, group models.TypeGroup, p pagination.Params) ([]models.Transaction, pagination.Meta, error)
	GetTransaction(ctx context.Context, id uint) (*models.Transaction, error)
}

type service struct {
	repo repositories.WalletRepository
}

func NewService(repo repositories.WalletRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

func (s *service) History(ctx context.Context, userID uint, group models.TypeGroup, p pagination.Params) ([]models.Transaction, pagination.Meta, error) {
	types := group.Types()
	if types == nil {
		return nil, pagination.Meta{}, ErrUnknownTypeGroup
	}

	w, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, pagination.Meta{}, ErrWalletNotFound
		}
		return nil, pagination.Meta{}, fmt.Errorf("failed to resolve wallet: %w", err)
	}

	p = p.Normalize()
	total, err := s.repo.CountTransactionsByTypes(ctx, w.ID, types)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	txs, err := s.repo.ListTransactionsByTypes(ctx, w.ID, types, p.Limit, p.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return txs, pagination.NewMeta(total, p), nil
}

func (s *service) GetTransaction(ctx context.Context, id uint) (*models.Transaction, error) {
	tx, err := s.repo.GetTransactionByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}
