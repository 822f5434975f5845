// Package catalog implements the administrative catalogs of purchasable
// credit packages and subscription plans. Entries start in DRAFT and become
// visible through an explicit publish transition.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"servio/internal/models"
	"servio/internal/pagination"
	"servio/internal/repositories"
)

// PackageService manages the credit package catalog.
type PackageService interface {
	CreatePackage(ctx context.Context, pkg *models.CreditPackage) (*models.CreditPackage, error)
	GetPackageByName(ctx context.Context, name string) (*models.CreditPackage, error)
	ListPackages(ctx context.Context, status models.CatalogStatus, p pagination.Params) ([]models.CreditPackage, pagination.Meta, error)
}

type packageService struct {
	repo repositories.CreditPackageRepository
}

func NewPackageService(repo repositories.CreditPackageRepository) PackageService {
	if repo == nil {
		panic("repo is required")
	}
	return &packageService{repo: repo}
}

func (s *packageService) CreatePackage(ctx context.Context, pkg *models.CreditPackage) (*models.CreditPackage, error) {
	if pkg == nil || pkg.Name == "" {
		return nil, ErrInvalidPackage
	}
	if pkg.Amount < 0 || pkg.TotalCredit < 0 || pkg.VAT < 0 {
		return nil, ErrInvalidPackage
	}
	if pkg.Status == "" {
		pkg.Status = models.CatalogStatusDraft
	}

	// The name check makes the common duplicate case a clean error; the
	// unique index still catches the race.
	if _, err := s.repo.GetByName(pkg.Name); err == nil {
		return nil, ErrDuplicateName
	} else if !errors.Is(err, repositories.ErrPackageNotFound) {
		return nil, fmt.Errorf("failed to check package name: %w", err)
	}

	if err := s.repo.Create(pkg); err != nil {
		if errors.Is(err, repositories.ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create package: %w", err)
	}
	return pkg, nil
}

func (s *packageService) GetPackageByName(ctx context.Context, name string) (*models.CreditPackage, error) {
	pkg, err := s.repo.GetByName(name)
	if err != nil {
		if errors.Is(err, repositories.ErrPackageNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return pkg, nil
}

func (s *packageService) ListPackages(ctx context.Context, status models.CatalogStatus, p pagination.Params) ([]models.CreditPackage, pagination.Meta, error) {
	p = p.Normalize()
	pkgs, total, err := s.repo.List(ctx, status, p.Limit, p.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return pkgs, pagination.NewMeta(total, p), nil
}
