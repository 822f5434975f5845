package repositories

import (
	"context"
	"errors"
	"fmt"

	"servio/internal/models"

	"gorm.io/gorm"
)

type creditPackageRepository struct {
	db *gorm.DB
}

func NewCreditPackageRepository(db *gorm.DB) CreditPackageRepository {
	return &creditPackageRepository{db: db}
}

func (r *creditPackageRepository) Create(pkg *models.CreditPackage) error {
	if err := r.db.Create(pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to create credit package: %w", err)
	}
	return nil
}

func (r *creditPackageRepository) GetByName(name string) (*models.CreditPackage, error) {
	var pkg models.CreditPackage
	if err := r.db.Where("name = ?", name).First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get credit package: %w", err)
	}
	return &pkg, nil
}

func (r *creditPackageRepository) List(ctx context.Context, status models.CatalogStatus, limit, offset int) ([]models.CreditPackage, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CreditPackage{})
	if status != StatusAll {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count credit packages: %w", err)
	}

	var pkgs []models.CreditPackage
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&pkgs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list credit packages: %w", err)
	}
	return pkgs, total, nil
}
