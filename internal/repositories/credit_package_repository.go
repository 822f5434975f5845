package repositories

import (
	"context"
	"errors"

	"servio/internal/models"
)

var (
	ErrPackageNotFound = errors.New("credit package not found")
	ErrDuplicateName   = errors.New("name already in use")
)

// StatusAll disables status filtering on catalog list queries.
const StatusAll models.CatalogStatus = "ALL"

// CreditPackageRepository is the persistence port for the credit package
// catalog.
type CreditPackageRepository interface {
	Create(pkg *models.CreditPackage) error
	GetByName(name string) (*models.CreditPackage, error)
	List(ctx context.Context, status models.CatalogStatus, limit, offset int) ([]models.CreditPackage, int64, error)
}
