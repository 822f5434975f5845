package repositories

import (
	"context"
	"errors"

	"servio/internal/models"
)

var ErrPlanNotFound = errors.New("subscription plan not found")

// PlanRepository is the persistence port for the subscription plan catalog,
// including the commission tiers attached to TIERED plans.
type PlanRepository interface {
	Create(plan *models.SubscriptionPlan) error
	GetByID(id uint) (*models.SubscriptionPlan, error)
	GetByName(name string) (*models.SubscriptionPlan, error)
	List(ctx context.Context, status models.CatalogStatus, limit, offset int) ([]models.SubscriptionPlan, int64, error)
	UpdateStatus(id uint, status models.CatalogStatus) error

	CreateCommission(tier *models.DiscountCommission) error
	ListCommissions(planID uint, status models.CatalogStatus) ([]models.DiscountCommission, error)
}
