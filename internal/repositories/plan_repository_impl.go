package repositories

import (
	"context"
	"errors"
	"fmt"

	"servio/internal/models"

	"gorm.io/gorm"
)

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(plan *models.SubscriptionPlan) error {
	if err := r.db.Create(plan).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return nil
}

func (r *planRepository) GetByID(id uint) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := r.db.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return &plan, nil
}

func (r *planRepository) GetByName(name string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := r.db.Where("name = ?", name).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return &plan, nil
}

func (r *planRepository) List(ctx context.Context, status models.CatalogStatus, limit, offset int) ([]models.SubscriptionPlan, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SubscriptionPlan{})
	if status != StatusAll {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count plans: %w", err)
	}

	var plans []models.SubscriptionPlan
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&plans).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, total, nil
}

func (r *planRepository) UpdateStatus(id uint, status models.CatalogStatus) error {
	result := r.db.Model(&models.SubscriptionPlan{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update plan status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (r *planRepository) CreateCommission(tier *models.DiscountCommission) error {
	if err := r.db.Create(tier).Error; err != nil {
		return fmt.Errorf("failed to create commission tier: %w", err)
	}
	return nil
}

func (r *planRepository) ListCommissions(planID uint, status models.CatalogStatus) ([]models.DiscountCommission, error) {
	var tiers []models.DiscountCommission
	query := r.db.Where("plan_id = ?", planID)
	if status != StatusAll {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("min_value ASC").Find(&tiers).Error; err != nil {
		return nil, fmt.Errorf("failed to list commission tiers: %w", err)
	}
	return tiers, nil
}
