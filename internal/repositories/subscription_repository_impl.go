package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servio/internal/models"

	"gorm.io/gorm"
)

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(sub *models.Subscription) error {
	if err := r.db.Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrActiveSubscriptionExists
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *subscriptionRepository) GetByID(id uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}

func (r *subscriptionRepository) FindActiveByProvider(providerID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.
		Where("service_provider_id = ? AND status = ?", providerID, models.SubscriptionStatusActive).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}
	return &sub, nil
}

func (r *subscriptionRepository) ExistsForProviderAndPlan(providerID, planID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("service_provider_id = ? AND subscription_plan_id = ?", providerID, planID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check subscription history: %w", err)
	}
	return count > 0, nil
}

func (r *subscriptionRepository) FindEndingBetween(ctx context.Context, from, to time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.WithContext(ctx).
		Where("end_date >= ? AND end_date < ?", from, to).
		Order("end_date ASC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find ending subscriptions: %w", err)
	}
	return subs, nil
}

func (r *subscriptionRepository) UpdateStatusIfActive(id uint, status models.SubscriptionStatus) (bool, error) {
	result := r.db.Model(&models.Subscription{}).
		Where("id = ? AND status = ?", id, models.SubscriptionStatusActive).
		Update("status", status)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update subscription status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
