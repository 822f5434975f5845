package repositories

import (
	"context"
	"errors"
	"time"

	"servio/internal/models"
)

var (
	ErrSubscriptionNotFound     = errors.New("subscription not found")
	ErrActiveSubscriptionExists = errors.New("provider already has an active subscription")
)

// SubscriptionRepository is the persistence port for provider subscriptions.
type SubscriptionRepository interface {
	// Create inserts a new subscription. When the row is ACTIVE and the
	// provider already holds an ACTIVE subscription, the partial unique
	// index rejects the insert and ErrActiveSubscriptionExists is returned;
	// two concurrent creates for one provider cannot both succeed.
	Create(sub *models.Subscription) error
	GetByID(id uint) (*models.Subscription, error)
	FindActiveByProvider(providerID uint) (*models.Subscription, error)
	// ExistsForProviderAndPlan reports whether the provider has ever held
	// the plan, in any status.
	ExistsForProviderAndPlan(providerID, planID uint) (bool, error)
	// FindEndingBetween returns subscriptions with endDate in [from, to).
	FindEndingBetween(ctx context.Context, from, to time.Time) ([]models.Subscription, error)
	// UpdateStatusIfActive transitions an ACTIVE subscription to status and
	// reports whether a row was updated. ACTIVE is the only non-terminal
	// state, so a false return means the subscription is absent or already
	// terminal.
	UpdateStatusIfActive(id uint, status models.SubscriptionStatus) (bool, error)
}
