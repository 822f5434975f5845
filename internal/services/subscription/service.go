// Package subscription implements the provider subscription lifecycle: a
// provider holds at most one ACTIVE subscription at a time, which either
// expires into INACTIVE or is cancelled into CANCELLED. Both are terminal.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servio/internal/models"
	"servio/internal/repositories"
)

// Service defines the subscription lifecycle manager.
type Service interface {
	// Create enrolls a provider in a plan. It fails with
	// ErrActiveSubscriptionExists when the provider already holds an
	// ACTIVE subscription; the check is race-free across processes.
	Create(ctx context.Context, providerID, planID uint, start, end time.Time) (*models.Subscription, error)

	HasActiveSubscription(ctx context.Context, providerID uint) (bool, error)
	FindActiveSubscription(ctx context.Context, providerID uint) (*models.Subscription, error)

	// HasHeldPlan reports whether the provider has ever held the plan in
	// any status, to guard one-time benefits against re-grants.
	HasHeldPlan(ctx context.Context, providerID, planID uint) (bool, error)

	// FindEndingBetween returns subscriptions whose endDate falls in
	// [from, to); it feeds the periodic expiry sweep.
	FindEndingBetween(ctx context.Context, from, to time.Time) ([]models.Subscription, error)

	// Cancel moves an ACTIVE subscription to CANCELLED.
	Cancel(ctx context.Context, id uint) error
	// MarkExpired moves an ACTIVE subscription to INACTIVE (expiry sweep).
	MarkExpired(ctx context.Context, id uint) error
}

type service struct {
	repo       repositories.SubscriptionRepository
	plans      repositories.PlanRepository
	maxRetries int
}

func NewService(repo repositories.SubscriptionRepository, plans repositories.PlanRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	if plans == nil {
		panic("plan repo is required")
	}
	return &service{repo: repo, plans: plans, maxRetries: defaultMaxRetries}
}

// withRetry runs op up to maxRetries times with a short backoff. Domain
// outcomes pass through on the first attempt; only storage failures retry,
// and exhaustion surfaces as ErrStorageUnavailable.
func (s *service) withRetry(op func() error) error {
	for attempt := 0; ; attempt++ {
		err := op()
		if err == nil || isFatal(err) {
			return err
		}
		if attempt+1 >= s.maxRetries {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		time.Sleep(retryBackoff)
	}
}

func isFatal(err error) bool {
	return errors.Is(err, ErrPlanNotFound) ||
		errors.Is(err, ErrPlanNotPublished) ||
		errors.Is(err, ErrSubscriptionNotFound) ||
		errors.Is(err, ErrActiveSubscriptionExists) ||
		errors.Is(err, ErrSubscriptionNotActive)
}

func (s *service) Create(ctx context.Context, providerID, planID uint, start, end time.Time) (*models.Subscription, error) {
	if !end.After(start) {
		return nil, ErrInvalidPeriod
	}

	var plan *models.SubscriptionPlan
	err := s.withRetry(func() error {
		found, err := s.plans.GetByID(planID)
		if err != nil {
			if errors.Is(err, repositories.ErrPlanNotFound) {
				return ErrPlanNotFound
			}
			return fmt.Errorf("failed to get plan: %w", err)
		}
		plan = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	if plan.Status != models.CatalogStatusActive {
		return nil, ErrPlanNotPublished
	}

	sub := &models.Subscription{
		ServiceProviderID:  providerID,
		SubscriptionPlanID: planID,
		StartDate:          start,
		EndDate:            end,
		Status:             models.SubscriptionStatusActive,
	}
	// The partial unique index on ACTIVE rows is the arbiter: two
	// concurrent creates for one provider cannot both commit.
	err = s.withRetry(func() error {
		if err := s.repo.Create(sub); err != nil {
			if errors.Is(err, repositories.ErrActiveSubscriptionExists) {
				return ErrActiveSubscriptionExists
			}
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *service) HasActiveSubscription(ctx context.Context, providerID uint) (bool, error) {
	_, err := s.FindActiveSubscription(ctx, providerID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) FindActiveSubscription(ctx context.Context, providerID uint) (*models.Subscription, error) {
	var sub *models.Subscription
	err := s.withRetry(func() error {
		found, err := s.repo.FindActiveByProvider(providerID)
		if err != nil {
			if errors.Is(err, repositories.ErrSubscriptionNotFound) {
				return ErrSubscriptionNotFound
			}
			return fmt.Errorf("failed to find active subscription: %w", err)
		}
		sub = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *service) HasHeldPlan(ctx context.Context, providerID, planID uint) (bool, error) {
	var held bool
	err := s.withRetry(func() error {
		found, err := s.repo.ExistsForProviderAndPlan(providerID, planID)
		if err != nil {
			return fmt.Errorf("failed to check plan history: %w", err)
		}
		held = found
		return nil
	})
	if err != nil {
		return false, err
	}
	return held, nil
}

func (s *service) FindEndingBetween(ctx context.Context, from, to time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := s.withRetry(func() error {
		found, err := s.repo.FindEndingBetween(ctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to find ending subscriptions: %w", err)
		}
		subs = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *service) Cancel(ctx context.Context, id uint) error {
	return s.transition(id, models.SubscriptionStatusCancelled)
}

func (s *service) MarkExpired(ctx context.Context, id uint) error {
	return s.transition(id, models.SubscriptionStatusInactive)
}

func (s *service) transition(id uint, status models.SubscriptionStatus) error {
	return s.withRetry(func() error {
		updated, err := s.repo.UpdateStatusIfActive(id, status)
		if err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}
		if updated {
			return nil
		}

		// Nothing changed: distinguish a missing row from a terminal one.
		if _, err := s.repo.GetByID(id); err != nil {
			if errors.Is(err, repositories.ErrSubscriptionNotFound) {
				return ErrSubscriptionNotFound
			}
			return fmt.Errorf("failed to get subscription: %w", err)
		}
		return ErrSubscriptionNotActive
	})
}
