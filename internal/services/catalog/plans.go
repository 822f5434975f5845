package catalog

import (
	"context"
	"errors"
	"fmt"

	"servio/internal/models"
	"servio/internal/pagination"
	"servio/internal/repositories"
	"servio/internal/services/discount"
)

// PlanService manages the subscription plan catalog.
type PlanService interface {
	CreatePlan(ctx context.Context, plan *models.SubscriptionPlan) (*models.SubscriptionPlan, error)
	GetPlan(ctx context.Context, id uint) (*models.SubscriptionPlan, error)
	GetPlanByName(ctx context.Context, name string) (*models.SubscriptionPlan, error)
	ListPlans(ctx context.Context, status models.CatalogStatus, p pagination.Params) ([]models.SubscriptionPlan, pagination.Meta, error)
	// PublishPlan moves a DRAFT or INACTIVE plan to ACTIVE. Publishing an
	// already ACTIVE plan is a no-op; a missing plan is an error.
	PublishPlan(ctx context.Context, id uint) (*models.SubscriptionPlan, error)
	// AddCommissionTier appends a commission tier to a TIERED plan. The
	// new tier is checked against the plan's existing tiers of the same
	// status before insert, so the stored set stays overlap-free.
	AddCommissionTier(ctx context.Context, tier *models.DiscountCommission) (*models.DiscountCommission, error)
	// PlanCommissions loads the commission tiers of a plan for the
	// discount resolver.
	PlanCommissions(ctx context.Context, planID uint, status models.CatalogStatus) ([]models.DiscountCommission, error)
}

type planService struct {
	repo repositories.PlanRepository
}

func NewPlanService(repo repositories.PlanRepository) PlanService {
	if repo == nil {
		panic("repo is required")
	}
	return &planService{repo: repo}
}

func (s *planService) CreatePlan(ctx context.Context, plan *models.SubscriptionPlan) (*models.SubscriptionPlan, error) {
	if plan == nil || plan.Name == "" {
		return nil, ErrInvalidPlan
	}
	if plan.Price < 0 || plan.DurationDays <= 0 || plan.CreditsPerJob < 0 {
		return nil, ErrInvalidPlan
	}
	if plan.DiscountType != models.DiscountTypeFixed && plan.DiscountType != models.DiscountTypeTiered {
		return nil, ErrInvalidPlan
	}
	if plan.Status == "" {
		plan.Status = models.CatalogStatusDraft
	}

	if _, err := s.repo.GetByName(plan.Name); err == nil {
		return nil, ErrDuplicateName
	} else if !errors.Is(err, repositories.ErrPlanNotFound) {
		return nil, fmt.Errorf("failed to check plan name: %w", err)
	}

	if err := s.repo.Create(plan); err != nil {
		if errors.Is(err, repositories.ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	return plan, nil
}

func (s *planService) GetPlan(ctx context.Context, id uint) (*models.SubscriptionPlan, error) {
	plan, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return plan, nil
}

func (s *planService) GetPlanByName(ctx context.Context, name string) (*models.SubscriptionPlan, error) {
	plan, err := s.repo.GetByName(name)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return plan, nil
}

func (s *planService) ListPlans(ctx context.Context, status models.CatalogStatus, p pagination.Params) ([]models.SubscriptionPlan, pagination.Meta, error) {
	p = p.Normalize()
	plans, total, err := s.repo.List(ctx, status, p.Limit, p.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return plans, pagination.NewMeta(total, p), nil
}

func (s *planService) PublishPlan(ctx context.Context, id uint) (*models.SubscriptionPlan, error) {
	plan, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.Status == models.CatalogStatusActive {
		return plan, nil
	}

	if err := s.repo.UpdateStatus(id, models.CatalogStatusActive); err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to publish plan: %w", err)
	}
	plan.Status = models.CatalogStatusActive
	return plan, nil
}

func (s *planService) AddCommissionTier(ctx context.Context, tier *models.DiscountCommission) (*models.DiscountCommission, error) {
	if tier == nil || tier.PlanID == 0 || tier.Commission < 0 {
		return nil, ErrInvalidTier
	}
	if tier.Status == "" {
		tier.Status = models.CatalogStatusActive
	}

	plan, err := s.GetPlan(ctx, tier.PlanID)
	if err != nil {
		return nil, err
	}
	if plan.DiscountType != models.DiscountTypeTiered {
		return nil, ErrInvalidTier
	}

	existing, err := s.repo.ListCommissions(tier.PlanID, tier.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to load commission tiers: %w", err)
	}
	if err := discount.ValidateTiers(append(existing, *tier)); err != nil {
		return nil, err
	}

	if err := s.repo.CreateCommission(tier); err != nil {
		return nil, fmt.Errorf("failed to create commission tier: %w", err)
	}
	return tier, nil
}

func (s *planService) PlanCommissions(ctx context.Context, planID uint, status models.CatalogStatus) ([]models.DiscountCommission, error) {
	if _, err := s.GetPlan(ctx, planID); err != nil {
		return nil, err
	}
	tiers, err := s.repo.ListCommissions(planID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to load commission tiers: %w", err)
	}
	return tiers, nil
}
