// Package discount computes the discount a plan grants against a
// marketplace fee. It is pure: the plan and its commission tiers are loaded
// by the caller (a catalog-read concern), not here.
package discount

import (
	"errors"

	"servio/internal/models"
)

var (
	// ErrNoMatchingTier means a TIERED plan has no commission tier covering
	// the fee amount. That is a configuration gap to surface to an
	// operator, never a silent zero discount.
	ErrNoMatchingTier      = errors.New("no commission tier matches the fee amount")
	ErrOverlappingTiers    = errors.New("commission tiers overlap")
	ErrInvalidTierBounds   = errors.New("commission tier has min above max")
	ErrUnknownDiscountType = errors.New("unknown discount type")
)

// Resolve returns the discount the plan applies to feeAmount.
//
// FIXED plans discount a flat DiscountValue regardless of the fee. TIERED
// plans use the commission of the tier whose [MinValue, MaxValue] bounds
// contain the fee; bounds are inclusive on both ends.
func Resolve(plan *models.SubscriptionPlan, tiers []models.DiscountCommission, feeAmount float64) (float64, error) {
	switch plan.DiscountType {
	case models.DiscountTypeFixed:
		return plan.DiscountValue, nil
	case models.DiscountTypeTiered:
		for _, tier := range tiers {
			if tier.PlanID != plan.ID {
				continue
			}
			if feeAmount >= tier.MinValue && feeAmount <= tier.MaxValue {
				return tier.Commission, nil
			}
		}
		return 0, ErrNoMatchingTier
	default:
		return 0, ErrUnknownDiscountType
	}
}

// ValidateTiers rejects tier sets whose amount ranges overlap. Tiers of the
// same plan and status must partition the fee range; with inclusive bounds,
// a shared endpoint counts as overlap.
func ValidateTiers(tiers []models.DiscountCommission) error {
	for i := range tiers {
		if tiers[i].MinValue > tiers[i].MaxValue {
			return ErrInvalidTierBounds
		}
		for j := i + 1; j < len(tiers); j++ {
			if tiers[i].PlanID != tiers[j].PlanID || tiers[i].Status != tiers[j].Status {
				continue
			}
			if tiers[i].MinValue <= tiers[j].MaxValue && tiers[j].MinValue <= tiers[i].MaxValue {
				return ErrOverlappingTiers
			}
		}
	}
	return nil
}
