package subscription

import "errors"

// Service errors
var (
	ErrPlanNotFound             = errors.New("subscription plan not found")
	ErrPlanNotPublished         = errors.New("subscription plan is not published")
	ErrSubscriptionNotFound     = errors.New("subscription not found")
	ErrActiveSubscriptionExists = errors.New("provider already has an active subscription")
	ErrSubscriptionNotActive    = errors.New("subscription is not active")
	ErrInvalidPeriod            = errors.New("invalid subscription period")
	ErrStorageUnavailable       = errors.New("subscription storage unavailable")
)
