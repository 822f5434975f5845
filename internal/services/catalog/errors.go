package catalog

import "errors"

// Service errors
var (
	ErrDuplicateName   = errors.New("name already in use")
	ErrPackageNotFound = errors.New("credit package not found")
	ErrPlanNotFound    = errors.New("subscription plan not found")
	ErrInvalidPackage  = errors.New("invalid credit package")
	ErrInvalidPlan     = errors.New("invalid subscription plan")
	ErrInvalidTier     = errors.New("invalid commission tier")
)
