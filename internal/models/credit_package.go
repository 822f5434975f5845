package models

import "time"

// CatalogStatus is the publication lifecycle shared by catalog entities
// (credit packages and subscription plans). New entries start in DRAFT and
// become visible via an explicit publish; INACTIVE hides an entry without
// breaking historical references to it.
type CatalogStatus string

const (
	CatalogStatusActive   CatalogStatus = "ACTIVE"
	CatalogStatusDraft    CatalogStatus = "DRAFT"
	CatalogStatusInactive CatalogStatus = "INACTIVE"
)

// CreditPackage is a purchasable bundle granting credit units.
type CreditPackage struct {
	ID          uint          `gorm:"primarykey"`
	Name        string        `gorm:"uniqueIndex;not null"`
	Amount      float64       `gorm:"not null"` // price
	TotalCredit float64       `gorm:"not null"` // credit units granted
	VAT         float64       `gorm:"column:vat;not null;default:0"`
	Status      CatalogStatus `gorm:"not null;default:'DRAFT'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
