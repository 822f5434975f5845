package models

import (
	"time"
)

// Transaction types. The set is closed: every balance-affecting event is
// recorded under exactly one of these.
const (
	// Credit-history group (credit-purchase statement)
	TransactionTypeDiscountCredit = "DISCOUNT_CREDIT"
	TransactionTypePurchaseCredit = "PURCHASE_CREDIT"

	// General-history group (general wallet statement)
	TransactionTypeAddMoney            = "ADD_MONEY"
	TransactionTypePromotion           = "PROMOTION"
	TransactionTypeServicePayment      = "SERVICE_PAYMENT"
	TransactionTypeServiceFee          = "SERVICE_FEE"
	TransactionTypeRefund              = "REFUND"
	TransactionTypeServiceSalary       = "SERVICE_SALARY"
	TransactionTypeSubscriptionDebts   = "SUBSCRIPTION_DEBTS"
	TransactionTypeSubscriptionPayment = "SUBSCRIPTION_PAYMENT"
	TransactionTypeWithdrawal          = "WITHDRAWAL"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// TypeGroup partitions transaction types into the two reporting statements.
// A type belongs to exactly one group; history queries are always scoped to
// a single group.
type TypeGroup string

const (
	GroupCreditHistory  TypeGroup = "credit_history"
	GroupGeneralHistory TypeGroup = "general_history"
)

var creditHistoryTypes = []string{
	TransactionTypeDiscountCredit,
	TransactionTypePurchaseCredit,
}

var generalHistoryTypes = []string{
	TransactionTypeAddMoney,
	TransactionTypePromotion,
	TransactionTypeServicePayment,
	TransactionTypeServiceFee,
	TransactionTypeRefund,
	TransactionTypeServiceSalary,
	TransactionTypeSubscriptionDebts,
	TransactionTypeSubscriptionPayment,
	TransactionTypeWithdrawal,
}

// Types returns the transaction types belonging to the group, or nil for an
// unknown group.
func (g TypeGroup) Types() []string {
	switch g {
	case GroupCreditHistory:
		return creditHistoryTypes
	case GroupGeneralHistory:
		return generalHistoryTypes
	default:
		return nil
	}
}

// GroupForType reports which group a transaction type belongs to.
func GroupForType(txType string) (TypeGroup, bool) {
	for _, t := range creditHistoryTypes {
		if t == txType {
			return GroupCreditHistory, true
		}
	}
	for _, t := range generalHistoryTypes {
		if t == txType {
			return GroupGeneralHistory, true
		}
	}
	return "", false
}

// IsValidTransactionType reports whether txType is part of the closed enum.
func IsValidTransactionType(txType string) bool {
	_, ok := GroupForType(txType)
	return ok
}

// Transaction is an immutable ledger entry. Created exactly once per
// balance-affecting event, never updated or deleted.
type Transaction struct {
	ID          uint    `gorm:"primarykey"`
	WalletID    uint    `gorm:"index;not null"`
	Type        string  `gorm:"not null"`
	Amount      float64 `gorm:"not null"`
	Description string
	Status      string `gorm:"not null;default:'completed'"`
	Reference   string // external correlation ID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
