package wallet

import "errors"

// Service errors
var (
	ErrWalletNotFound            = errors.New("wallet not found")
	ErrInsufficientBalance       = errors.New("insufficient balance")
	ErrInsufficientCreditBalance = errors.New("insufficient credit balance")
	ErrInvalidTransactionType    = errors.New("invalid transaction type")
	ErrStorageUnavailable        = errors.New("storage unavailable")
)
