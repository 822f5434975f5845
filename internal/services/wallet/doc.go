/*
Package wallet implements the wallet store for the marketplace core.

The service owns balance and credit-balance mutation:
- Lazy, idempotent wallet creation per user (GetOrCreate)
- Signed balance adjustments with non-negativity enforcement
- Atomic ledger append alongside every balance change
- Cache management for wallet reads

Usage:

	svc := wallet.NewService(repo, cache, wallet.Config{}, metrics)

	// Fetch (or lazily create) a user's wallet
	w, err := svc.GetOrCreate(ctx, userID)

	// Charge a service payment
	err = svc.AdjustBalance(ctx, w.ID, -fee, models.TransactionTypeServicePayment, "job #42")

	// Grant purchased credit
	err = svc.AdjustCreditBalance(ctx, w.ID, pkg.TotalCredit, models.TransactionTypePurchaseCredit, pkg.Name)

Every mutation commits the new balance and its ledger entry in a single
database transaction; a failure in either rolls back both.

Error Handling:

The service returns sentinel errors the orchestration layer can branch on:
- ErrInsufficientBalance / ErrInsufficientCreditBalance: the delta would
  drive the balance negative; the wallet is left untouched
- ErrInvalidTransactionType: the type is not part of the ledger enum
- ErrStorageUnavailable: transient storage failures exhausted their retries
*/
package wallet
