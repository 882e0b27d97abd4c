/*
Package wallet provides the wallet store: per-owner balance records and
the credit primitives callers use to move money into them.

A wallet carries two fields, an available balance and a pending balance
holding funds earmarked for in-flight withdrawals. Both are adjusted
exclusively through the repository's ApplyDelta, which enforces that
neither field ever goes negative and rolls the whole unit of work back
if it would.

Usage:

	svc := wallet.NewService(repo, bookings, cache, metrics)

	// Lazily open a wallet on first need
	w, err := svc.GetOrCreateWallet(ctx, ownerID)

	// Credit a provider for a completed booking
	entry, err := svc.RecordEarning(ctx, providerID, bookingID, amount, "")

Every credit commits the balance change and its ledger entry in one
database transaction, so the ledger always accounts for the balance.

Error Handling:

The service returns errors from the internal errors package:
  - ErrWalletNotFound: no wallet exists for the owner
  - ErrWalletExists: duplicate wallet creation
  - ErrBookingNotFound: earning references an unknown booking
  - ErrInvalidAmount: non-positive credit amount
  - ErrInvariantViolation: the delta would drive a balance negative
*/
package wallet
