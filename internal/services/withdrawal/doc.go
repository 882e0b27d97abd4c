/*
Package withdrawal drives provider payout requests through their state
machine:

	PENDING -> APPROVED -> PROCESSING -> COMPLETED
	PENDING -> REJECTED
	PROCESSING -> FAILED

Creating a request holds the amount: it moves from the available to the
pending balance and a pending ledger debit is recorded, all in one
database transaction. Approval commits the PROCESSING state and a
transaction reference first, then calls the bank-transfer gateway with
no locks held; the gateway result drives Complete or FailSettlement.
Reject and FailSettlement return the held funds through the same
reversal: a corrective credit entry and the original debit settled as
failed.

Fees and velocity limits are policy values (FeePolicy, LimitPolicy)
checked before any mutation commits; the limit totals are read under
the wallet row lock so concurrent requests cannot jointly exceed a cap.
*/
package withdrawal
