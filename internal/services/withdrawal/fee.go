package withdrawal

import "github.com/shopspring/decimal"

// FeePolicy computes the platform fee for a withdrawal. It is pure:
// fee = clamp(amount * Rate, MinFee, MaxFee), no state, no I/O.
type FeePolicy struct {
	Rate   decimal.Decimal
	MinFee decimal.Decimal
	MaxFee decimal.Decimal
}

// Compute returns the fee for the given withdrawal amount.
func (p FeePolicy) Compute(amount decimal.Decimal) decimal.Decimal {
	fee := amount.Mul(p.Rate)
	if fee.LessThan(p.MinFee) {
		return p.MinFee
	}
	if fee.GreaterThan(p.MaxFee) {
		return p.MaxFee
	}
	return fee
}
