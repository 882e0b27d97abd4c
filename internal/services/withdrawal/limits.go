package withdrawal

import (
	"time"

	domain "pawpay/internal/errors"

	"github.com/shopspring/decimal"
)

// LimitPolicy caps the total withdrawal volume a provider may request
// per UTC calendar day and month. The decision itself is pure; the
// caller supplies the committed totals, read inside the same unit of
// work that performs the mutation so two concurrent requests cannot
// both pass the same check.
type LimitPolicy struct {
	DailyCap   decimal.Decimal
	MonthlyCap decimal.Decimal
}

// Check rejects the requested amount if it would push either rolling
// total over its cap.
func (p LimitPolicy) Check(requestedToday, requestedThisMonth, amount decimal.Decimal) error {
	if requestedToday.Add(amount).GreaterThan(p.DailyCap) {
		return domain.ErrLimitExceeded
	}
	if requestedThisMonth.Add(amount).GreaterThan(p.MonthlyCap) {
		return domain.ErrLimitExceeded
	}
	return nil
}

// dayWindow returns the half-open UTC calendar day containing now.
func dayWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

// monthWindow returns the half-open UTC calendar month containing now.
func monthWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
