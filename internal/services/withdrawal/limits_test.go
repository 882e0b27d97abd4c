package withdrawal

import (
	"testing"
	"time"

	domain "pawpay/internal/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func defaultLimits() LimitPolicy {
	return LimitPolicy{
		DailyCap:   decimal.RequireFromString(DefaultDailyCap),
		MonthlyCap: decimal.RequireFromString(DefaultMonthlyCap),
	}
}

func TestLimitPolicy_Check(t *testing.T) {
	limits := defaultLimits()

	tests := []struct {
		name      string
		today     string
		thisMonth string
		amount    string
		wantErr   error
	}{
		{"within both caps", "0", "0", "1000000", nil},
		{"daily cap exceeded", "9500000", "9500000", "600000", domain.ErrLimitExceeded},
		{"daily cap reached exactly", "9500000", "9500000", "500000", nil},
		{"just under daily cap", "9500000", "9500000", "400000", nil},
		{"monthly cap exceeded", "0", "99800000", "300000", domain.ErrLimitExceeded},
		{"monthly cap reached exactly", "0", "99800000", "200000", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := limits.Check(
				decimal.RequireFromString(tt.today),
				decimal.RequireFromString(tt.thisMonth),
				decimal.RequireFromString(tt.amount),
			)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDayWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	start, end := dayWindow(now)

	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), end)
}

func TestDayWindow_NonUTCClock(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	// 02:30 on the 16th in UTC+7 is still the 15th in UTC.
	now := time.Date(2026, 3, 16, 2, 30, 0, 0, loc)
	start, _ := dayWindow(now)

	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), start)
}

func TestMonthWindow(t *testing.T) {
	now := time.Date(2026, 12, 31, 12, 0, 0, 0, time.UTC)
	start, end := monthWindow(now)

	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)
}
