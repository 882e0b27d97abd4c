package withdrawal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func defaultFees() FeePolicy {
	return FeePolicy{
		Rate:   decimal.RequireFromString(DefaultFeeRate),
		MinFee: decimal.RequireFromString(DefaultMinFee),
		MaxFee: decimal.RequireFromString(DefaultMaxFee),
	}
}

func TestFeePolicy_Compute(t *testing.T) {
	fees := defaultFees()

	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"small amount clamps to minimum", "100", "5000"},
		{"mid-range pays one percent", "1000000", "10000"},
		{"large amount clamps to maximum", "10000000", "50000"},
		{"exactly at minimum boundary", "500000", "5000"},
		{"exactly at maximum boundary", "5000000", "50000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fees.Compute(decimal.RequireFromString(tt.amount))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"Compute(%s) = %s, want %s", tt.amount, got, tt.want)
		})
	}
}

func TestFeePolicy_ComputeIsPure(t *testing.T) {
	fees := defaultFees()
	amount := decimal.RequireFromString("2000000")

	first := fees.Compute(amount)
	second := fees.Compute(amount)
	assert.True(t, first.Equal(second))
}
