package withdrawal

// Default policy values, in minor currency units. Overridable through
// the environment; see cmd/server.
const (
	DefaultFeeRate    = "0.01"
	DefaultMinFee     = "5000"
	DefaultMaxFee     = "50000"
	DefaultDailyCap   = "10000000"
	DefaultMonthlyCap = "100000000"
)
