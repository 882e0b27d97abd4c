package withdrawal

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInput is a provider's withdrawal request.
type CreateInput struct {
	Amount            decimal.Decimal
	BankCode          string
	BankName          string
	AccountNumber     string
	AccountHolderName string
}

func (in CreateInput) bankDetailsComplete() bool {
	return in.BankCode != "" && in.BankName != "" &&
		in.AccountNumber != "" && in.AccountHolderName != ""
}

// Config holds the fee and velocity-limit policies plus the clock the
// service timestamps with. The clock is injectable so limit-window
// tests do not depend on wall time.
type Config struct {
	Fees   FeePolicy
	Limits LimitPolicy
	Clock  func() time.Time
}
