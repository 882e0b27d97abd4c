package banktransfer

import (
	"context"
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/payout"
)

// StripeGateway executes bank transfers through Stripe payouts.
type StripeGateway struct {
	currency string
}

// NewStripeGateway configures the Stripe client. The secret key comes
// from the caller so tests never touch the environment.
func NewStripeGateway(secretKey, currency string) *StripeGateway {
	stripe.Key = secretKey
	if currency == "" {
		currency = "vnd"
	}
	return &StripeGateway{currency: currency}
}

func (g *StripeGateway) Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	params := &stripe.PayoutParams{
		Params:      stripe.Params{Context: ctx},
		Amount:      stripe.Int64(req.Amount.Round(0).IntPart()),
		Currency:    stripe.String(g.currency),
		Description: stripe.String(req.Description),
	}
	params.AddMetadata("reference", req.Reference)
	params.AddMetadata("bank_code", req.BankCode)
	params.AddMetadata("account_holder", req.AccountHolderName)

	p, err := payout.New(params)
	if err != nil {
		log.Printf("Stripe payout error for %s: %v", req.Reference, err)
		return nil, fmt.Errorf("stripe payout failed: %w", err)
	}

	return &TransferResult{GatewayRef: p.ID}, nil
}
