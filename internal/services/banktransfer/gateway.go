// Package banktransfer integrates with the external payout rail that
// fulfills approved withdrawals. The engine only ever talks to the
// Gateway interface; transfer calls are slow network operations and are
// never made inside a database transaction.
package banktransfer

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
)

// TransferRequest describes one payout to a provider's bank account.
type TransferRequest struct {
	Reference         string
	Amount            decimal.Decimal
	BankCode          string
	BankName          string
	AccountNumber     string
	AccountHolderName string
	Description       string
}

// TransferResult is the gateway's acceptance of a transfer. GatewayRef
// is the rail-side identifier for later audit.
type TransferResult struct {
	GatewayRef string
}

// Gateway initiates a bank transfer. A nil error means the rail
// accepted and executed the transfer; an error means the funds did not
// move and the caller must run its failure transition.
type Gateway interface {
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
}

// SimulatedGateway accepts every transfer. Used in development and
// tests where no payout rail is configured.
type SimulatedGateway struct{}

func NewSimulatedGateway() *SimulatedGateway { return &SimulatedGateway{} }

func (g *SimulatedGateway) Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	log.Printf("Simulated bank transfer %s: %s to %s/%s", req.Reference, req.Amount, req.BankCode, req.AccountNumber)
	return &TransferResult{GatewayRef: "sim_" + req.Reference}, nil
}
