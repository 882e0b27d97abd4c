package handlers

import (
	"pawpay/internal/models"
	"pawpay/internal/services/ledger"
	"pawpay/internal/services/wallet"
	"pawpay/internal/utils"
	"pawpay/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
	ledgerService ledger.Service
}

func NewWalletHandler(walletService wallet.Service, ledgerService ledger.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		ledgerService: ledgerService,
	}
}

// extractUserClaims is a helper function to reduce duplication
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"wallet": w,
	})
}

func (h *WalletHandler) CreateWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	w, err := h.walletService.CreateWallet(c.Context(), claims.UserID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"wallet": w,
	})
}

func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	p := pagination.ParseFromRequest(c)

	transactions, total, err := h.ledgerService.ListByWallet(c.Context(), claims.UserID, p.Limit, p.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}

	p.Total = total
	return utils.Success(c, pagination.Response(p, transactions))
}

func (h *WalletHandler) GetTransactionSummary(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	summary, err := h.ledgerService.Summarize(c.Context(), claims.UserID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"summary": summary,
	})
}

// ReconcileWallet is an admin endpoint comparing a wallet's balances
// against its ledger totals.
func (h *WalletHandler) ReconcileWallet(c *fiber.Ctx) error {
	ownerID, err := c.ParamsInt("ownerId")
	if err != nil || ownerID <= 0 {
		return utils.BadRequest(c, "invalid owner id")
	}

	report, err := h.ledgerService.Reconcile(c.Context(), uint(ownerID))
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"report": report,
	})
}
