package handlers

import (
	"time"

	"pawpay/internal/models"
	"pawpay/internal/services/withdrawal"
	"pawpay/internal/utils"
	"pawpay/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WithdrawalHandler struct {
	withdrawalService withdrawal.Service
}

func NewWithdrawalHandler(withdrawalService withdrawal.Service) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
	}
}

// withdrawalResponse is the API shape of a withdrawal. The bank account
// number always goes out masked.
type withdrawalResponse struct {
	ID                uint            `json:"id"`
	Amount            decimal.Decimal `json:"amount"`
	Fee               decimal.Decimal `json:"fee"`
	NetAmount         decimal.Decimal `json:"net_amount"`
	Status            string          `json:"status"`
	StatusTitle       string          `json:"status_title"`
	BankCode          string          `json:"bank_code"`
	BankName          string          `json:"bank_name"`
	AccountNumber     string          `json:"account_number"`
	AccountHolderName string          `json:"account_holder_name"`
	TransactionRef    string          `json:"transaction_ref,omitempty"`
	AdminNote         string          `json:"admin_note,omitempty"`
	RejectionReason   string          `json:"rejection_reason,omitempty"`
	ProcessedAt       *time.Time      `json:"processed_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

func toWithdrawalResponse(w *models.Withdrawal) withdrawalResponse {
	return withdrawalResponse{
		ID:                w.ID,
		Amount:            w.Amount,
		Fee:               w.Fee,
		NetAmount:         w.NetAmount,
		Status:            string(w.Status),
		StatusTitle:       w.Status.Title(),
		BankCode:          w.BankCode,
		BankName:          w.BankName,
		AccountNumber:     w.MaskedAccountNumber(),
		AccountHolderName: w.AccountHolderName,
		TransactionRef:    w.TransactionRef,
		AdminNote:         w.AdminNote,
		RejectionReason:   w.RejectionReason,
		ProcessedAt:       w.ProcessedAt,
		CreatedAt:         w.CreatedAt,
	}
}

func toWithdrawalResponses(ws []models.Withdrawal) []withdrawalResponse {
	out := make([]withdrawalResponse, len(ws))
	for i := range ws {
		out[i] = toWithdrawalResponse(&ws[i])
	}
	return out
}

func (h *WithdrawalHandler) CreateWithdrawal(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount            decimal.Decimal `json:"amount"`
		BankCode          string          `json:"bank_code"`
		BankName          string          `json:"bank_name"`
		AccountNumber     string          `json:"account_number"`
		AccountHolderName string          `json:"account_holder_name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	w, err := h.withdrawalService.Create(c.Context(), claims.UserID, withdrawal.CreateInput{
		Amount:            input.Amount,
		BankCode:          input.BankCode,
		BankName:          input.BankName,
		AccountNumber:     input.AccountNumber,
		AccountHolderName: input.AccountHolderName,
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"withdrawal": toWithdrawalResponse(w),
	})
}

func (h *WithdrawalHandler) GetWithdrawal(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid withdrawal id")
	}

	w, err := h.withdrawalService.Get(c.Context(), uint(id))
	if err != nil {
		return respondDomainError(c, err)
	}

	// Providers only see their own requests.
	if claims.Role != models.RoleAdmin && w.ProviderID != claims.UserID {
		return utils.NotFound(c, "withdrawal not found")
	}

	return utils.Success(c, fiber.Map{
		"withdrawal": toWithdrawalResponse(w),
	})
}

func (h *WithdrawalHandler) ListMyWithdrawals(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	p := pagination.ParseFromRequest(c)

	ws, total, err := h.withdrawalService.ListByProvider(c.Context(), claims.UserID, p.Limit, p.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}

	p.Total = total
	return utils.Success(c, pagination.Response(p, toWithdrawalResponses(ws)))
}

// Admin endpoints

func (h *WithdrawalHandler) ListAllWithdrawals(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	ws, total, err := h.withdrawalService.ListAll(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}

	p.Total = total
	return utils.Success(c, pagination.Response(p, toWithdrawalResponses(ws)))
}

func (h *WithdrawalHandler) ApproveWithdrawal(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid withdrawal id")
	}

	var input struct {
		AdminNote string `json:"admin_note"`
	}
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return utils.BadRequest(c, "Invalid request format")
	}

	w, err := h.withdrawalService.Approve(c.Context(), uint(id), input.AdminNote)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"withdrawal": toWithdrawalResponse(w),
	})
}

func (h *WithdrawalHandler) RejectWithdrawal(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid withdrawal id")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Reason == "" {
		return utils.BadRequest(c, "rejection reason is required")
	}

	w, err := h.withdrawalService.Reject(c.Context(), uint(id), input.Reason)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"withdrawal": toWithdrawalResponse(w),
	})
}
