package handlers

import (
	"pawpay/internal/middleware"
	"pawpay/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers the HTTP surface. Auth tokens are issued
// elsewhere; every /api route only verifies the claims it is handed.
func SetupRoutes(app *fiber.App, walletHandler *WalletHandler, withdrawalHandler *WithdrawalHandler) {
	app.Get("/health", HealthCheck)

	api := app.Group("/api")
	authenticated := api.Group("/", middleware.AuthMiddleware)

	// Wallet routes
	wallet := authenticated.Group("/wallet")
	wallet.Get("/", middleware.HasPermission(models.PermissionWalletRead), walletHandler.GetWallet)
	wallet.Post("/", middleware.HasPermission(models.PermissionWalletWrite), walletHandler.CreateWallet)
	wallet.Get("/transactions", middleware.HasPermission(models.PermissionWalletRead), walletHandler.GetTransactions)
	wallet.Get("/transactions/summary", middleware.HasPermission(models.PermissionWalletRead), walletHandler.GetTransactionSummary)

	// Withdrawal routes (providers)
	withdrawals := authenticated.Group("/withdrawals", middleware.RequireRole(models.RoleProvider))
	withdrawals.Post("/", middleware.HasPermission(models.PermissionWithdrawalCreate), withdrawalHandler.CreateWithdrawal)
	withdrawals.Get("/", middleware.HasPermission(models.PermissionWithdrawalRead), withdrawalHandler.ListMyWithdrawals)
	withdrawals.Get("/:id", middleware.HasPermission(models.PermissionWithdrawalRead), withdrawalHandler.GetWithdrawal)

	// Admin routes
	admin := authenticated.Group("/admin", middleware.AdminAuthMiddleware)
	admin.Get("/withdrawals", withdrawalHandler.ListAllWithdrawals)
	admin.Post("/withdrawals/:id/approve", withdrawalHandler.ApproveWithdrawal)
	admin.Post("/withdrawals/:id/reject", withdrawalHandler.RejectWithdrawal)
	admin.Get("/wallets/:ownerId/reconcile", walletHandler.ReconcileWallet)
}
