package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions. Tokens carry the subset their role grants;
// admins pass every permission gate regardless.
const (
	// Wallet permissions
	PermissionWalletRead  = "wallet:read"
	PermissionWalletWrite = "wallet:write"

	// Withdrawal permissions
	PermissionWithdrawalCreate = "withdrawal:create"
	PermissionWithdrawalRead   = "withdrawal:read"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID      uint     `json:"user_id"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
