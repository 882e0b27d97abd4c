package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Only service providers can request withdrawals; only
// admins can approve or reject them.
const (
	RoleUser     = "user"
	RoleProvider = "service_provider"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model
	Email       string  `gorm:"uniqueIndex;not null"`
	Password    string  `gorm:"not null"`
	Name        string  `gorm:"not null"`
	Role        string  `gorm:"default:'user'"`
	WalletID    *uint   `gorm:"unique;default:null"`
	Wallet      *Wallet `gorm:"foreignKey:WalletID"`
	Status      string  `gorm:"default:'active'"`
	LastLoginAt time.Time
}

// IsProvider reports whether the user may earn into and withdraw from a
// wallet.
func (u *User) IsProvider() bool {
	return u.Role == RoleProvider
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
