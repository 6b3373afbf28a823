package domain

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Role determines which routes a user may access.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered account with a simulated cash balance.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Balance      decimal.Decimal
	CreatedAt    time.Time

	// Mu is the per-user lock for trade mutations. A trade's balance
	// debit/credit, holding upsert/removal, and journal append all
	// happen while holding it, and every validation runs before the
	// first mutation, so a failed trade leaves no partial state.
	// The user's portfolio is guarded by the same lock.
	Mu sync.Mutex
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
