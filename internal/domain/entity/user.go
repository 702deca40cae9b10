package entity

import "time"

// Roles valid for User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// User is a back-office or counter operator. Username is the actor identity
// threaded through settlements.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext past registration
	Role         string // admin, manager, cashier
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
