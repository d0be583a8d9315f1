package domain

import "time"

const (
	RoleCustomer = "customer"
	RoleSupplier = "supplier"
	RoleAdmin    = "admin"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleSupplier, RoleAdmin:
		return true
	}
	return false
}

// User is a credential record. Email is unique and stored lowercased;
// PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	LastLoginAt  time.Time `json:"last_login_at,omitempty"`
}

// Identity is the per-request view of an authenticated user, rebuilt from
// verified token claims (or the store, in authoritative mode) and discarded
// when the request ends. It is never persisted.
type Identity struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// LoginActivity records a successful login for asynchronous processing.
type LoginActivity struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	At     time.Time `json:"at"`
}
