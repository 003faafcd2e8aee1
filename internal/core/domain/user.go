package domain

import "time"

// UserRole controls administrative access.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// AuthProvider identifies how a user signs in.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents a user of the application in the domain.
type User struct {
	UserID         string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	PasswordHash   *string        `json:"-"` // nil for OAuth-only accounts
	Company        CompanyProfile `json:"company"`
	Role           UserRole       `json:"role"`
	IsActive       bool           `json:"isActive"`
	LastLoginAt    *time.Time     `json:"lastLogin,omitempty"`
	AuthProvider   AuthProvider   `json:"authProvider"`
	ProviderUserID string         `json:"-"`
	AuditFields
}

// GoogleUserInfo is the verified identity returned by Google sign-in.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
