package models

import "time"

// User is the stored shape of an account, used by both the mongo and the
// postgres repositories.
type User struct {
	UserID         string     `db:"user_id" bson:"_id"`
	Name           string     `db:"name" bson:"name"`
	Email          string     `db:"email" bson:"email"`
	PasswordHash   *string    `db:"password_hash" bson:"password,omitempty"`
	Company        Company    `db:"company" bson:"company"`
	Role           string     `db:"role" bson:"role"`
	IsActive       bool       `db:"is_active" bson:"isActive"`
	LastLoginAt    *time.Time `db:"last_login_at" bson:"lastLogin,omitempty"`
	AuthProvider   string     `db:"auth_provider" bson:"authProvider"`
	ProviderUserID *string    `db:"provider_user_id" bson:"providerUserId,omitempty"`
	AuditFields    `bson:",inline"`
}
