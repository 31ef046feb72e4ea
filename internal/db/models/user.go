package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"gorm.io/datatypes"
)

// Account is a local login, the authentication side of a user.
// Accounts are never part of a system reset or backup.
type Account struct {
	Base
	// Email is the unique login name.
	Email string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	// Password is the Argon2id hash.
	Password string `gorm:"size:255;not null" json:"-"`
	// Active indicates whether the account may log in.
	Active bool `gorm:"not null" json:"-"`
	// EmailConfirmedAt is set for verified accounts.
	EmailConfirmedAt *time.Time `json:"email_confirmed_at"`
	// Metadata is free form account metadata, e.g. is_admin and full_name.
	Metadata datatypes.JSONMap `gorm:"column:user_metadata" json:"user_metadata"`
}

// TableName specifies the database table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// HashPassword hashes a plaintext password using the Argon2id algorithm with the default parameters.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams) //nolint:wrapcheck
}

// VerifyPassword verifies a plaintext password against the stored hash in constant time.
func (a *Account) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, a.Password)
	if err != nil {
		return false
	}

	return match
}

// IsAdmin reports the is_admin flag of the account metadata.
func (a *Account) IsAdmin() bool {
	v, ok := a.Metadata["is_admin"].(bool)
	return ok && v
}

// User is the public profile row of an account; it shares the account id.
type User struct {
	Base
	Email    string  `gorm:"size:255;not null" json:"email"`
	FullName *string `gorm:"size:255" json:"full_name"`
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}
