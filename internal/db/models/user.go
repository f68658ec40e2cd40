package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// AuthSource represents the authentication source for a user account.
// It indicates how the user authenticates (local database or the social
// identity provider).
type AuthSource string

const (
	// AuthSourceLocal indicates the user authenticates with a local database password.
	// Only the bootstrap administrator account uses this source.
	AuthSourceLocal AuthSource = "local"
	// AuthSourceOIDC indicates the user authenticates via the social identity provider.
	AuthSourceOIDC AuthSource = "oidc"
)

// Role values for the coarse user role flag.
const (
	// RoleAdministrator grants access to the administrative area regardless of
	// category visibility flags.
	RoleAdministrator = "administrator"
	// RoleMember is the default role for users created on first sign-in.
	RoleMember = "member"
)

// User represents a federation member account.
// Accounts are created on first sign-in via the identity provider and are
// never hard-deleted; group memberships determine what a user may do per
// content category.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Active indicates whether the user account is active and can sign in.
	Active bool
	// Name is the user's full name as reported by the identity provider.
	Name string `gorm:"size:100;not null"`
	// DisplayName is the name shown next to content the user authored.
	DisplayName string `gorm:"size:100"`
	// Email is the user's email address.
	Email string `gorm:"size:255;not null"`
	// EmailVerified reflects the identity provider's email verification state.
	EmailVerified bool
	// Role is the coarse role flag ("administrator" or "member").
	Role string `gorm:"size:20;not null;default:'member'"`
	// Password is the Argon2id hashed password (bootstrap local account only).
	Password string `gorm:"size:255" json:"-"`
	// AuthSource indicates how this user authenticates (local or oidc).
	AuthSource AuthSource `gorm:"type:varchar(20);not null;default:'oidc'"`
	// ExternalID is the identity provider's subject claim for OIDC users.
	ExternalID string `gorm:"size:255;index"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// IsAdministrator reports whether the coarse role flag marks this user as an
// administrator.
func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// Only used for the bootstrap local administrator account.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hash.
// Returns true if the password matches, false otherwise.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
