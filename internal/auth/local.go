package auth

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

// LocalProvider authenticates the bootstrap administrator account against
// the local database. Regular members sign in via the identity provider;
// the local path exists so the back office stays reachable before the
// provider is configured.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate authenticates a local user by email and password.
func (p *LocalProvider) Authenticate(email, password string) (*models.User, error) {
	var user models.User

	err := p.db.Where("email = ? AND auth_source = ?", email, models.AuthSourceLocal).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	user.UpdatedAt = time.Now()
	p.db.Save(&user)

	return &user, nil
}
