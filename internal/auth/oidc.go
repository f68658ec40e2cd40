package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

// OIDCConfig holds the social identity provider configuration.
type OIDCConfig struct {
	// Enabled indicates if social sign-in is enabled.
	Enabled bool
	// ProviderURL is the provider's discovery URL (e.g. "https://accounts.google.com").
	ProviderURL string
	// ClientID is the OAuth2 client identifier.
	ClientID string
	// ClientSecret is the OAuth2 client secret.
	ClientSecret string
	// RedirectURL is the OAuth2 callback URL where the provider redirects after sign-in.
	RedirectURL string
	// Scopes are the OAuth2 scopes to request (default: ["openid", "profile", "email"]).
	Scopes []string
}

// OIDCProvider handles sign-in against the social identity provider.
type OIDCProvider struct {
	config   *OIDCConfig
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	oauth2   oauth2.Config
	db       *gorm.DB
}

// NewOIDCProvider creates a new OIDC provider.
func NewOIDCProvider(ctx context.Context, config *OIDCConfig, db *gorm.DB) (*OIDCProvider, error) {
	if !config.Enabled {
		return nil, ErrOIDCDisabled
	}

	provider, err := oidc.NewProvider(ctx, config.ProviderURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: config.ClientID,
	})

	scopes := config.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	oauth2Config := oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       scopes,
	}

	return &OIDCProvider{
		config:   config,
		provider: provider,
		verifier: verifier,
		oauth2:   oauth2Config,
		db:       db,
	}, nil
}

// GetAuthURL returns the provider's authorization URL with the state token.
func (p *OIDCProvider) GetAuthURL(state string) string {
	return p.oauth2.AuthCodeURL(state)
}

// HandleCallback exchanges the authorization code, verifies the ID token and
// finds or creates the matching user record. Users are created on first
// sign-in with the member role and are never hard-deleted here.
func (p *OIDCProvider) HandleCallback(ctx context.Context, code string) (*models.User, error) {
	oauth2Token, err := p.oauth2.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return nil, ErrNoIDToken
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	var claims struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}

	if err = idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse claims: %w", err)
	}

	var user models.User

	err = p.db.Where("external_id = ? AND auth_source = ?", claims.Sub, models.AuthSourceOIDC).
		First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Active:        true,
			Name:          claims.Name,
			DisplayName:   claims.Name,
			Email:         claims.Email,
			EmailVerified: claims.EmailVerified,
			Role:          models.RoleMember,
			AuthSource:    models.AuthSourceOIDC,
			ExternalID:    claims.Sub,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}

		if err = p.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to query user: %w", err)
	default:
		// refresh provider-owned fields, keep the local display name
		user.Name = claims.Name
		user.Email = claims.Email
		user.EmailVerified = claims.EmailVerified
		user.UpdatedAt = time.Now()

		if err = p.db.Save(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	return &user, nil
}

// VerifyToken verifies the signature and claims of an OIDC ID token.
func (p *OIDCProvider) VerifyToken(ctx context.Context, rawToken string) (*oidc.IDToken, error) {
	return p.verifier.Verify(ctx, rawToken)
}

// GetLogoutURL constructs the provider's logout URL if supported.
// Returns an empty string if the provider doesn't expose an end-session endpoint.
func (p *OIDCProvider) GetLogoutURL(idToken, postLogoutRedirectURI string) string {
	var claims struct {
		EndSessionEndpoint string `json:"end_session_endpoint"`
	}

	if err := p.provider.Claims(&claims); err != nil || claims.EndSessionEndpoint == "" {
		return ""
	}

	return fmt.Sprintf("%s?id_token_hint=%s&post_logout_redirect_uri=%s",
		claims.EndSessionEndpoint,
		idToken,
		postLogoutRedirectURI,
	)
}
