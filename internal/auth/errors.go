package auth

import "errors"

var (
	// ErrUnauthenticated is returned when no valid session exists for an
	// operation that requires one.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUserNotFound is returned when a session's user id does not resolve
	// to a user record. This indicates a stale session.
	ErrUserNotFound = errors.New("user not found")

	// ErrNoIDToken is returned when the OAuth2 token response doesn't contain an ID token.
	// This typically indicates a misconfigured provider or an incomplete sign-in flow.
	ErrNoIDToken = errors.New("no id_token in token response")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrOIDCDisabled is returned when the identity provider is disabled via configuration.
	ErrOIDCDisabled = errors.New("oidc authentication is disabled")
)
