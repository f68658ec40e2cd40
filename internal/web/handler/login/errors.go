// Package login provides the local email and password sign-in endpoint.
package login

import "errors"

var (
	// ErrInvalidFormData is returned when the submitted login body cannot be
	// parsed or fails validation.
	ErrInvalidFormData = errors.New("invalid form data")

	// ErrInvalidCredentials is returned when the provided email and/or
	// password are not valid.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
