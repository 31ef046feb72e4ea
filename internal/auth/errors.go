package auth

import "errors"

var (
	// ErrEmailExists is returned when attempting to create an account with an email that already exists.
	ErrEmailExists = errors.New("a user with this email address has already been registered")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when an account cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned to clients for unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid login credentials")

	// ErrMissingAuthHeader is returned when the Authorization header is absent.
	ErrMissingAuthHeader = errors.New("missing authorization header")

	// ErrInvalidToken is returned for malformed, expired or revoked tokens.
	ErrInvalidToken = errors.New("invalid token")
)
