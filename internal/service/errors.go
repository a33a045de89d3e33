package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in the API layer predictable.

// ===== Account Errors =====
var (
	ErrUserAlreadyExists = errors.New("email or username already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrInvalidUsername   = errors.New("username must be 3-30 characters: letters, digits, '.', '_' or '-'")
	ErrInvalidRole       = errors.New("invalid role")
	ErrWeakPassword      = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong   = errors.New("password must be at most 128 characters")
	ErrInvalidInput      = errors.New("invalid input")
)

// ===== Credential Errors =====
var (
	// ErrInvalidCredentials is returned for both "no such user" and "wrong
	// password" so responses cannot be used to enumerate accounts. The
	// refresh flow returns it too once a presented token is unusable.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ===== Token Errors =====
var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")

	// ErrDuplicateToken indicates a refresh-token hash collision. With
	// 256-bit random tokens this points at a randomness defect, so it is
	// logged as a severe internal fault.
	ErrDuplicateToken = errors.New("refresh token collision")
)
