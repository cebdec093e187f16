package service

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown user or wrong password
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned when registering an existing username
	ErrUsernameTaken = errors.New("username already taken")
	// ErrForbidden is returned when the caller may not modify a resource
	ErrForbidden = errors.New("not allowed")
	// ErrInvalidToken is returned for a malformed, forged or expired token
	ErrInvalidToken = errors.New("invalid token")
	// ErrSessionNotFound is returned for an unknown or expired planning session
	ErrSessionNotFound = errors.New("session not found")
	// ErrParentMismatch is returned when a reply targets a comment of another thread
	ErrParentMismatch = errors.New("parent comment belongs to another thread")
	// ErrInvalidInput is returned for request values outside their valid range
	ErrInvalidInput = errors.New("invalid input")
)
