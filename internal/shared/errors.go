package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken occurs when registering with an email that is already in use.
	ErrEmailTaken = errors.New("email is already taken")
	// ErrForbidden occurs when the acting principal does not own the target resource.
	ErrForbidden = errors.New("forbidden")
)
