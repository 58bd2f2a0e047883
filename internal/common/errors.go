// Package common defines the sentinel errors shared by the storage, service
// and CLI layers of GophSocial. Callers should use errors.Is to match these
// values; lower layers wrap them with fmt.Errorf("...: %w").
package common

import "errors"

var (
	// Infrastructure errors. ErrConnection is fatal to the session.
	ErrConnection = errors.New("graph store unavailable")
	ErrQuery      = errors.New("graph query failed")

	// Account errors.
	ErrDuplicateHandle   = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrNotFound          = errors.New("user not found")
	ErrInvalidCredential = errors.New("invalid password")
	ErrValidation        = errors.New("validation error")

	// Session errors.
	ErrUnauthenticated = errors.New("you must login first")

	// Social graph errors.
	ErrSelfFollow       = errors.New("you cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
	ErrNoChange         = errors.New("no changes to make")
)

// IsFatal reports whether err must terminate the interactive session.
// Everything else is a domain error and is shown to the user.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConnection)
}
