package domain

import "errors"

// Domain errors. ErrUnauthorized is deliberately surfaced to clients the
// same way as the not-found errors: room and voter lookups are filtered by
// status, so a wrong secret, a wrong state and a missing row are
// indistinguishable from the outside.
var (
	ErrEmptyName      = errors.New("room name cannot be empty")
	ErrNoOptions      = errors.New("room needs at least one option")
	ErrEmptyOption    = errors.New("option cannot be empty")
	ErrRoomNotFound   = errors.New("room not found")
	ErrVoterNotFound  = errors.New("voter not found")
	ErrUnauthorized   = errors.New("secret mismatch")
	ErrBallotMismatch = errors.New("ballot does not match room options")
)

// IsValidation reports whether err is one of the input validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrNoOptions) ||
		errors.Is(err, ErrEmptyOption)
}
