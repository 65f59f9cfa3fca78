package framevisx

import "errors"

var (
	// ErrInvalidTarget is returned when a mutation references a record that is
	// not currently part of the primitive's sequence.
	ErrInvalidTarget = errors.New("target record not in sequence")

	// ErrMalformedAssociation is returned when a requested association is out
	// of domain (negative frame, unknown kind). Reported before any mutation
	// is attempted.
	ErrMalformedAssociation = errors.New("malformed frame association")
)
