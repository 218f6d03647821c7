package directplus

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField         = errors.New("missing required field")
	ErrInvalidAuthorization = errors.New("invalid authorization")
	ErrInvalidExpiry        = errors.New("invalid card expiry")
	ErrUnsupportedCurrency  = errors.New("unsupported currency")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrMalformedReply       = errors.New("malformed reply")
)

// PreconditionError reports a required caller field that was not provided.
type PreconditionError struct {
	Operation Operation
	Field     string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s is required", e.Operation, e.Field)
}

func (e *PreconditionError) Unwrap() error {
	return ErrMissingField
}
