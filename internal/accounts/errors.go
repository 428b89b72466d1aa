package accounts

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidUUID is returned when an account identifier is not a hyphenated UUID.
	ErrInvalidUUID = errors.New("invalid UUID")

	// ErrInvalidOption is returned when a menu selection is not one of the offered numbers.
	ErrInvalidOption = errors.New("input string was not in a correct format")
)

// MalformedStoreError is returned when the accounts file exists but does not
// hold an accounts document.
type MalformedStoreError struct {
	Path string
	Err  error
}

func (e *MalformedStoreError) Error() string {
	return fmt.Sprintf("malformed accounts file %s: %v", e.Path, e.Err)
}

func (e *MalformedStoreError) Unwrap() error {
	return e.Err
}

// IsMalformedStore reports whether err is or wraps a MalformedStoreError.
func IsMalformedStore(err error) bool {
	var target *MalformedStoreError
	return errors.As(err, &target)
}
