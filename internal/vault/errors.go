package vault

import "errors"

var (
	// ErrMalformedStore is returned when the vault file exists and is not
	// blank but does not decode as a vault.
	ErrMalformedStore = errors.New("malformed vault")

	// ErrIO is returned when the vault file cannot be read or written.
	ErrIO = errors.New("vault io")

	// ErrInvalidText is returned when a record field is not valid UTF-8.
	ErrInvalidText = errors.New("invalid utf-8")
)
