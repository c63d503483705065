// Package sentinel holds the infrastructure errors stores and chain readers
// return. Services translate them into coded domain errors.
package sentinel

import "errors"

var (
	// ErrNotFound: no snapshot is stored for the realm, or the account does
	// not exist on chain.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable: the backing store cannot be reached.
	ErrUnavailable = errors.New("unavailable")
)
