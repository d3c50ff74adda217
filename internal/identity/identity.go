// Package identity wraps the hosted account provider. The document store and
// the account store can drift out of sync, so callers deleting accounts must
// treat ErrAccountNotFound as benign.
package identity

import (
	"context"
	"errors"
)

// ErrAccountNotFound is returned when no account exists for the given UID.
var ErrAccountNotFound = errors.New("account not found")

// Provider is the account-provider contract.
type Provider interface {
	DeleteAccount(ctx context.Context, uid string) error
}
