package payment

import (
	"context"
	"errors"
	"fmt"
)

// Kind is the closed classification of gateway failures. Every error the
// gateway returns carries exactly one of these; callers switch on it.
type Kind string

const (
	KindDeclined       Kind = "declined"
	KindRateLimited    Kind = "rate_limited"
	KindInvalidRequest Kind = "invalid_request"
	KindAuthFailed     Kind = "auth_failed"
	KindUnavailable    Kind = "unavailable"
	KindUnknown        Kind = "unknown"
)

// Error is a classified gateway failure returned as a value, never panicked.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment gateway: %s: %s", e.Kind, e.Message)
}

// AsError unwraps a classified gateway error from an error chain.
func AsError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// Source identifies what to charge: a one-time card token or a stored
// customer. Exactly one field should be set.
type Source struct {
	Token      string
	CustomerID string
}

// Gateway is the external payment collaborator. Amounts are integral minor
// units (cents). Implementations must return *Error for every failure.
type Gateway interface {
	// Charge authorizes a card charge and returns the gateway charge id.
	Charge(ctx context.Context, amountMinor int64, currency string, src Source) (string, error)

	// CreateCustomer stores a card on file and returns a reusable customer id.
	CreateCustomer(ctx context.Context, email, token string) (string, error)
}
