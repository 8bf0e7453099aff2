package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeGateway charges cards through Stripe. The API key is carried by the
// constructed client rather than package-global state so tests can swap the
// whole Gateway out.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) Charge(ctx context.Context, amountMinor int64, currency string, src Source) (string, error) {
	params := &stripe.ChargeParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
	}
	switch {
	case src.Token != "":
		if err := params.SetSource(src.Token); err != nil {
			return "", &Error{Kind: KindInvalidRequest, Message: err.Error()}
		}
	case src.CustomerID != "":
		params.Customer = stripe.String(src.CustomerID)
	default:
		return "", &Error{Kind: KindInvalidRequest, Message: "missing charge source"}
	}

	ch, err := g.api.Charges.New(params)
	if err != nil {
		return "", classify(err)
	}
	return ch.ID, nil
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, email, token string) (string, error) {
	if token == "" {
		return "", &Error{Kind: KindInvalidRequest, Message: "missing card token"}
	}
	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(email),
		Source: stripe.String(token),
	}
	cus, err := g.api.Customers.New(params)
	if err != nil {
		return "", classify(err)
	}
	return cus.ID, nil
}

// classify maps Stripe's error surface onto the closed Kind enum. Anything
// that is not a structured Stripe error is a transport failure: the charge
// did not go through and the order must stay untouched.
func classify(err error) *Error {
	var sErr *stripe.Error
	if !errors.As(err, &sErr) {
		return &Error{Kind: KindUnavailable, Message: err.Error()}
	}

	msg := sErr.Msg
	if msg == "" {
		msg = "payment failed"
	}
	switch {
	case sErr.Type == stripe.ErrorTypeCard:
		return &Error{Kind: KindDeclined, Message: msg}
	case sErr.HTTPStatusCode == http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimited, Message: msg}
	case sErr.HTTPStatusCode == http.StatusUnauthorized:
		return &Error{Kind: KindAuthFailed, Message: msg}
	case sErr.Type == stripe.ErrorTypeInvalidRequest:
		return &Error{Kind: KindInvalidRequest, Message: msg}
	default:
		return &Error{Kind: KindUnknown, Message: msg}
	}
}
