package checkoutbackend

import (
	"context"
	"errors"
	"fmt"
)

// Backend is the external payment backend: it creates and captures wallet orders and
// creates hosted redirect sessions.
//
//go:generate mockgen -source=api.go -package checkoutbackend -destination backend_mock.go Backend
type Backend interface {
	CreateOrder(c context.Context, request CreateOrderRequest) (OrderResponse, error)
	CaptureOrder(c context.Context, orderID string) (CaptureResponse, error)
	CreateRedirectSession(c context.Context, request RedirectSessionRequest) (RedirectSessionResponse, error)
}

// TransportError means the backend could not be reached or did not send a complete response
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("error calling %s: %s", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
