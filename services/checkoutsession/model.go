package checkoutsession

import (
	"github.com/MarcGrol/cartcheckout/services/checkoutbackend"
)

// Flow identifies one of the two independent checkout paths
type Flow string

const (
	FlowWallet   Flow = "wallet"
	FlowRedirect Flow = "redirect"
)

type State string

const (
	StateIdle    State = "Idle"
	StateLoading State = "Loading"
	StateMessage State = "Message"
)

// Status is what the shopper sees: loading wins over a message, a message stays until
// it is overwritten.
type Status struct {
	Loading bool   `json:"loading"`
	Message string `json:"message,omitempty"`
}

func (s Status) State() State {
	if s.Loading {
		return StateLoading
	}
	if s.Message != "" {
		return StateMessage
	}
	return StateIdle
}

// OrderHandle identifies an order that is created but not yet captured
type OrderHandle string

type CaptureResult struct {
	OrderID OrderHandle
	Capture checkoutbackend.Capture
	Message string
}

// RedirectSession is the hosted payment page the browser must navigate to
type RedirectSession struct {
	URL string
}
