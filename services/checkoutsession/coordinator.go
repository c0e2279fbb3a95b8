package checkoutsession

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/MarcGrol/cartcheckout/lib/myerrors"
	"github.com/MarcGrol/cartcheckout/lib/myevents"
	"github.com/MarcGrol/cartcheckout/lib/mylog"
	"github.com/MarcGrol/cartcheckout/lib/mymetrics"
	"github.com/MarcGrol/cartcheckout/lib/mypublisher"
	"github.com/MarcGrol/cartcheckout/services/cart"
	"github.com/MarcGrol/cartcheckout/services/checkoutbackend"
	"github.com/MarcGrol/cartcheckout/services/checkoutevents"
)

const (
	stepCreate   = "create"
	stepCapture  = "capture"
	stepRedirect = "redirect"
)

type Config struct {
	// SilentRedirectFailures only logs a failed redirect checkout, without telling the shopper
	SilentRedirectFailures bool
}

// Coordinator sequences the wallet flow (create -> approve -> capture) and the redirect
// flow against the payment backend and reports the status of each flow.
type Coordinator struct {
	cfg       Config
	backend   checkoutbackend.Backend
	reporter  StatusReporter
	publisher mypublisher.Publisher
	logger    mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewCoordinator(cfg Config, backend checkoutbackend.Backend, reporter StatusReporter, publisher mypublisher.Publisher) *Coordinator {
	return &Coordinator{
		cfg:       cfg,
		backend:   backend,
		reporter:  reporter,
		publisher: publisher,
		logger:    mylog.New("checkoutsession"),
	}
}

// startLoading reports loading for the flow and returns the matching release: use as
// defer s.startLoading(...)() so every exit path clears it.
func (s *Coordinator) startLoading(c context.Context, sessionUID string, flow Flow) func() {
	mymetrics.InFlight.WithLabelValues(string(flow)).Inc()
	s.reporter.LoadingStarted(c, sessionUID, flow)

	return func() {
		s.reporter.LoadingStopped(c, sessionUID, flow)
		mymetrics.InFlight.WithLabelValues(string(flow)).Dec()
	}
}

// CreateOrder creates a wallet order for the cart and returns its handle. The hosted
// button continues with approval using that handle.
func (s *Coordinator) CreateOrder(c context.Context, sessionUID string, shoppingCart cart.Cart) (OrderHandle, error) {
	err := shoppingCart.Validate()
	if err != nil {
		return "", myerrors.NewInvalidInputError(err)
	}

	defer s.startLoading(c, sessionUID, FlowWallet)()

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Create order for %d items", len(shoppingCart.Items))

	resp, err := s.backend.CreateOrder(c, checkoutbackend.NewCreateOrderRequest(shoppingCart))
	if err != nil {
		return "", s.fail(c, sessionUID, FlowWallet, stepCreate,
			newError(KindNetwork, fmt.Sprintf("Could not initiate checkout: %s", err), err))
	}

	if resp.ID == "" {
		return "", s.fail(c, sessionUID, FlowWallet, stepCreate,
			newError(KindOrderCreationFailed, composeOrderErrorMessage(resp), nil))
	}

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Created order %s", resp.ID)
	s.count(FlowWallet, stepCreate, "success")
	s.publish(c, sessionUID, checkoutevents.OrderCreated{
		SessionUID:    sessionUID,
		OrderID:       resp.ID,
		AmountInCents: int64(shoppingCart.Total()),
		Currency:      checkoutbackend.CurrencyUSD,
	})

	return OrderHandle(resp.ID), nil
}

// composeOrderErrorMessage prefers the first structured error detail and falls back to
// the response body itself.
func composeOrderErrorMessage(resp checkoutbackend.OrderResponse) string {
	if len(resp.Details) > 0 {
		detail := resp.Details[0]
		return fmt.Sprintf("%s %s (%s)", detail.Issue, detail.Description, debugIDOf(detail, resp.DebugID))
	}

	if resp.Decoded {
		buf := bytes.Buffer{}
		if json.Compact(&buf, resp.Raw) == nil {
			return buf.String()
		}
	}

	if len(resp.Raw) == 0 {
		return fmt.Sprintf("empty response (http-status %d)", resp.HTTPStatus)
	}

	return string(resp.Raw)
}

func debugIDOf(detail checkoutbackend.ErrorDetail, fallback string) string {
	if detail.DebugID != "" {
		return detail.DebugID
	}
	return fallback
}

// CaptureOrder captures an approved order. A declined instrument returns an error of kind
// Restartable: the hosted button must restart approval instead of giving up.
func (s *Coordinator) CaptureOrder(c context.Context, sessionUID string, handle OrderHandle) (CaptureResult, error) {
	if handle == "" {
		return CaptureResult{}, myerrors.NewInvalidInputErrorf("missing order id")
	}

	defer s.startLoading(c, sessionUID, FlowWallet)()

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Capture order %s", handle)

	resp, err := s.backend.CaptureOrder(c, string(handle))
	if err != nil {
		return CaptureResult{}, s.fail(c, sessionUID, FlowWallet, stepCapture,
			newError(KindNetwork, fmt.Sprintf("Sorry, your transaction could not be processed: %s", err), err))
	}

	for _, detail := range resp.Details {
		if detail.Issue == checkoutbackend.IssueInstrumentDeclined {
			s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Instrument declined for order %s: restart", handle)
			s.count(FlowWallet, stepCapture, "restart")
			s.publish(c, sessionUID, checkoutevents.RestartRequested{
				SessionUID: sessionUID,
				OrderID:    string(handle),
			})
			return CaptureResult{OrderID: handle}, newError(KindRestartable, detail.Description, nil)
		}
	}

	if len(resp.Details) > 0 {
		detail := resp.Details[0]
		return CaptureResult{}, s.fail(c, sessionUID, FlowWallet, stepCapture,
			newError(KindCaptureFailed, fmt.Sprintf("Sorry, your transaction could not be processed: %s (%s)", detail.Description, debugIDOf(detail, resp.DebugID)), nil))
	}

	capture, found := resp.FirstCapture()
	if !resp.Decoded || !found {
		return CaptureResult{}, s.fail(c, sessionUID, FlowWallet, stepCapture,
			newError(KindCaptureFailed, fmt.Sprintf("Sorry, your transaction could not be processed: malformed capture response: %s", string(resp.Raw)), nil))
	}

	message := fmt.Sprintf("Transaction %s: %s. See console for all available details", capture.Status, capture.ID)
	s.reporter.MessageSet(c, sessionUID, FlowWallet, message)

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Capture result for order %s: %s", handle, indent(resp.Raw))
	s.count(FlowWallet, stepCapture, "success")
	s.publish(c, sessionUID, checkoutevents.OrderCaptured{
		SessionUID:    sessionUID,
		OrderID:       string(handle),
		CaptureID:     capture.ID,
		CaptureStatus: capture.Status,
	})

	return CaptureResult{
		OrderID: handle,
		Capture: capture,
		Message: message,
	}, nil
}

func indent(raw []byte) string {
	buf := bytes.Buffer{}
	err := json.Indent(&buf, raw, "", "  ")
	if err != nil {
		return string(raw)
	}
	return buf.String()
}

// StartRedirectCheckout creates a hosted checkout session for the cart. The caller must
// navigate the browser to the returned url.
func (s *Coordinator) StartRedirectCheckout(c context.Context, sessionUID string, shoppingCart cart.Cart) (RedirectSession, error) {
	err := shoppingCart.Validate()
	if err != nil {
		return RedirectSession{}, myerrors.NewInvalidInputError(err)
	}

	defer s.startLoading(c, sessionUID, FlowRedirect)()

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Start redirect checkout for %d items", len(shoppingCart.Items))

	resp, err := s.backend.CreateRedirectSession(c, checkoutbackend.NewRedirectSessionRequest(shoppingCart))
	if err != nil {
		kind := KindRedirectFailed
		if checkoutbackend.IsTransportError(err) {
			kind = KindNetwork
		}
		return RedirectSession{}, s.fail(c, sessionUID, FlowRedirect, stepRedirect,
			newError(kind, fmt.Sprintf("Could not start card checkout: %s", err), err))
	}

	if !isNavigable(resp.URL) {
		return RedirectSession{}, s.fail(c, sessionUID, FlowRedirect, stepRedirect,
			newError(KindRedirectFailed, fmt.Sprintf("Could not start card checkout: no usable url in response: %s", string(resp.Raw)), nil))
	}

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Redirecting to %s", resp.URL)
	s.count(FlowRedirect, stepRedirect, "success")
	s.publish(c, sessionUID, checkoutevents.RedirectStarted{
		SessionUID:    sessionUID,
		AmountInCents: int64(shoppingCart.Total()),
		Currency:      checkoutbackend.CurrencyUSD,
		RedirectURL:   resp.URL,
	})

	return RedirectSession{URL: resp.URL}, nil
}

func isNavigable(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "https" || u.Scheme == "http") && u.Host != ""
}

// fail reports the failure on the flow's status and returns it. A failing redirect stays
// silent when so configured.
func (s *Coordinator) fail(c context.Context, sessionUID string, flow Flow, step string, checkoutErr *Error) error {
	s.logger.Log(c, sessionUID, mylog.SeverityError, "%s %s failed: %s", flow, step, checkoutErr)

	if flow != FlowRedirect || !s.cfg.SilentRedirectFailures {
		s.reporter.MessageSet(c, sessionUID, flow, checkoutErr.Message)
	}

	s.count(flow, step, string(checkoutErr.Kind))
	s.publish(c, sessionUID, checkoutevents.CheckoutFailed{
		SessionUID: sessionUID,
		Flow:       string(flow),
		Step:       step,
		ErrorKind:  string(checkoutErr.Kind),
		Message:    checkoutErr.Message,
	})

	return checkoutErr
}

func (s *Coordinator) count(flow Flow, step string, outcome string) {
	mymetrics.CheckoutOutcomes.WithLabelValues(string(flow), step, outcome).Inc()
}

// publish never changes the outcome of a step
func (s *Coordinator) publish(c context.Context, sessionUID string, event myevents.Event) {
	err := s.publisher.Publish(c, checkoutevents.TopicName, event)
	if err != nil {
		s.logger.Log(c, sessionUID, mylog.SeverityWarn, "Error publishing %s: %s", event.GetEventTypeName(), err)
	}
}
