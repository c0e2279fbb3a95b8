package checkoutbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MarcGrol/cartcheckout/lib/myhttpclient"
	"github.com/MarcGrol/cartcheckout/lib/mymetrics"
)

const (
	createOrderPath     = "/api/orders"
	captureOrderPath    = "/api/orders/%s/capture"
	redirectSessionPath = "/checkout"
)

type httpBackend struct {
	origin string
	sender myhttpclient.HTTPSender
}

// New returns a backend that talks json over http to the given origin (scheme://host[:port])
func New(origin string, sender myhttpclient.HTTPSender) (Backend, error) {
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend origin '%s'", origin)
	}

	return &httpBackend{
		origin: strings.TrimRight(origin, "/"),
		sender: sender,
	}, nil
}

func (b *httpBackend) CreateOrder(c context.Context, request CreateOrderRequest) (OrderResponse, error) {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return OrderResponse{}, fmt.Errorf("error marshalling create-order request: %s", err)
	}

	status, respBody, err := b.post(c, "create-order", createOrderPath, requestBody)
	if err != nil {
		return OrderResponse{}, err
	}

	resp := OrderResponse{}
	resp.Decoded = decodeObject(respBody, &resp)
	resp.HTTPStatus = status
	resp.Raw = respBody

	return resp, nil
}

func (b *httpBackend) CaptureOrder(c context.Context, orderID string) (CaptureResponse, error) {
	status, respBody, err := b.post(c, "capture-order", fmt.Sprintf(captureOrderPath, url.PathEscape(orderID)), nil)
	if err != nil {
		return CaptureResponse{}, err
	}

	resp := CaptureResponse{}
	resp.Decoded = decodeObject(respBody, &resp)
	resp.HTTPStatus = status
	resp.Raw = respBody

	return resp, nil
}

func (b *httpBackend) CreateRedirectSession(c context.Context, request RedirectSessionRequest) (RedirectSessionResponse, error) {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return RedirectSessionResponse{}, fmt.Errorf("error marshalling redirect-session request: %s", err)
	}

	status, respBody, err := b.post(c, "redirect-session", redirectSessionPath, requestBody)
	if err != nil {
		return RedirectSessionResponse{}, err
	}

	resp := RedirectSessionResponse{}
	if !decodeObject(respBody, &resp) {
		return RedirectSessionResponse{}, fmt.Errorf("error parsing redirect-session response (http-status %d): %s", status, string(respBody))
	}
	resp.HTTPStatus = status
	resp.Raw = respBody

	return resp, nil
}

func (b *httpBackend) post(c context.Context, endpoint string, path string, body []byte) (int, []byte, error) {
	start := time.Now()
	defer func() {
		mymetrics.BackendLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	status, respBody, err := b.sender.Send(c, http.MethodPost, b.origin+path, body)
	if err != nil {
		return 0, nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	return status, respBody, nil
}

// decodeObject only accepts a json object, so a literal like null or "x" counts as not decoded
func decodeObject(data []byte, target any) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return json.Unmarshal(trimmed, target) == nil
}
