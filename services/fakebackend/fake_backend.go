package fakebackend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/cartcheckout/lib/mycontext"
	"github.com/MarcGrol/cartcheckout/lib/myhttp"
	"github.com/MarcGrol/cartcheckout/lib/mylog"
	"github.com/MarcGrol/cartcheckout/lib/mystore"
	"github.com/MarcGrol/cartcheckout/lib/myuuid"
	"github.com/MarcGrol/cartcheckout/services/checkoutbackend"
)

const (
	// DeclinedItemName makes every capture of an order containing it fail with INSTRUMENT_DECLINED
	DeclinedItemName = "Declined card"

	debugID = "fake-debug-id"
)

var twoDecimals = regexp.MustCompile(`^\d+\.\d\d$`)

type Order struct {
	ID        string
	Lines     []checkoutbackend.OrderLine
	CaptureID string
}

// FakeBackend behaves like the payment backend, including its error responses, without
// talking to a payment provider.
type FakeBackend struct {
	uuider          myuuid.UUIDer
	redirectBaseURL string
	Store           *mystore.InMemoryStore[Order]
	logger          mylog.Logger
}

func New(c context.Context, uuider myuuid.UUIDer, redirectBaseURL string) (*FakeBackend, error) {
	store, _, err := mystore.NewInMemoryStore[Order](c)
	if err != nil {
		return nil, fmt.Errorf("error creating order store: %s", err)
	}
	return &FakeBackend{
		uuider:          uuider,
		redirectBaseURL: redirectBaseURL,
		Store:           store,
		logger:          mylog.New("fakebackend"),
	}, nil
}

func (b *FakeBackend) CreateOrder(c context.Context, request checkoutbackend.CreateOrderRequest) (checkoutbackend.OrderResponse, error) {
	if len(request.Cart) == 0 {
		return orderFailure(http.StatusBadRequest, "MISSING_REQUIRED_PARAMETER", "cart is empty")
	}
	for _, line := range request.Cart {
		if line.UnitAmount.CurrencyCode != checkoutbackend.CurrencyUSD || !twoDecimals.MatchString(line.UnitAmount.Value) {
			return orderFailure(http.StatusUnprocessableEntity, "INVALID_PARAMETER_VALUE",
				fmt.Sprintf("invalid amount %s %s", line.UnitAmount.CurrencyCode, line.UnitAmount.Value))
		}
	}

	order := Order{
		ID:    b.uuider.Create(),
		Lines: request.Cart,
	}
	err := b.Store.Put(c, order.ID, order)
	if err != nil {
		return checkoutbackend.OrderResponse{}, err
	}

	b.logger.Log(c, "", mylog.SeverityInfo, "Created order %s", order.ID)

	resp := checkoutbackend.OrderResponse{ID: order.ID}
	resp.Raw, err = json.Marshal(resp)
	if err != nil {
		return checkoutbackend.OrderResponse{}, fmt.Errorf("error marshalling order: %s", err)
	}
	resp.HTTPStatus = http.StatusCreated
	resp.Decoded = true

	return resp, nil
}

func orderFailure(httpStatus int, issue string, description string) (checkoutbackend.OrderResponse, error) {
	resp := checkoutbackend.OrderResponse{
		DebugID: debugID,
		Details: []checkoutbackend.ErrorDetail{{Issue: issue, Description: description, DebugID: debugID}},
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return checkoutbackend.OrderResponse{}, fmt.Errorf("error marshalling order failure: %s", err)
	}
	resp.Raw = raw
	resp.HTTPStatus = httpStatus
	resp.Decoded = true
	return resp, nil
}

func (b *FakeBackend) CaptureOrder(c context.Context, orderID string) (checkoutbackend.CaptureResponse, error) {
	resp := checkoutbackend.CaptureResponse{}

	err := b.Store.RunInTransaction(c, func(c context.Context) error {
		order, exists, err := b.Store.Get(c, orderID)
		if err != nil {
			return err
		}
		if !exists {
			resp, err = captureFailure(http.StatusNotFound, "RESOURCE_NOT_FOUND", fmt.Sprintf("order %s does not exist", orderID))
			return err
		}
		if order.CaptureID != "" {
			resp, err = captureFailure(http.StatusUnprocessableEntity, "ORDER_ALREADY_CAPTURED", "Order already captured.")
			return err
		}
		for _, line := range order.Lines {
			if line.Name == DeclinedItemName {
				resp, err = captureFailure(http.StatusUnprocessableEntity, checkoutbackend.IssueInstrumentDeclined, "The instrument presented was declined.")
				return err
			}
		}

		order.CaptureID = b.uuider.Create()
		err = b.Store.Put(c, orderID, order)
		if err != nil {
			return err
		}

		resp = checkoutbackend.CaptureResponse{
			ID:     orderID,
			Status: "COMPLETED",
			PurchaseUnits: []checkoutbackend.PurchaseUnit{{
				Payments: checkoutbackend.Payments{
					Captures: []checkoutbackend.Capture{{ID: order.CaptureID, Status: "COMPLETED"}},
				},
			}},
		}
		resp.Raw, err = json.Marshal(resp)
		if err != nil {
			return fmt.Errorf("error marshalling capture: %s", err)
		}
		resp.HTTPStatus = http.StatusCreated
		resp.Decoded = true
		return nil
	})
	if err != nil {
		return checkoutbackend.CaptureResponse{}, err
	}

	return resp, nil
}

func captureFailure(httpStatus int, issue string, description string) (checkoutbackend.CaptureResponse, error) {
	resp := checkoutbackend.CaptureResponse{
		DebugID: debugID,
		Details: []checkoutbackend.ErrorDetail{{Issue: issue, Description: description, DebugID: debugID}},
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return checkoutbackend.CaptureResponse{}, fmt.Errorf("error marshalling capture failure: %s", err)
	}
	resp.Raw = raw
	resp.HTTPStatus = httpStatus
	resp.Decoded = true
	return resp, nil
}

func (b *FakeBackend) CreateRedirectSession(c context.Context, request checkoutbackend.RedirectSessionRequest) (checkoutbackend.RedirectSessionResponse, error) {
	if len(request.CartItems) == 0 {
		return checkoutbackend.RedirectSessionResponse{
			HTTPStatus: http.StatusBadRequest,
			Raw:        []byte(`{"error":"cart is empty"}`),
		}, nil
	}

	resp := checkoutbackend.RedirectSessionResponse{
		URL: fmt.Sprintf("%s/session/%s", b.redirectBaseURL, b.uuider.Create()),
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return checkoutbackend.RedirectSessionResponse{}, fmt.Errorf("error marshalling redirect session: %s", err)
	}
	resp.Raw = raw
	resp.HTTPStatus = http.StatusOK

	return resp, nil
}

// RegisterEndpoints serves the fake over http, with the same paths as the real backend
func (b *FakeBackend) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/orders", b.createOrder()).Methods("POST")
	router.HandleFunc("/api/orders/{orderID}/capture", b.captureOrder()).Methods("POST")
	router.HandleFunc("/checkout", b.createRedirectSession()).Methods("POST")
	router.HandleFunc("/session/{sessionID}", b.hostedCheckoutPage()).Methods("GET")
}

// hostedCheckoutPage stands in for the payment page the shopper is redirected to
func (b *FakeBackend) hostedCheckoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		myhttp.NewWriter(b.logger).Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: fmt.Sprintf("Fake hosted checkout for session %s, continue at %s/", mux.Vars(r)["sessionID"], myhttp.HostnameWithScheme(r)),
		})
	}
}

func (b *FakeBackend) createOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		request := checkoutbackend.CreateOrderRequest{}
		err := json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			writeRaw(w, http.StatusBadRequest, []byte(fmt.Sprintf(`{"error":%q}`, err.Error())))
			return
		}

		resp, err := b.CreateOrder(c, request)
		if err != nil {
			writeRaw(w, http.StatusInternalServerError, nil)
			return
		}

		writeRaw(w, resp.HTTPStatus, resp.Raw)
	}
}

func (b *FakeBackend) captureOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		resp, err := b.CaptureOrder(c, mux.Vars(r)["orderID"])
		if err != nil {
			writeRaw(w, http.StatusInternalServerError, nil)
			return
		}

		writeRaw(w, resp.HTTPStatus, resp.Raw)
	}
}

func (b *FakeBackend) createRedirectSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		request := checkoutbackend.RedirectSessionRequest{}
		err := json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			writeRaw(w, http.StatusBadRequest, []byte(fmt.Sprintf(`{"error":%q}`, err.Error())))
			return
		}

		resp, err := b.CreateRedirectSession(c, request)
		if err != nil {
			writeRaw(w, http.StatusInternalServerError, nil)
			return
		}

		writeRaw(w, resp.HTTPStatus, resp.Raw)
	}
}

func writeRaw(w http.ResponseWriter, httpStatus int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_, _ = w.Write(body)
}
