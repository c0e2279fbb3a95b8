package widget

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/cartcheckout/lib/mycontext"
	"github.com/MarcGrol/cartcheckout/lib/myerrors"
	"github.com/MarcGrol/cartcheckout/lib/myhttp"
	"github.com/MarcGrol/cartcheckout/lib/mylog"
	"github.com/MarcGrol/cartcheckout/lib/mymetrics"
	"github.com/MarcGrol/cartcheckout/lib/myuuid"
	"github.com/MarcGrol/cartcheckout/services/cart"
	"github.com/MarcGrol/cartcheckout/services/checkoutsession"
)

const sessionCookieName = "checkout_session"

// Config holds the options of the hosted wallet button
type Config struct {
	WalletSDKURL            string
	WalletClientID          string
	WalletDisableFunding    string
	WalletIntegrationSource string
}

// Checkout starts and completes the checkout flows of a session
type Checkout interface {
	CreateOrder(c context.Context, sessionUID string, shoppingCart cart.Cart) (checkoutsession.OrderHandle, error)
	CaptureOrder(c context.Context, sessionUID string, handle checkoutsession.OrderHandle) (checkoutsession.CaptureResult, error)
	StartRedirectCheckout(c context.Context, sessionUID string, shoppingCart cart.Cart) (checkoutsession.RedirectSession, error)
}

// StatusReader returns the status shown to a session
type StatusReader interface {
	Current(c context.Context, sessionUID string) (checkoutsession.Status, error)
}

type webService struct {
	cfg      Config
	checkout Checkout
	statuses StatusReader
	uuider   myuuid.UUIDer
	logger   mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewWebService(cfg Config, checkout Checkout, statuses StatusReader, uuider myuuid.UUIDer) *webService {
	return &webService{
		cfg:      cfg,
		checkout: checkout,
		statuses: statuses,
		uuider:   uuider,
		logger:   mylog.New("widget"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/", s.cartPage()).Methods("GET")
	router.HandleFunc("/api/status", s.getStatus()).Methods("GET")

	router.HandleFunc("/api/wallet/orders", s.createOrder()).Methods("POST")
	router.HandleFunc("/api/wallet/orders/{orderID}/capture", s.captureOrder()).Methods("POST")

	router.HandleFunc("/checkout", s.startRedirectCheckout()).Methods("POST")

	router.Handle("/metrics", mymetrics.Handler()).Methods("GET")

	return nil
}

//go:embed templates
var templateFolder embed.FS
var (
	cartPageTemplate *template.Template
)

func init() {
	cartPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/cart.html"))
}

type cartLine struct {
	Name  string
	Price string
}

type cartPageData struct {
	Lines             []cartLine
	Total             string
	SDKURL            string
	IntegrationSource string
	Fields            []cart.FormField
	Status            checkoutsession.Status
}

func (s *webService) cartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := s.sessionUID(w, r)

		status, err := s.statuses.Current(c, sessionUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		shoppingCart := cart.Default()
		fields, err := shoppingCart.FormFields()
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInternalError(err))
			return
		}

		lines := make([]cartLine, 0, len(shoppingCart.Items))
		for _, item := range shoppingCart.Items {
			lines = append(lines, cartLine{
				Name:  item.Name,
				Price: item.Price.String(),
			})
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = cartPageTemplate.Execute(w, cartPageData{
			Lines:             lines,
			Total:             shoppingCart.Total().String(),
			SDKURL:            s.sdkURL(),
			IntegrationSource: s.cfg.WalletIntegrationSource,
			Fields:            fields,
			Status:            status,
		})
		if err != nil {
			errorWriter.WriteError(c, w, 3, myerrors.NewInternalError(err))
			return
		}
	}
}

// sdkURL points to the script of the hosted wallet button: "<sdk>?client-id=..&disable-funding=.."
func (s *webService) sdkURL() string {
	params := url.Values{}
	params.Set("client-id", s.cfg.WalletClientID)
	if s.cfg.WalletDisableFunding != "" {
		params.Set("disable-funding", s.cfg.WalletDisableFunding)
	}
	return fmt.Sprintf("%s?%s", s.cfg.WalletSDKURL, params.Encode())
}

func (s *webService) getStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		sessionUID := s.sessionUID(w, r)

		status, err := s.statuses.Current(c, sessionUID)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, status)
	}
}

type CreateOrderResponse struct {
	ID string `json:"id"`
}

func (s *webService) createOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		sessionUID := s.sessionUID(w, r)

		handle, err := s.checkout.CreateOrder(c, sessionUID, cart.Default())
		if err != nil {
			responseWriter.WriteError(c, w, 1, toHTTPError(err))
			return
		}

		responseWriter.Write(c, w, http.StatusOK, CreateOrderResponse{
			ID: string(handle),
		})
	}
}

type CaptureOrderResponse struct {
	Restart       bool   `json:"restart,omitempty"`
	Message       string `json:"message,omitempty"`
	CaptureID     string `json:"captureID,omitempty"`
	CaptureStatus string `json:"captureStatus,omitempty"`
}

func (s *webService) captureOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		sessionUID := s.sessionUID(w, r)
		orderID := mux.Vars(r)["orderID"]

		result, err := s.checkout.CaptureOrder(c, sessionUID, checkoutsession.OrderHandle(orderID))
		if err != nil {
			if errors.Is(err, checkoutsession.ErrRestartable) {
				// the hosted button has to restart approval with another instrument
				responseWriter.Write(c, w, http.StatusOK, CaptureOrderResponse{
					Restart: true,
				})
				return
			}
			responseWriter.WriteError(c, w, 1, toHTTPError(err))
			return
		}

		responseWriter.Write(c, w, http.StatusOK, CaptureOrderResponse{
			Message:       result.Message,
			CaptureID:     result.Capture.ID,
			CaptureStatus: result.Capture.Status,
		})
	}
}

func (s *webService) startRedirectCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := s.sessionUID(w, r)

		shoppingCart, err := cart.FromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		if !shoppingCart.Equal(cart.Default()) {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("cart does not match the offered cart"))
			return
		}

		session, err := s.checkout.StartRedirectCheckout(c, sessionUID, shoppingCart)
		if err != nil {
			// shopper stays on the cart page, that shows the outcome
			s.logger.Log(c, sessionUID, mylog.SeverityWarn, "Redirect checkout not started: %s", err)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, session.URL, http.StatusSeeOther)
	}
}

// sessionUID identifies the browser session by cookie and hands out a new one when absent or invalid
func (s *webService) sessionUID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && myuuid.IsValid(cookie.Value) {
		return cookie.Value
	}

	uid := s.uuider.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    uid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return uid
}

func toHTTPError(err error) error {
	kind, ok := checkoutsession.KindOf(err)
	if !ok {
		return err
	}

	switch kind {
	case checkoutsession.KindNetwork:
		return myerrors.NewUnavailableError(err)
	case checkoutsession.KindOrderCreationFailed, checkoutsession.KindCaptureFailed, checkoutsession.KindRedirectFailed:
		return myerrors.NewBadGatewayError(err)
	default:
		return myerrors.NewInternalError(err)
	}
}
